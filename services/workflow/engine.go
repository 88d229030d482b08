package workflow

import (
	"context"
	"fmt"
	"strings"
	"time"

	requestRepo "bookmyspot/database/repository/request"
	spotRepo "bookmyspot/database/repository/spot"
	userRepo "bookmyspot/database/repository/user"
	"bookmyspot/models"
	"bookmyspot/services/events"
	"bookmyspot/services/notification"
	"bookmyspot/utils"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

// DefaultWorkflowEngine is the production request workflow implementation.
type DefaultWorkflowEngine struct {
	SpotRepo    spotRepo.SpotRepository
	RequestRepo requestRepo.RequestRepository
	UserRepo    userRepo.UserRepository
	Notifier    notification.NotificationService
	Events      *events.Hub
}

// SubmitNewSpotRequest validates the proposed listing and files a pending
// new_spot request.
func (e *DefaultWorkflowEngine) SubmitNewSpotRequest(ctx context.Context, ownerID string, fields models.SpotFields) (string, error) {
	if err := validateSpotFields(fields); err != nil {
		return "", err
	}

	owner, err := e.UserRepo.GetByID(ownerID)
	if err != nil {
		return "", fmt.Errorf("owner lookup failed: %w", err)
	}

	req := &models.ParkingSpotRequest{
		ID:          uuid.New().String(),
		Type:        models.RequestNewSpot,
		OwnerID:     ownerID,
		OwnerEmail:  owner.Email,
		Status:      models.RequestPending,
		NewSpotData: &fields,
	}
	if err := e.RequestRepo.Create(req); err != nil {
		return "", err
	}
	return req.ID, nil
}

// SubmitEditRequest snapshots the current spot state and files a pending
// edit_spot request. The caller must own the spot.
func (e *DefaultWorkflowEngine) SubmitEditRequest(ctx context.Context, ownerID, spotID string, fields models.SpotFields) (string, error) {
	if err := validateSpotFields(fields); err != nil {
		return "", err
	}

	spot, err := e.requireOwnership(ownerID, spotID)
	if err != nil {
		return "", err
	}
	owner, err := e.UserRepo.GetByID(ownerID)
	if err != nil {
		return "", fmt.Errorf("owner lookup failed: %w", err)
	}

	current := snapshotFields(*spot)
	req := &models.ParkingSpotRequest{
		ID:                uuid.New().String(),
		Type:              models.RequestEditSpot,
		OwnerID:           ownerID,
		OwnerEmail:        owner.Email,
		Status:            models.RequestPending,
		SpotID:            spotID,
		CurrentSpotData:   &current,
		RequestedSpotData: &fields,
	}
	if err := e.RequestRepo.Create(req); err != nil {
		return "", err
	}
	return req.ID, nil
}

// SubmitAvailabilityUpdate files a pending availability_update request.
// The caller must own the spot.
func (e *DefaultWorkflowEngine) SubmitAvailabilityUpdate(ctx context.Context, ownerID, spotID string, requested models.Availability) (string, error) {
	if requested != models.SpotAvailable && requested != models.SpotUnavailable {
		return "", &ValidationError{Field: "availability", Reason: "must be available or unavailable"}
	}

	spot, err := e.requireOwnership(ownerID, spotID)
	if err != nil {
		return "", err
	}
	owner, err := e.UserRepo.GetByID(ownerID)
	if err != nil {
		return "", fmt.Errorf("owner lookup failed: %w", err)
	}

	req := &models.ParkingSpotRequest{
		ID:                    uuid.New().String(),
		Type:                  models.RequestAvailabilityUpdate,
		OwnerID:               ownerID,
		OwnerEmail:            owner.Email,
		Status:                models.RequestPending,
		SpotID:                spotID,
		CurrentAvailability:   spot.Availability,
		RequestedAvailability: requested,
	}
	if err := e.RequestRepo.Create(req); err != nil {
		return "", err
	}
	return req.ID, nil
}

// Approve claims a pending request and applies its payload to the spot
// store, then notifies the owner. The claim is the terminal-state guard:
// an already-reviewed request surfaces ErrInvalidState and nothing is
// applied twice. No rollback is attempted if a later step fails.
func (e *DefaultWorkflowEngine) Approve(ctx context.Context, adminID, requestID string) error {
	logger := utils.GetLogger()

	if err := e.requireAdmin(adminID); err != nil {
		return err
	}
	req, err := e.RequestRepo.GetByID(requestID)
	if err != nil {
		return err
	}

	now := time.Now()
	if err := e.RequestRepo.MarkReviewed(requestID, models.RequestApproved, adminID, "", now); err != nil {
		if err == requestRepo.ErrNotPending {
			return ErrInvalidState
		}
		return err
	}

	spotID, err := e.applyApproved(req)
	if err != nil {
		logger.Error("approved request could not be applied",
			zap.String("requestID", requestID), zap.Error(err))
		return err
	}

	e.Notifier.Notify(ctx, req.OwnerID, "Request approved",
		approvalMessage(req), map[string]string{"request_id": req.ID, "spot_id": spotID})

	if e.Events != nil && spotID != "" {
		e.Events.Publish(events.Event{SpotID: spotID, Kind: "spot_updated", Payload: req.Type})
	}

	logger.Info("request approved",
		zap.String("requestID", requestID), zap.String("type", string(req.Type)),
		zap.String("adminID", adminID))
	return nil
}

// Reject claims a pending request with a mandatory reason and notifies the
// owner. The spot store is never touched.
func (e *DefaultWorkflowEngine) Reject(ctx context.Context, adminID, requestID, reason string) error {
	if strings.TrimSpace(reason) == "" {
		return &ValidationError{Field: "reason", Reason: "rejection reason is required"}
	}
	if err := e.requireAdmin(adminID); err != nil {
		return err
	}
	req, err := e.RequestRepo.GetByID(requestID)
	if err != nil {
		return err
	}

	if err := e.RequestRepo.MarkReviewed(requestID, models.RequestRejected, adminID, reason, time.Now()); err != nil {
		if err == requestRepo.ErrNotPending {
			return ErrInvalidState
		}
		return err
	}

	e.Notifier.Notify(ctx, req.OwnerID, "Request rejected",
		fmt.Sprintf("Your %s request was rejected: %s", requestLabel(req.Type), reason),
		map[string]string{"request_id": req.ID})
	return nil
}

// ListPendingRequests returns the admin review queue.
func (e *DefaultWorkflowEngine) ListPendingRequests(adminID string) ([]models.ParkingSpotRequest, error) {
	if err := e.requireAdmin(adminID); err != nil {
		return nil, err
	}
	return e.RequestRepo.QueryPending()
}

// ListOwnerRequests returns an owner's own submissions.
func (e *DefaultWorkflowEngine) ListOwnerRequests(ownerID string) ([]models.ParkingSpotRequest, error) {
	return e.RequestRepo.QueryByOwner(ownerID)
}

// applyApproved dispatches the request payload onto the spot store and
// returns the affected spot id.
func (e *DefaultWorkflowEngine) applyApproved(req *models.ParkingSpotRequest) (string, error) {
	switch req.Type {
	case models.RequestNewSpot:
		spot := &models.ParkingSpot{
			ID:           uuid.New().String(),
			OwnerID:      req.OwnerID,
			Name:         req.NewSpotData.Name,
			Description:  req.NewSpotData.Description,
			Address:      req.NewSpotData.Address,
			City:         req.NewSpotData.City,
			PricePerHour: req.NewSpotData.PricePerHour,
			ImageURL:     req.NewSpotData.ImageURL,
			Days:         req.NewSpotData.Days,
			TimeSlots:    req.NewSpotData.TimeSlots,
			Availability: models.SpotAvailable,
			Status:       models.SpotApproved,
		}
		if err := e.SpotRepo.Create(spot); err != nil {
			return "", err
		}
		return spot.ID, nil

	case models.RequestEditSpot:
		fields := req.RequestedSpotData
		err := e.SpotRepo.UpdateFields(req.SpotID, bson.M{
			"name":           fields.Name,
			"description":    fields.Description,
			"address":        fields.Address,
			"city":           fields.City,
			"price_per_hour": fields.PricePerHour,
			"image_url":      fields.ImageURL,
			"days":           fields.Days,
			"time_slots":     fields.TimeSlots,
		})
		return req.SpotID, err

	case models.RequestAvailabilityUpdate:
		return req.SpotID, e.SpotRepo.SetAvailability(req.SpotID, req.RequestedAvailability)

	default:
		return "", fmt.Errorf("unknown request type %q", req.Type)
	}
}

// requireAdmin resolves the caller's user record and checks the admin
// role. Role is read from the store, not a token claim.
func (e *DefaultWorkflowEngine) requireAdmin(adminID string) error {
	u, err := e.UserRepo.GetByID(adminID)
	if err != nil {
		return ErrUnauthorized
	}
	if u.Role != models.RoleAdmin {
		return ErrUnauthorized
	}
	return nil
}

// requireOwnership resolves the spot and checks that ownerID owns it.
func (e *DefaultWorkflowEngine) requireOwnership(ownerID, spotID string) (*models.ParkingSpot, error) {
	spot, err := e.SpotRepo.GetByID(spotID)
	if err != nil {
		return nil, err
	}
	if spot.OwnerID != ownerID {
		return nil, ErrUnauthorized
	}
	return spot, nil
}

func validateSpotFields(fields models.SpotFields) error {
	switch {
	case strings.TrimSpace(fields.Name) == "":
		return &ValidationError{Field: "name", Reason: "required"}
	case strings.TrimSpace(fields.Address) == "":
		return &ValidationError{Field: "address", Reason: "required"}
	case strings.TrimSpace(fields.City) == "":
		return &ValidationError{Field: "city", Reason: "required"}
	case fields.PricePerHour < 0:
		return &ValidationError{Field: "price_per_hour", Reason: "must not be negative"}
	case len(fields.Days) == 0:
		return &ValidationError{Field: "days", Reason: "at least one weekday required"}
	case len(fields.TimeSlots) == 0:
		return &ValidationError{Field: "time_slots", Reason: "at least one time slot required"}
	}
	for _, ts := range fields.TimeSlots {
		if ts.Start < 0 || ts.End > 24*60 || ts.Start >= ts.End {
			return &ValidationError{Field: "time_slots", Reason: "slot must satisfy 0 <= start < end <= 1440"}
		}
	}
	return nil
}

func snapshotFields(spot models.ParkingSpot) models.SpotFields {
	return models.SpotFields{
		Name:         spot.Name,
		Description:  spot.Description,
		Address:      spot.Address,
		City:         spot.City,
		PricePerHour: spot.PricePerHour,
		ImageURL:     spot.ImageURL,
		Days:         spot.Days,
		TimeSlots:    spot.TimeSlots,
	}
}

func requestLabel(t models.RequestType) string {
	switch t {
	case models.RequestNewSpot:
		return "new spot"
	case models.RequestEditSpot:
		return "spot edit"
	case models.RequestAvailabilityUpdate:
		return "availability change"
	default:
		return string(t)
	}
}

func approvalMessage(req *models.ParkingSpotRequest) string {
	switch req.Type {
	case models.RequestNewSpot:
		return fmt.Sprintf("Your parking spot %q is now live.", req.NewSpotData.Name)
	case models.RequestEditSpot:
		return "Your spot edit has been applied."
	case models.RequestAvailabilityUpdate:
		return fmt.Sprintf("Your spot is now marked %s.", req.RequestedAvailability)
	default:
		return "Your request was approved."
	}
}
