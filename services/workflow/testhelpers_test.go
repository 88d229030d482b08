package workflow

import (
	"context"
	"sync"
	"time"

	requestRepo "bookmyspot/database/repository/request"
	spotRepo "bookmyspot/database/repository/spot"
	userRepo "bookmyspot/database/repository/user"
	"bookmyspot/models"

	"go.mongodb.org/mongo-driver/bson"
)

type fakeSpotRepo struct {
	mu    sync.Mutex
	spots map[string]models.ParkingSpot
}

func newFakeSpotRepo(spots ...models.ParkingSpot) *fakeSpotRepo {
	r := &fakeSpotRepo{spots: make(map[string]models.ParkingSpot)}
	for _, s := range spots {
		r.spots[s.ID] = s
	}
	return r
}

func (r *fakeSpotRepo) GetByID(id string) (*models.ParkingSpot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.spots[id]
	if !ok {
		return nil, spotRepo.ErrNotFound
	}
	return &s, nil
}

func (r *fakeSpotRepo) QueryByOwner(ownerID string) ([]models.ParkingSpot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.ParkingSpot
	for _, s := range r.spots {
		if s.OwnerID == ownerID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *fakeSpotRepo) QueryApproved(city string) ([]models.ParkingSpot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.ParkingSpot
	for _, s := range r.spots {
		if s.Status == models.SpotApproved {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *fakeSpotRepo) Create(spot *models.ParkingSpot) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.spots[spot.ID] = *spot
	return nil
}

func (r *fakeSpotRepo) UpdateFields(id string, fields bson.M) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.spots[id]
	if !ok {
		return spotRepo.ErrNotFound
	}
	if v, ok := fields["name"]; ok {
		s.Name = v.(string)
	}
	if v, ok := fields["description"]; ok {
		s.Description = v.(string)
	}
	if v, ok := fields["address"]; ok {
		s.Address = v.(string)
	}
	if v, ok := fields["city"]; ok {
		s.City = v.(string)
	}
	if v, ok := fields["price_per_hour"]; ok {
		s.PricePerHour = v.(float64)
	}
	if v, ok := fields["days"]; ok {
		s.Days = v.([]string)
	}
	if v, ok := fields["time_slots"]; ok {
		s.TimeSlots = v.([]models.TimeSlot)
	}
	if v, ok := fields["availability"]; ok {
		s.Availability = v.(models.Availability)
	}
	r.spots[id] = s
	return nil
}

func (r *fakeSpotRepo) SetAvailability(id string, availability models.Availability) error {
	return r.UpdateFields(id, bson.M{"availability": availability})
}

func (r *fakeSpotRepo) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.spots[id]; !ok {
		return spotRepo.ErrNotFound
	}
	delete(r.spots, id)
	return nil
}

func (r *fakeSpotRepo) all() []models.ParkingSpot {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.ParkingSpot
	for _, s := range r.spots {
		out = append(out, s)
	}
	return out
}

type fakeRequestRepo struct {
	mu       sync.Mutex
	requests map[string]models.ParkingSpotRequest
}

func newFakeRequestRepo() *fakeRequestRepo {
	return &fakeRequestRepo{requests: make(map[string]models.ParkingSpotRequest)}
}

func (r *fakeRequestRepo) Create(req *models.ParkingSpotRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	req.CreatedAt = time.Now()
	r.requests[req.ID] = *req
	return nil
}

func (r *fakeRequestRepo) GetByID(id string) (*models.ParkingSpotRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	req, ok := r.requests[id]
	if !ok {
		return nil, requestRepo.ErrNotFound
	}
	return &req, nil
}

func (r *fakeRequestRepo) QueryPending() ([]models.ParkingSpotRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.ParkingSpotRequest
	for _, req := range r.requests {
		if req.Status == models.RequestPending {
			out = append(out, req)
		}
	}
	return out, nil
}

func (r *fakeRequestRepo) QueryByOwner(ownerID string) ([]models.ParkingSpotRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.ParkingSpotRequest
	for _, req := range r.requests {
		if req.OwnerID == ownerID {
			out = append(out, req)
		}
	}
	return out, nil
}

func (r *fakeRequestRepo) MarkReviewed(id string, status models.RequestStatus, reviewerID, reason string, reviewedAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	req, ok := r.requests[id]
	if !ok {
		return requestRepo.ErrNotFound
	}
	if req.Status != models.RequestPending {
		return requestRepo.ErrNotPending
	}
	req.Status = status
	req.ReviewedBy = reviewerID
	req.ReviewedAt = &reviewedAt
	req.RejectionReason = reason
	r.requests[id] = req
	return nil
}

type fakeUserRepo struct {
	users map[string]models.User
}

func newFakeUserRepo(users ...models.User) *fakeUserRepo {
	r := &fakeUserRepo{users: make(map[string]models.User)}
	for _, u := range users {
		r.users[u.ID] = u
	}
	return r
}

func (r *fakeUserRepo) GetByID(id string) (*models.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, userRepo.ErrNotFound
	}
	return &u, nil
}

func (r *fakeUserRepo) GetByEmail(email string) (*models.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, userRepo.ErrNotFound
}

func (r *fakeUserRepo) Create(user *models.User) error {
	r.users[user.ID] = *user
	return nil
}

func (r *fakeUserRepo) SetFCMToken(id, token string) error {
	u, ok := r.users[id]
	if !ok {
		return userRepo.ErrNotFound
	}
	u.FCMToken = token
	r.users[id] = u
	return nil
}

type fakeNotifier struct {
	mu    sync.Mutex
	calls []string
}

func (n *fakeNotifier) Notify(ctx context.Context, userID, title, message string, action map[string]string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.calls = append(n.calls, userID+": "+title)
}

func validFields() models.SpotFields {
	return models.SpotFields{
		Name:         "Central Garage",
		Address:      "1 High St",
		City:         "London",
		PricePerHour: 5,
		Days:         []string{"Monday", "Tuesday"},
		TimeSlots:    []models.TimeSlot{{Start: 9 * 60, End: 17 * 60}},
	}
}

func newTestEngine() (*DefaultWorkflowEngine, *fakeSpotRepo, *fakeRequestRepo, *fakeNotifier) {
	spots := newFakeSpotRepo(models.ParkingSpot{
		ID:           "spot-1",
		OwnerID:      "owner-1",
		Name:         "Side Alley",
		Address:      "2 Low St",
		City:         "London",
		PricePerHour: 3,
		Days:         []string{"Monday"},
		TimeSlots:    []models.TimeSlot{{Start: 8 * 60, End: 12 * 60}},
		Availability: models.SpotAvailable,
		Status:       models.SpotApproved,
	})
	requests := newFakeRequestRepo()
	users := newFakeUserRepo(
		models.User{ID: "owner-1", Email: "owner@example.com", Role: models.RoleOwner},
		models.User{ID: "owner-2", Email: "other@example.com", Role: models.RoleOwner},
		models.User{ID: "admin-1", Email: "admin@example.com", Role: models.RoleAdmin},
		models.User{ID: "driver-1", Email: "driver@example.com", Role: models.RoleDriver},
	)
	notifier := &fakeNotifier{}
	engine := &DefaultWorkflowEngine{
		SpotRepo:    spots,
		RequestRepo: requests,
		UserRepo:    users,
		Notifier:    notifier,
	}
	return engine, spots, requests, notifier
}
