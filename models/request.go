package models

import "time"

// RequestType discriminates the payload carried by a ParkingSpotRequest.
type RequestType string

const (
	RequestNewSpot            RequestType = "new_spot"
	RequestEditSpot           RequestType = "edit_spot"
	RequestAvailabilityUpdate RequestType = "availability_update"
)

// RequestStatus is the workflow state of a request. Approved and rejected
// are terminal; re-submission means a new request record.
type RequestStatus string

const (
	RequestPending  RequestStatus = "pending"
	RequestApproved RequestStatus = "approved"
	RequestRejected RequestStatus = "rejected"
)

// IsTerminal reports whether the request has already been reviewed.
func (s RequestStatus) IsTerminal() bool {
	return s == RequestApproved || s == RequestRejected
}

// SpotFields is the owner-editable attribute set of a listing, used as the
// payload of new-spot and edit requests.
type SpotFields struct {
	Name         string     `bson:"name" json:"name"`
	Description  string     `bson:"description,omitempty" json:"description,omitempty"`
	Address      string     `bson:"address" json:"address"`
	City         string     `bson:"city" json:"city"`
	PricePerHour float64    `bson:"price_per_hour" json:"price_per_hour"`
	ImageURL     string     `bson:"image_url,omitempty" json:"image_url,omitempty"`
	Days         []string   `bson:"days" json:"days"`
	TimeSlots    []TimeSlot `bson:"time_slots" json:"time_slots"`
}

// ParkingSpotRequest is an owner-submitted change awaiting admin review.
// Exactly one payload variant is populated, matching Type.
type ParkingSpotRequest struct {
	ID         string        `bson:"id" json:"id"`
	Type       RequestType   `bson:"type" json:"type"`
	OwnerID    string        `bson:"owner_id" json:"owner_id"`
	OwnerEmail string        `bson:"owner_email" json:"owner_email"`
	Status     RequestStatus `bson:"status" json:"status"`

	// new_spot payload.
	NewSpotData *SpotFields `bson:"new_spot_data,omitempty" json:"new_spot_data,omitempty"`

	// edit_spot payload.
	SpotID            string      `bson:"spot_id,omitempty" json:"spot_id,omitempty"`
	CurrentSpotData   *SpotFields `bson:"current_spot_data,omitempty" json:"current_spot_data,omitempty"`
	RequestedSpotData *SpotFields `bson:"requested_spot_data,omitempty" json:"requested_spot_data,omitempty"`

	// availability_update payload (shares SpotID with edit_spot).
	CurrentAvailability   Availability `bson:"current_availability,omitempty" json:"current_availability,omitempty"`
	RequestedAvailability Availability `bson:"requested_availability,omitempty" json:"requested_availability,omitempty"`

	ReviewedBy      string     `bson:"reviewed_by,omitempty" json:"reviewed_by,omitempty"`
	ReviewedAt      *time.Time `bson:"reviewed_at,omitempty" json:"reviewed_at,omitempty"`
	RejectionReason string     `bson:"rejection_reason,omitempty" json:"rejection_reason,omitempty"`
	CreatedAt       time.Time  `bson:"created_at" json:"created_at"`
}
