package models

import (
	"fmt"
	"time"
)

// Availability is the owner-controlled bookable flag on a spot.
type Availability string

const (
	SpotAvailable   Availability = "available"
	SpotUnavailable Availability = "unavailable"
)

// SpotStatus is the admin approval state of a listing.
type SpotStatus string

const (
	SpotPending  SpotStatus = "pending"
	SpotApproved SpotStatus = "approved"
	SpotRejected SpotStatus = "rejected"
)

// TimeSlot is a recurring wall-clock booking window, expressed as minutes
// from midnight (e.g., 540 for 9:00 AM).
type TimeSlot struct {
	Start int `bson:"start" json:"start"`
	End   int `bson:"end" json:"end"`
}

// Label renders the slot as a human-readable range, e.g. "9:00 AM - 12:00 PM".
func (ts TimeSlot) Label() string {
	return fmt.Sprintf("%s - %s", formatClock(ts.Start), formatClock(ts.End))
}

func formatClock(minutes int) string {
	h := minutes / 60
	m := minutes % 60
	suffix := "AM"
	switch {
	case h == 0:
		h = 12
	case h == 12:
		suffix = "PM"
	case h > 12:
		h -= 12
		suffix = "PM"
	}
	return fmt.Sprintf("%d:%02d %s", h, m, suffix)
}

// ParkingSpot is a live listing. Spots are born from an approved new_spot
// request and mutated only through edit/availability requests.
type ParkingSpot struct {
	ID           string       `bson:"id" json:"id"`
	OwnerID      string       `bson:"owner_id" json:"owner_id"`
	Name         string       `bson:"name" json:"name"`
	Description  string       `bson:"description,omitempty" json:"description,omitempty"`
	Address      string       `bson:"address" json:"address"`
	City         string       `bson:"city" json:"city"`
	PricePerHour float64      `bson:"price_per_hour" json:"price_per_hour"`
	ImageURL     string       `bson:"image_url,omitempty" json:"image_url,omitempty"`
	Days         []string     `bson:"days" json:"days"` // weekday names, e.g. "Monday"
	TimeSlots    []TimeSlot   `bson:"time_slots" json:"time_slots"`
	Availability Availability `bson:"availability" json:"availability"`
	Status       SpotStatus   `bson:"status" json:"status"`
	CreatedAt    time.Time    `bson:"created_at" json:"created_at"`
	UpdatedAt    time.Time    `bson:"updated_at" json:"updated_at"`
}

// OpenOn reports whether the spot's declared weekdays include the given date.
func (s ParkingSpot) OpenOn(date time.Time) bool {
	weekday := date.Weekday().String()
	for _, d := range s.Days {
		if d == weekday {
			return true
		}
	}
	return false
}

// AvailableSlot is a declared slot resolved onto a concrete date, returned
// to callers picking a booking window.
type AvailableSlot struct {
	Start   int       `json:"start"`
	End     int       `json:"end"`
	StartAt time.Time `json:"start_at"`
	EndAt   time.Time `json:"end_at"`
	Date    string    `json:"date"` // "2006-01-02"
	Label   string    `json:"label"`
}
