// Package model contains domain models passed between layers.
package model

import (
	"fmt"
	"strings"
	"time"
)

// Event represents a catalog entry participants can register for.
// The engine treats it as immutable; only the catalog mutates its list.
type Event struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	Date        string `json:"date"`
	Location    string `json:"location"`
	Category    string `json:"category"`
	Price       int    `json:"price"`
	IsPaid      bool   `json:"is_paid"`
	Image       string `json:"image"`
	Description string `json:"description"`
}

// PaymentRecord captures how a registration was paid for.
// Free registrations synthesize one with amount 0 and no transaction id.
type PaymentRecord struct {
	Method        string     `json:"method"`
	Amount        int        `json:"amount"`
	TransactionID string     `json:"transaction_id,omitempty"`
	PaidAt        *time.Time `json:"paid_at,omitempty"`
}

// MethodFree marks a synthesized record for a free event.
const MethodFree = "Free"

// Registration is a fulfilled intent to attend an event. The Event is
// snapshotted by value so later catalog edits never change it.
type Registration struct {
	Event          `json:"event"`
	RegistrationID string        `json:"registration_id"`
	RegisteredAt   time.Time     `json:"registered_at"`
	Payment        PaymentRecord `json:"payment"`
}

// Team is the ad-hoc group formed for a single event.
type Team struct {
	Name    string   `json:"name"`
	Members []string `json:"members"`
}

// Role is the badge role printed on a credential card.
type Role string

// Credential card roles.
const (
	RoleAttendee  Role = "Attendee"
	RoleSpeaker   Role = "Speaker"
	RoleOrganizer Role = "Organizer"
	RoleVolunteer Role = "Volunteer"
	RoleVIP       Role = "VIP"
	RolePress     Role = "Press"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAttendee, RoleSpeaker, RoleOrganizer, RoleVolunteer, RoleVIP, RolePress:
		return true
	}
	return false
}

// Profile holds the user-supplied credential data, collected at most once
// per event.
type Profile struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
	Role  Role   `json:"role"`
	Photo string `json:"photo,omitempty"`
}

// Validate checks that the required profile fields are present and the role
// is known. Returns errors wrapping ErrInvalidProfile.
func (p Profile) Validate() error {
	switch {
	case strings.TrimSpace(p.Name) == "":
		return fmt.Errorf("%w: missing name", ErrInvalidProfile)
	case strings.TrimSpace(p.Email) == "":
		return fmt.Errorf("%w: missing email", ErrInvalidProfile)
	case strings.TrimSpace(p.Phone) == "":
		return fmt.Errorf("%w: missing phone", ErrInvalidProfile)
	case !p.Role.Valid():
		return fmt.Errorf("%w: unknown role %q", ErrInvalidProfile, p.Role)
	}
	return nil
}

// Notification is one entry in the activity feed.
type Notification struct {
	ID   int64  `json:"id"`
	Text string `json:"text"`
	Time string `json:"time"`
}

// CreateEventRequest is the payload for appending a catalog event.
type CreateEventRequest struct {
	Title       string `json:"title"`
	Date        string `json:"date"`
	Location    string `json:"location"`
	Category    string `json:"category"`
	Price       int    `json:"price"`
	IsPaid      bool   `json:"is_paid"`
	Image       string `json:"image"`
	Description string `json:"description"`
}

// Validate checks the required catalog fields.
func (r CreateEventRequest) Validate() error {
	switch {
	case strings.TrimSpace(r.Title) == "":
		return fmt.Errorf("%w: missing title", ErrInvalidEvent)
	case strings.TrimSpace(r.Date) == "":
		return fmt.Errorf("%w: missing date", ErrInvalidEvent)
	case strings.TrimSpace(r.Location) == "":
		return fmt.Errorf("%w: missing location", ErrInvalidEvent)
	case strings.TrimSpace(r.Description) == "":
		return fmt.Errorf("%w: missing description", ErrInvalidEvent)
	case !r.IsPaid && r.Price != 0:
		return fmt.Errorf("%w: free events must have price 0", ErrInvalidEvent)
	case r.Price < 0:
		return fmt.Errorf("%w: price must be non-negative", ErrInvalidEvent)
	}
	return nil
}
