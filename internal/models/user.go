package models

import (
	"time"

	"github.com/google/uuid"
)

// DefaultLocation is used when the user skips the location step.
const DefaultLocation = "Unknown"

// User represents a user who completed the simulated phone login.
type User struct {
	ID        uuid.UUID `json:"id"`
	Phone     string    `json:"phone"`
	Name      string    `json:"name"`
	Location  string    `json:"location"`
	CreatedAt time.Time `json:"created_at"`
}

// NewUser builds a user with a fresh ID. A blank name becomes
// "User <last four digits>" and a blank location becomes DefaultLocation.
func NewUser(phone, name, location string) *User {
	if name == "" {
		name = DefaultName(phone)
	}
	if location == "" {
		location = DefaultLocation
	}
	return &User{
		ID:        uuid.New(),
		Phone:     phone,
		Name:      name,
		Location:  location,
		CreatedAt: time.Now(),
	}
}

// DefaultName derives a display name from the phone number.
func DefaultName(phone string) string {
	suffix := phone
	if len(phone) > 4 {
		suffix = phone[len(phone)-4:]
	}
	return "User " + suffix
}
