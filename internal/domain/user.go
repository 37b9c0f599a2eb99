package domain

import (
	"strings"
	"time"
)

const (
	maxUsernameLen = 50
	maxEmailLen    = 100
	maxPhoneLen    = 20
	maxAddressLen  = 200
)

type User struct {
	ID           int32     `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Phone        string    `json:"phone"`
	Address      string    `json:"address"`
	IsAdmin      bool      `json:"is_admin"` // stored, never consulted for authorization
	CreatedOn    time.Time `json:"created_on"`

	// Loaded for the account views only
	Tools    []Tool    `json:"tools,omitempty"`
	Bookings []Booking `json:"bookings,omitempty"`
	Reviews  []Review  `json:"reviews,omitempty"`
}

// Validate applies the write-time checks for a new account.
func (u *User) Validate() error {
	if strings.TrimSpace(u.Username) == "" {
		return invalid("username", "is required")
	}
	if len(u.Username) > maxUsernameLen {
		return invalid("username", "must be at most %d characters", maxUsernameLen)
	}
	if u.Email == "" {
		return invalid("email", "is required")
	}
	if !strings.Contains(u.Email, "@") {
		return &ValidationError{Field: "email", Message: "Invalid email address"}
	}
	if len(u.Email) > maxEmailLen {
		return invalid("email", "must be at most %d characters", maxEmailLen)
	}
	if len(u.Phone) > maxPhoneLen {
		return invalid("phone", "must be at most %d characters", maxPhoneLen)
	}
	if len(u.Address) > maxAddressLen {
		return invalid("address", "must be at most %d characters", maxAddressLen)
	}
	return nil
}
