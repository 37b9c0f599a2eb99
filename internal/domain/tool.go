package domain

import (
	"strings"
	"time"
)

const (
	maxToolNameLen = 100
	maxImageURLLen = 255
)

type Tool struct {
	ID             int32      `json:"id"`
	OwnerID        int32      `json:"owner_id"`
	Owner          *User      `json:"owner,omitempty"` // Populated when fetching tool details
	Name           string     `json:"name"`
	Description    string     `json:"description"`
	ImageURL       string     `json:"image_url"`
	DailyRateCents int64      `json:"daily_rate_cents"`
	DepositCents   int64      `json:"deposit_cents"`
	Available      bool       `json:"available"`
	CreatedOn      time.Time  `json:"created_on"`
	DeletedOn      *time.Time `json:"deleted_on,omitempty"`
}

func (t *Tool) Validate() error {
	if strings.TrimSpace(t.Name) == "" {
		return invalid("name", "is required")
	}
	if len(t.Name) > maxToolNameLen {
		return invalid("name", "must be at most %d characters", maxToolNameLen)
	}
	if len(t.ImageURL) > maxImageURLLen {
		return invalid("image_url", "must be at most %d characters", maxImageURLLen)
	}
	if t.DailyRateCents < 0 {
		return invalid("daily_rate", "must not be negative")
	}
	if t.DepositCents < 0 {
		return invalid("deposit", "must not be negative")
	}
	if t.OwnerID <= 0 {
		return invalid("owner_id", "is required")
	}
	return nil
}

// ToolPatch lists the fields an owner may change. Nil means "leave as is".
type ToolPatch struct {
	Name           *string
	Description    *string
	ImageURL       *string
	DailyRateCents *int64
	DepositCents   *int64
	Available      *bool
}

// Apply copies the set fields onto t. The caller re-validates afterwards.
func (p ToolPatch) Apply(t *Tool) {
	if p.Name != nil {
		t.Name = *p.Name
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.ImageURL != nil {
		t.ImageURL = *p.ImageURL
	}
	if p.DailyRateCents != nil {
		t.DailyRateCents = *p.DailyRateCents
	}
	if p.DepositCents != nil {
		t.DepositCents = *p.DepositCents
	}
	if p.Available != nil {
		t.Available = *p.Available
	}
}
