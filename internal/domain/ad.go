package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

type AdEventKind string

const (
	AdCreated AdEventKind = "CREATED"
	AdUpdated AdEventKind = "UPDATED"
)

// AdSnapshot is the read-only view of a listing published by the ad service.
type AdSnapshot struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Price       *float64  `json:"price,omitempty"`
	CategoryID  *int64    `json:"category_id,omitempty"`
	OwnerID     uuid.UUID `json:"owner_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type AdEvent struct {
	Kind AdEventKind `json:"kind"`
	Ad   AdSnapshot  `json:"ad"`
}

func (e AdEvent) Validate() error {
	fields := map[string]string{}
	switch e.Kind {
	case AdCreated, AdUpdated:
	default:
		fields["kind"] = fmt.Sprintf("must be one of: %s %s", AdCreated, AdUpdated)
	}
	if e.Ad.ID <= 0 {
		fields["ad.id"] = "is required"
	}
	if len(fields) > 0 {
		return NewValidationError("invalid ad event", fields)
	}
	return nil
}
