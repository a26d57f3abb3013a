package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Watchdog is a stored set of search criteria owned by a VIP user. Every unset
// filter is a wildcard.
type Watchdog struct {
	ID         uuid.UUID `json:"id" db:"watchdog_id"`
	OwnerID    uuid.UUID `json:"owner_id" db:"owner_id"`
	Keyword    *string   `json:"keyword,omitempty" db:"keyword"`
	CategoryID *int64    `json:"category_id,omitempty" db:"category_id"`
	PriceMin   *float64  `json:"price_min,omitempty" db:"price_min"`
	PriceMax   *float64  `json:"price_max,omitempty" db:"price_max"`
	Active     bool      `json:"active" db:"active"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}

// MaxPriceBound is the largest value the NUMERIC(12,2) price columns hold.
const MaxPriceBound = 9999999999.99

// Price bounds are stored with two decimals, so anything finer is rejected
// instead of being rounded by the database.
type CreateWatchdogInput struct {
	Keyword    string   `json:"keyword" validate:"max=100"`
	CategoryID *int64   `json:"category_id,omitempty" validate:"omitempty,gt=0"`
	PriceMin   *float64 `json:"price_min,omitempty" validate:"omitempty,gte=0,lte=9999999999.99,cents"`
	PriceMax   *float64 `json:"price_max,omitempty" validate:"omitempty,gte=0,lte=9999999999.99,cents"`
}

func (in CreateWatchdogInput) ToWatchdog(ownerID uuid.UUID) *Watchdog {
	w := &Watchdog{
		ID:         uuid.New(),
		OwnerID:    ownerID,
		CategoryID: in.CategoryID,
		PriceMin:   in.PriceMin,
		PriceMax:   in.PriceMax,
		Active:     true,
		CreatedAt:  time.Now().UTC(),
	}
	if kw := strings.TrimSpace(in.Keyword); kw != "" {
		w.Keyword = &kw
	}
	return w
}

func (w *Watchdog) KeywordValue() string {
	if w.Keyword == nil {
		return ""
	}
	return *w.Keyword
}

// SameFilters compares the (keyword, category, price_min, price_max) tuple.
// Keywords compare case-insensitively, the same way they match.
func (w *Watchdog) SameFilters(other *Watchdog) bool {
	return strings.EqualFold(w.KeywordValue(), other.KeywordValue()) &&
		equalPtr(w.CategoryID, other.CategoryID) &&
		equalPtr(w.PriceMin, other.PriceMin) &&
		equalPtr(w.PriceMax, other.PriceMax)
}

func (w *Watchdog) ConfirmationMessage() string {
	if kw := w.KeywordValue(); kw != "" {
		return fmt.Sprintf("Watchdog '%s' has been set up successfully", kw)
	}
	return "Watchdog has been set up successfully"
}

// Describe renders the filters for notification copy, e.g. `"bike", category 3, 100-200`.
func (w *Watchdog) Describe() string {
	var parts []string
	if kw := w.KeywordValue(); kw != "" {
		parts = append(parts, fmt.Sprintf("%q", kw))
	}
	if w.CategoryID != nil {
		parts = append(parts, fmt.Sprintf("category %d", *w.CategoryID))
	}
	switch {
	case w.PriceMin != nil && w.PriceMax != nil:
		parts = append(parts, fmt.Sprintf("%s-%s", FormatPrice(*w.PriceMin), FormatPrice(*w.PriceMax)))
	case w.PriceMin != nil:
		parts = append(parts, "from "+FormatPrice(*w.PriceMin))
	case w.PriceMax != nil:
		parts = append(parts, "up to "+FormatPrice(*w.PriceMax))
	}
	if len(parts) == 0 {
		return "all listings"
	}
	return strings.Join(parts, ", ")
}

// NotificationRecord marks a (watchdog, ad) pair as delivered.
type NotificationRecord struct {
	WatchdogID uuid.UUID `json:"watchdog_id" db:"watchdog_id"`
	AdID       int64     `json:"ad_id" db:"ad_id"`
	SentAt     time.Time `json:"sent_at" db:"sent_at"`
}

// WatchdogMatch pairs a matched watchdog with the ad that satisfied it.
type WatchdogMatch struct {
	Watchdog Watchdog
	Ad       AdSnapshot
}

func FormatPrice(p float64) string {
	if p == float64(int64(p)) {
		return fmt.Sprintf("%d", int64(p))
	}
	return fmt.Sprintf("%.2f", p)
}

func equalPtr[T comparable](a, b *T) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
