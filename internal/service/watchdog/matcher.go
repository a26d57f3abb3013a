package watchdog

import (
	"strings"

	"foxbuy-watchdog/internal/domain"
)

// Evaluate returns the watchdogs, in input order, that the ad satisfies.
// It has no side effects.
func Evaluate(ad domain.AdSnapshot, watchdogs []domain.Watchdog) []domain.Watchdog {
	if len(watchdogs) == 0 {
		return nil
	}

	haystack := strings.ToLower(ad.Title + " " + ad.Description)

	var matched []domain.Watchdog
	for _, w := range watchdogs {
		if matches(ad, haystack, &w) {
			matched = append(matched, w)
		}
	}
	return matched
}

// Matches reports whether a single watchdog is satisfied by the ad.
func Matches(ad domain.AdSnapshot, w domain.Watchdog) bool {
	return matches(ad, strings.ToLower(ad.Title+" "+ad.Description), &w)
}

func matches(ad domain.AdSnapshot, haystack string, w *domain.Watchdog) bool {
	if kw := w.KeywordValue(); kw != "" && !strings.Contains(haystack, strings.ToLower(kw)) {
		return false
	}

	if w.CategoryID != nil && (ad.CategoryID == nil || *ad.CategoryID != *w.CategoryID) {
		return false
	}

	if w.PriceMin != nil || w.PriceMax != nil {
		if ad.Price == nil {
			return false
		}
		if w.PriceMin != nil && *ad.Price < *w.PriceMin {
			return false
		}
		if w.PriceMax != nil && *ad.Price > *w.PriceMax {
			return false
		}
	}

	return true
}
