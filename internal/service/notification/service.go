package notification

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"foxbuy-watchdog/internal/domain"
	"foxbuy-watchdog/internal/repository"
	"foxbuy-watchdog/internal/service/email"
)

// Service delivers watchdog matches. Dispatch sends exactly one message per
// call; it either succeeds for the whole batch or fails for the whole batch.
type Service interface {
	Dispatch(ctx context.Context, ownerID uuid.UUID, matches []domain.WatchdogMatch) error
}

type service struct {
	userRepo repository.UserRepository
	emailSvc email.Service
	siteURL  string
}

func NewService(userRepo repository.UserRepository, emailSvc email.Service, domainName string) Service {
	return &service{
		userRepo: userRepo,
		emailSvc: emailSvc,
		siteURL:  "https://" + domainName,
	}
}

func (s *service) Dispatch(ctx context.Context, ownerID uuid.UUID, matches []domain.WatchdogMatch) error {
	if len(matches) == 0 {
		return nil
	}

	owner, err := s.userRepo.GetByID(ctx, ownerID)
	if err != nil {
		return fmt.Errorf("%w: failed to get owner %s: %w", domain.ErrDispatchFailure, ownerID, err)
	}
	if owner == nil || owner.Email == "" {
		return fmt.Errorf("%w: owner %s has no deliverable address", domain.ErrDispatchFailure, ownerID)
	}

	for _, m := range matches {
		if m.Watchdog.OwnerID != ownerID {
			return fmt.Errorf("%w: watchdog %s does not belong to owner %s", domain.ErrDispatchFailure, m.Watchdog.ID, ownerID)
		}
	}

	digest := email.WatchdogDigest{
		RecipientName: owner.Username,
		Items:         s.digestItems(matches),
	}

	if err := s.emailSvc.SendWatchdogDigest(ctx, owner.Email, digest); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrDispatchFailure, err)
	}
	return nil
}

// digestItems lists each ad once, with every watchdog it satisfied.
func (s *service) digestItems(matches []domain.WatchdogMatch) []email.DigestItem {
	var items []email.DigestItem
	index := make(map[int64]int)

	for _, m := range matches {
		i, ok := index[m.Ad.ID]
		if !ok {
			price := "price on request"
			if m.Ad.Price != nil {
				price = domain.FormatPrice(*m.Ad.Price)
			}
			items = append(items, email.DigestItem{
				AdID:  m.Ad.ID,
				Title: m.Ad.Title,
				Price: price,
				Link:  fmt.Sprintf("%s/advertisement/%d", s.siteURL, m.Ad.ID),
			})
			i = len(items) - 1
			index[m.Ad.ID] = i
		}
		items[i].Watchdogs = append(items[i].Watchdogs, m.Watchdog.Describe())
	}

	return items
}
