package watchdog

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"foxbuy-watchdog/internal/domain"
	"foxbuy-watchdog/internal/pkg/metrics"
	"foxbuy-watchdog/internal/pkg/validation"
	"foxbuy-watchdog/internal/repository"
	"foxbuy-watchdog/internal/service/notification"
)

// Owners within one event are dispatched in parallel up to this many at a time.
const maxParallelDispatch = 4

type Service interface {
	Register(ctx context.Context, ownerID uuid.UUID, input domain.CreateWatchdogInput) (*domain.Watchdog, error)
	OnAdEvent(ctx context.Context, event domain.AdEvent) error
	ListByOwner(ctx context.Context, ownerID uuid.UUID, params domain.PaginationParams) (domain.PaginatedResponse[domain.Watchdog], error)
	Delete(ctx context.Context, ownerID, id uuid.UUID) error
	DeactivateOwner(ctx context.Context, ownerID uuid.UUID) (int64, error)
	ListNotifications(ctx context.Context, id uuid.UUID) ([]domain.NotificationRecord, error)
}

// PrivilegeProvider is queried on every registration and once per owner per
// ad event.
type PrivilegeProvider interface {
	HasElevatedPrivilege(ctx context.Context, userID uuid.UUID) (bool, error)
}

type service struct {
	watchdogRepo repository.WatchdogRepository
	recordRepo   repository.NotificationRecordRepository
	ledger       Ledger
	privileges   PrivilegeProvider
	dispatcher   notification.Service
	validator    *validation.Validator
	metrics      *metrics.Metrics
	log          *zap.Logger
}

func NewService(
	watchdogRepo repository.WatchdogRepository,
	recordRepo repository.NotificationRecordRepository,
	ledger Ledger,
	privileges PrivilegeProvider,
	dispatcher notification.Service,
	m *metrics.Metrics,
	log *zap.Logger,
) Service {
	return &service{
		watchdogRepo: watchdogRepo,
		recordRepo:   recordRepo,
		ledger:       ledger,
		privileges:   privileges,
		dispatcher:   dispatcher,
		validator:    validation.New(),
		metrics:      m,
		log:          log,
	}
}

func (s *service) Register(ctx context.Context, ownerID uuid.UUID, input domain.CreateWatchdogInput) (*domain.Watchdog, error) {
	if err := s.validator.Validate(input); err != nil {
		return nil, err
	}
	if input.PriceMin != nil && input.PriceMax != nil && *input.PriceMin > *input.PriceMax {
		return nil, domain.NewValidationError("validation failed", map[string]string{
			"price_min": "must be less than or equal to price_max",
		})
	}

	elevated, err := s.privileges.HasElevatedPrivilege(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to check privilege: %w", domain.ErrStoreFailure, err)
	}
	if !elevated {
		return nil, domain.ErrNotAuthorized
	}

	w := input.ToWatchdog(ownerID)

	existing, err := s.watchdogRepo.FindActiveByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to load watchdogs: %w", domain.ErrStoreFailure, err)
	}
	for i := range existing {
		if existing[i].SameFilters(w) {
			return nil, domain.ErrDuplicateCriteria
		}
	}

	// The unique index still decides when two registrations race past the check above.
	if err := s.watchdogRepo.Create(ctx, w); err != nil {
		if errors.Is(err, domain.ErrDuplicateCriteria) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: failed to create watchdog: %w", domain.ErrStoreFailure, err)
	}

	s.metrics.IncWatchdogsCreated()
	s.log.Info("watchdog registered",
		zap.Stringer("watchdog_id", w.ID),
		zap.Stringer("owner_id", ownerID),
		zap.String("filters", w.Describe()))

	return w, nil
}

func (s *service) OnAdEvent(ctx context.Context, event domain.AdEvent) (err error) {
	if err := event.Validate(); err != nil {
		return err
	}

	start := time.Now()
	ad := event.Ad
	log := s.log.With(zap.String("kind", string(event.Kind)), zap.Int64("ad_id", ad.ID))

	defer func() {
		outcome := "ok"
		if err != nil {
			outcome = "error"
		}
		s.metrics.ObserveAdEvent(string(event.Kind), outcome, time.Since(start))
	}()

	candidates, err := s.watchdogRepo.FindActiveByCategoryOrUnfiltered(ctx, ad.CategoryID)
	if err != nil {
		return fmt.Errorf("%w: failed to load watchdogs: %w", domain.ErrStoreFailure, err)
	}
	if len(candidates) == 0 {
		return nil
	}

	eligible := s.filterPrivileged(ctx, candidates, log)
	matched := Evaluate(ad, eligible)
	s.metrics.AddMatches(len(matched))

	pending := s.filterUnsent(ctx, ad.ID, matched, log)
	if len(pending) == 0 {
		log.Debug("ad event produced no new notifications",
			zap.Int("candidates", len(candidates)), zap.Int("matched", len(matched)))
		return nil
	}

	batches := groupByOwner(ad, pending)
	err = s.dispatchAll(ctx, batches, log)

	log.Info("ad event evaluated",
		zap.Int("candidates", len(candidates)),
		zap.Int("eligible", len(eligible)),
		zap.Int("matched", len(matched)),
		zap.Int("pending", len(pending)),
		zap.Int("owners", len(batches)))

	return err
}

// filterPrivileged drops watchdogs whose owner is no longer VIP and
// deactivates them. Each owner is looked up at most once per event. When the
// lookup itself fails, the owner's watchdogs sit this event out untouched.
func (s *service) filterPrivileged(ctx context.Context, candidates []domain.Watchdog, log *zap.Logger) []domain.Watchdog {
	type state int
	const (
		elevated state = iota
		revoked
		unknown
	)

	owners := make(map[uuid.UUID]state)
	eligible := make([]domain.Watchdog, 0, len(candidates))

	for _, w := range candidates {
		st, seen := owners[w.OwnerID]
		if !seen {
			ok, err := s.privileges.HasElevatedPrivilege(ctx, w.OwnerID)
			switch {
			case err != nil:
				log.Warn("privilege lookup failed, skipping owner for this event",
					zap.Stringer("owner_id", w.OwnerID), zap.Error(err))
				st = unknown
			case ok:
				st = elevated
			default:
				st = revoked
			}
			owners[w.OwnerID] = st
		}

		switch st {
		case elevated:
			eligible = append(eligible, w)
		case revoked:
			if err := s.watchdogRepo.Deactivate(ctx, w.ID); err != nil {
				log.Error("failed to deactivate watchdog",
					zap.Stringer("watchdog_id", w.ID), zap.Error(err))
				continue
			}
			s.metrics.IncDeactivations()
			log.Info("watchdog deactivated, owner lost VIP",
				zap.Stringer("watchdog_id", w.ID), zap.Stringer("owner_id", w.OwnerID))
		}
	}

	return eligible
}

// filterUnsent drops pairs already in the ledger. A pair whose status cannot
// be read is dropped too: a missed alert is preferred over a repeated one.
func (s *service) filterUnsent(ctx context.Context, adID int64, matched []domain.Watchdog, log *zap.Logger) []domain.Watchdog {
	pending := make([]domain.Watchdog, 0, len(matched))
	for _, w := range matched {
		sent, err := s.ledger.Exists(ctx, w.ID, adID)
		if err != nil {
			log.Warn("ledger check failed, suppressing match",
				zap.Stringer("watchdog_id", w.ID), zap.Error(err))
			s.metrics.IncSuppressed()
			continue
		}
		if sent {
			s.metrics.IncSuppressed()
			continue
		}
		pending = append(pending, w)
	}
	return pending
}

type ownerBatch struct {
	ownerID uuid.UUID
	matches []domain.WatchdogMatch
}

// groupByOwner keeps owners in first-seen order.
func groupByOwner(ad domain.AdSnapshot, pending []domain.Watchdog) []ownerBatch {
	var batches []ownerBatch
	index := make(map[uuid.UUID]int)

	for _, w := range pending {
		i, ok := index[w.OwnerID]
		if !ok {
			batches = append(batches, ownerBatch{ownerID: w.OwnerID})
			i = len(batches) - 1
			index[w.OwnerID] = i
		}
		batches[i].matches = append(batches[i].matches, domain.WatchdogMatch{Watchdog: w, Ad: ad})
	}
	return batches
}

func (s *service) dispatchAll(ctx context.Context, batches []ownerBatch, log *zap.Logger) error {
	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		errs []error
		sem  = make(chan struct{}, maxParallelDispatch)
	)

	for _, b := range batches {
		wg.Add(1)
		sem <- struct{}{}
		go func(b ownerBatch) {
			defer wg.Done()
			defer func() { <-sem }()

			if err := s.dispatchOwner(ctx, b, log); err != nil {
				mu.Lock()
				errs = append(errs, err)
				mu.Unlock()
			}
		}(b)
	}
	wg.Wait()

	return errors.Join(errs...)
}

// dispatchOwner sends one owner's batch and records every pair only after the
// transport accepted it.
func (s *service) dispatchOwner(ctx context.Context, b ownerBatch, log *zap.Logger) error {
	log = log.With(zap.Stringer("owner_id", b.ownerID), zap.Int("matches", len(b.matches)))

	if err := s.dispatcher.Dispatch(ctx, b.ownerID, b.matches); err != nil {
		s.metrics.IncDispatchFailures()
		log.Warn("watchdog notification not delivered", zap.Error(err))
		if !errors.Is(err, domain.ErrDispatchFailure) {
			err = fmt.Errorf("%w: %w", domain.ErrDispatchFailure, err)
		}
		return err
	}
	s.metrics.IncNotificationsSent()

	var errs []error
	for _, m := range b.matches {
		if err := s.ledger.Record(ctx, m.Watchdog.ID, m.Ad.ID); err != nil {
			log.Error("failed to record sent notification",
				zap.Stringer("watchdog_id", m.Watchdog.ID), zap.Error(err))
			errs = append(errs, fmt.Errorf("%w: failed to record watchdog %s: %w", domain.ErrStoreFailure, m.Watchdog.ID, err))
		}
	}
	return errors.Join(errs...)
}

func (s *service) ListByOwner(ctx context.Context, ownerID uuid.UUID, params domain.PaginationParams) (domain.PaginatedResponse[domain.Watchdog], error) {
	params.Validate()

	watchdogs, total, err := s.watchdogRepo.ListByOwner(ctx, ownerID, params)
	if err != nil {
		return domain.PaginatedResponse[domain.Watchdog]{}, fmt.Errorf("%w: failed to list watchdogs: %w", domain.ErrStoreFailure, err)
	}

	return domain.NewPaginatedResponse(watchdogs, params, total), nil
}

func (s *service) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	w, err := s.watchdogRepo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("%w: failed to get watchdog: %w", domain.ErrStoreFailure, err)
	}
	if w == nil {
		return domain.ErrWatchdogNotFound
	}
	if w.OwnerID != ownerID {
		return domain.ErrForbidden
	}

	if err := s.watchdogRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrWatchdogNotFound) {
			return err
		}
		return fmt.Errorf("%w: failed to delete watchdog: %w", domain.ErrStoreFailure, err)
	}

	s.log.Info("watchdog deleted", zap.Stringer("watchdog_id", id), zap.Stringer("owner_id", ownerID))
	return nil
}

// DeactivateOwner is the eager counterpart to lazy deactivation, for callers
// that learn about a role downgrade directly.
func (s *service) DeactivateOwner(ctx context.Context, ownerID uuid.UUID) (int64, error) {
	n, err := s.watchdogRepo.DeactivateByOwner(ctx, ownerID)
	if err != nil {
		return 0, fmt.Errorf("%w: failed to deactivate watchdogs: %w", domain.ErrStoreFailure, err)
	}
	s.metrics.AddDeactivations(n)
	if n > 0 {
		s.log.Info("watchdogs deactivated for owner", zap.Stringer("owner_id", ownerID), zap.Int64("count", n))
	}
	return n, nil
}

func (s *service) ListNotifications(ctx context.Context, id uuid.UUID) ([]domain.NotificationRecord, error) {
	w, err := s.watchdogRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to get watchdog: %w", domain.ErrStoreFailure, err)
	}
	if w == nil {
		return nil, domain.ErrWatchdogNotFound
	}

	records, err := s.recordRepo.ListByWatchdog(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to list notifications: %w", domain.ErrStoreFailure, err)
	}
	return records, nil
}
