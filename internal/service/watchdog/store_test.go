package watchdog_test

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"foxbuy-watchdog/internal/domain"
)

// memWatchdogs is an in-memory WatchdogRepository with the same duplicate
// rule as the unique index.
type memWatchdogs struct {
	mu   sync.Mutex
	rows map[uuid.UUID]domain.Watchdog
	seq  int
}

func newMemWatchdogs() *memWatchdogs {
	return &memWatchdogs{rows: make(map[uuid.UUID]domain.Watchdog)}
}

func (r *memWatchdogs) Create(_ context.Context, w *domain.Watchdog) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.rows {
		if existing.Active && existing.OwnerID == w.OwnerID && existing.SameFilters(w) {
			return domain.ErrDuplicateCriteria
		}
	}
	r.seq++
	w.CreatedAt = time.Unix(int64(r.seq), 0).UTC()
	r.rows[w.ID] = *w
	return nil
}

func (r *memWatchdogs) GetByID(_ context.Context, id uuid.UUID) (*domain.Watchdog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	w, ok := r.rows[id]
	if !ok {
		return nil, nil
	}
	return &w, nil
}

func (r *memWatchdogs) filter(keep func(domain.Watchdog) bool) []domain.Watchdog {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []domain.Watchdog
	for _, w := range r.rows {
		if keep(w) {
			out = append(out, w)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out
}

func (r *memWatchdogs) FindActiveByOwner(_ context.Context, ownerID uuid.UUID) ([]domain.Watchdog, error) {
	return r.filter(func(w domain.Watchdog) bool { return w.Active && w.OwnerID == ownerID }), nil
}

func (r *memWatchdogs) FindActiveByCategoryOrUnfiltered(_ context.Context, categoryID *int64) ([]domain.Watchdog, error) {
	return r.filter(func(w domain.Watchdog) bool {
		if !w.Active {
			return false
		}
		return w.CategoryID == nil || (categoryID != nil && *w.CategoryID == *categoryID)
	}), nil
}

func (r *memWatchdogs) ListByOwner(_ context.Context, ownerID uuid.UUID, params domain.PaginationParams) ([]domain.Watchdog, int64, error) {
	all := r.filter(func(w domain.Watchdog) bool { return w.OwnerID == ownerID })
	start := min(params.Offset(), len(all))
	end := min(start+params.PageSize, len(all))
	return all[start:end], int64(len(all)), nil
}

func (r *memWatchdogs) Deactivate(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if w, ok := r.rows[id]; ok {
		w.Active = false
		r.rows[id] = w
	}
	return nil
}

func (r *memWatchdogs) DeactivateByOwner(_ context.Context, ownerID uuid.UUID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var n int64
	for id, w := range r.rows {
		if w.Active && w.OwnerID == ownerID {
			w.Active = false
			r.rows[id] = w
			n++
		}
	}
	return n, nil
}

func (r *memWatchdogs) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.rows[id]; !ok {
		return domain.ErrWatchdogNotFound
	}
	delete(r.rows, id)
	return nil
}

func (r *memWatchdogs) active(id uuid.UUID) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rows[id].Active
}

type recordKey struct {
	watchdogID uuid.UUID
	adID       int64
}

// memRecords is an in-memory NotificationRecordRepository. existsErr and
// recordErr, when set, are returned by every call.
type memRecords struct {
	mu        sync.Mutex
	rows      map[recordKey]time.Time
	existsErr error
	recordErr error
}

func newMemRecords() *memRecords {
	return &memRecords{rows: make(map[recordKey]time.Time)}
}

func (r *memRecords) Exists(_ context.Context, watchdogID uuid.UUID, adID int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.existsErr != nil {
		return false, r.existsErr
	}
	_, ok := r.rows[recordKey{watchdogID, adID}]
	return ok, nil
}

func (r *memRecords) Record(_ context.Context, watchdogID uuid.UUID, adID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.recordErr != nil {
		return r.recordErr
	}
	key := recordKey{watchdogID, adID}
	if _, ok := r.rows[key]; !ok {
		r.rows[key] = time.Now().UTC()
	}
	return nil
}

func (r *memRecords) ListByWatchdog(_ context.Context, watchdogID uuid.UUID) ([]domain.NotificationRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []domain.NotificationRecord
	for k, at := range r.rows {
		if k.watchdogID == watchdogID {
			out = append(out, domain.NotificationRecord{WatchdogID: k.watchdogID, AdID: k.adID, SentAt: at})
		}
	}
	return out, nil
}

func (r *memRecords) has(watchdogID uuid.UUID, adID int64) bool {
	ok, _ := r.Exists(context.Background(), watchdogID, adID)
	return ok
}

func (r *memRecords) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.rows)
}
