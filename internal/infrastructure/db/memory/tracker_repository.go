// Package memory holds an in-process tracker store for local runs and tests.
// It applies domain.TrackerFilter directly and keeps trackers sorted newest
// first, mirroring the ordering the Mongo repository asks the server for.
package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"sync"

	"github.com/99minutos/tracker-dashboard/internal/core/domain"
)

type TrackerRepository struct {
	mu       sync.RWMutex
	trackers []*domain.Tracker
}

func NewTrackerRepository(trackers ...*domain.Tracker) *TrackerRepository {
	r := &TrackerRepository{}
	r.Add(trackers...)
	return r
}

// LoadFile reads a JSON array of trackers, as exported from the trackers
// collection, into a new repository.
func LoadFile(path string) (*TrackerRepository, error) {
	trackers, err := readSeedFile(path)
	if err != nil {
		return nil, err
	}
	return NewTrackerRepository(trackers...), nil
}

// Reload replaces the stored trackers with the contents of path. On error the
// current contents are kept.
func (r *TrackerRepository) Reload(path string) (int, error) {
	trackers, err := readSeedFile(path)
	if err != nil {
		return 0, err
	}
	fresh := NewTrackerRepository(trackers...)

	r.mu.Lock()
	r.trackers = fresh.trackers
	r.mu.Unlock()
	return len(trackers), nil
}

func readSeedFile(path string) ([]*domain.Tracker, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}
	var trackers []*domain.Tracker
	if err := json.Unmarshal(raw, &trackers); err != nil {
		return nil, fmt.Errorf("decode seed file: %w", err)
	}
	return trackers, nil
}

// Add stores copies of the given trackers.
func (r *TrackerRepository) Add(trackers ...*domain.Tracker) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, t := range trackers {
		clone := *t
		r.trackers = append(r.trackers, &clone)
	}
	sort.SliceStable(r.trackers, func(i, j int) bool {
		return r.trackers[i].CreatedAt.After(r.trackers[j].CreatedAt)
	})
}

// Len returns the number of stored trackers.
func (r *TrackerRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.trackers)
}

func (r *TrackerRepository) List(ctx context.Context, filter domain.TrackerFilter, page, limit int) ([]*domain.Tracker, int64, error) {
	matched, err := r.FindAll(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	total := int64(len(matched))

	skip := (page - 1) * limit
	if skip < 0 {
		skip = 0
	}
	if skip >= len(matched) {
		return []*domain.Tracker{}, total, nil
	}
	end := min(skip+limit, len(matched))
	return matched[skip:end], total, nil
}

func (r *TrackerRepository) FindAll(ctx context.Context, filter domain.TrackerFilter) ([]*domain.Tracker, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []*domain.Tracker{}
	for _, t := range r.trackers {
		if filter.Matches(t) {
			clone := *t
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *TrackerRepository) FindByID(ctx context.Context, id string) (*domain.Tracker, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, t := range r.trackers {
		if t.ID == id {
			clone := *t
			return &clone, nil
		}
	}
	return nil, domain.ErrTrackerNotFound
}
