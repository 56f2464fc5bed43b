// Package store keeps the latest placement of each overlay.
//
// Records are JSON-encoded into a [cache.Cache], so the same store runs
// in memory, on disk or in Redis. Save always replaces the previous record:
// concurrent writers race and the last write wins, the same rule a
// [tracker.Tracker] applies in-process.
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/matzehuels/anchorage/pkg/anchor"
	"github.com/matzehuels/anchorage/pkg/cache"
	"github.com/matzehuels/anchorage/pkg/errors"
	"github.com/matzehuels/anchorage/pkg/observability"
	"github.com/matzehuels/anchorage/pkg/scenario"
)

const keyType = "placement"

// Record is the stored state of one overlay.
type Record struct {
	ID        string            `json:"id"`
	Request   scenario.Scenario `json:"request"`
	Placement anchor.Placement  `json:"placement"`
	Revision  uint64            `json:"revision"`
	UpdatedAt time.Time         `json:"updated_at"`
}

// Store persists records in a cache backend.
type Store struct {
	cache cache.Cache
	ttl   time.Duration
	now   func() time.Time

	// mu serializes read-modify-write of revisions within this process.
	mu sync.Mutex
}

// New returns a store backed by c. Records expire after ttl; zero keeps
// them until deleted.
func New(c cache.Cache, ttl time.Duration) *Store {
	return &Store{cache: c, ttl: ttl, now: time.Now}
}

// Save stores the placement computed for req under id and returns the
// stored record. The revision is one past the previous record's.
func (s *Store) Save(ctx context.Context, id string, req scenario.Scenario, p anchor.Placement) (Record, error) {
	if err := errors.ValidateOverlayID(id); err != nil {
		return Record{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	prev, _, err := s.load(ctx, id)
	if err != nil {
		return Record{}, err
	}
	rec := Record{
		ID:        id,
		Request:   req,
		Placement: p,
		Revision:  prev.Revision + 1,
		UpdatedAt: s.now().UTC(),
	}

	data, err := json.Marshal(rec)
	if err != nil {
		return Record{}, errors.Wrap(errors.ErrCodeInternal, err, "encode record %s", id)
	}
	if err := s.cache.Set(ctx, key(id), data, s.ttl); err != nil {
		return Record{}, fmt.Errorf("save record %s: %w", id, err)
	}
	observability.Cache().OnCacheSet(ctx, keyType, len(data))
	return rec, nil
}

// Load returns the record stored under id. ok is false when there is none.
func (s *Store) Load(ctx context.Context, id string) (Record, bool, error) {
	if err := errors.ValidateOverlayID(id); err != nil {
		return Record{}, false, err
	}
	return s.load(ctx, id)
}

// Delete removes the record stored under id.
func (s *Store) Delete(ctx context.Context, id string) error {
	if err := errors.ValidateOverlayID(id); err != nil {
		return err
	}
	return s.cache.Delete(ctx, key(id))
}

// Close closes the underlying cache.
func (s *Store) Close() error {
	return s.cache.Close()
}

func (s *Store) load(ctx context.Context, id string) (Record, bool, error) {
	data, hit, err := s.cache.Get(ctx, key(id))
	if err != nil {
		return Record{}, false, fmt.Errorf("load record %s: %w", id, err)
	}
	if !hit {
		observability.Cache().OnCacheMiss(ctx, keyType)
		return Record{}, false, nil
	}
	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		// A record written by an incompatible version; treat as absent.
		observability.Cache().OnCacheMiss(ctx, keyType)
		return Record{}, false, nil
	}
	observability.Cache().OnCacheHit(ctx, keyType)
	return rec, true, nil
}

func key(id string) string {
	return keyType + ":" + id
}
