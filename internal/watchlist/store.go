package watchlist

import (
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
)

// Store owns the current snapshot and swaps it atomically on refresh.
//
// The read path is lock-free: Current loads a single pointer, so concurrent
// screening calls always observe one fully-built snapshot for their entire
// call with no mid-query version skew. Only the (rare) refresh path takes a
// lock, to serialize concurrent loaders.
type Store struct {
	logger    *zap.Logger
	prefixLen int

	loadMu  sync.Mutex
	current atomic.Pointer[Snapshot]
}

// Status describes the store for health reporting.
type Status struct {
	Loaded      bool      `json:"loaded"`
	Version     string    `json:"version,omitempty"`
	EntryCount  int       `json:"entry_count"`
	RefreshedAt time.Time `json:"refreshed_at,omitzero"`
}

// NewStore creates an empty store. prefixLen configures the blocking index
// built on each load. A nil logger disables logging.
func NewStore(prefixLen int, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{logger: logger, prefixLen: prefixLen}
}

// Load builds a fresh snapshot from the records, entirely off to the side,
// and publishes it with a single pointer swap. In-flight readers keep the
// snapshot they started with.
func (s *Store) Load(records []Record) (*Snapshot, error) {
	s.loadMu.Lock()
	defer s.loadMu.Unlock()

	start := time.Now()
	snap, err := Build(records, s.prefixLen)
	if err != nil {
		s.logger.Error("watchlist load failed", zap.Error(err))
		return nil, err
	}

	if snap.SkippedVariants > 0 {
		s.logger.Warn("skipped name variants that normalize to zero tokens",
			zap.Int("skipped_variants", snap.SkippedVariants))
	}

	s.current.Store(snap)
	s.logger.Info("watchlist snapshot published",
		zap.String("version", snap.Version),
		zap.Int("entries", snap.Len()),
		zap.Int("variants", snap.VariantCount()),
		zap.Int("skipped_variants", snap.SkippedVariants),
		zap.Duration("build_time", time.Since(start)),
	)
	return snap, nil
}

// Refresh replaces the current snapshot with one built from records and
// returns the new snapshot's version. Intended for the external scheduler
// that periodically re-downloads the source lists.
func (s *Store) Refresh(records []Record) (string, error) {
	snap, err := s.Load(records)
	if err != nil {
		return "", err
	}
	return snap.Version, nil
}

// Current returns the latest published snapshot. It never blocks and never
// returns a partially-built snapshot; ok is false until the first successful
// Load.
func (s *Store) Current() (*Snapshot, bool) {
	snap := s.current.Load()
	return snap, snap != nil
}

// Status reports the store's load state.
func (s *Store) Status() Status {
	snap, ok := s.Current()
	if !ok {
		return Status{}
	}
	return Status{
		Loaded:      true,
		Version:     snap.Version,
		EntryCount:  snap.Len(),
		RefreshedAt: snap.BuiltAt,
	}
}
