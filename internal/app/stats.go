package app

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"shieldhero-quiz/internal/domain"
)

// Storage keys shared by every Store backend.
const (
	KeyTheme = "shieldhero-theme"
	KeySound = "shieldhero-sound"
	KeyStats = "shieldhero-stats"
)

// StatsStore keeps the best score and attempt count across sessions.
// Storage failures degrade to the in-memory record. While the persisted record
// could not be read, nothing is written over it.
type StatsStore struct {
	store  Store
	log    *zap.Logger
	now    func() time.Time
	record domain.StatsRecord
	// unread is set while the persisted record is unknown; unsaved counts the
	// attempts recorded meanwhile.
	unread  bool
	unsaved int
}

// NewStatsStore creates a store with zero stats; call Load to read the persisted record.
func NewStatsStore(store Store, log *zap.Logger) *StatsStore {
	if log == nil {
		log = zap.NewNop()
	}
	return &StatsStore{store: store, log: log, now: time.Now}
}

// NewStatsStoreWithClock is used by tests for deterministic timestamps.
func NewStatsStoreWithClock(store Store, log *zap.Logger, now func() time.Time) *StatsStore {
	s := NewStatsStore(store, log)
	s.now = now
	return s
}

// Load reads the persisted record, or defaults when absent or unreadable.
func (s *StatsStore) Load(ctx context.Context) domain.StatsRecord {
	s.record = domain.StatsRecord{}
	s.unread = false
	s.unsaved = 0
	if s.store == nil {
		return s.record
	}
	rec, err := s.read(ctx)
	if err != nil {
		s.log.Warn("stats unavailable, using defaults", zap.Error(err))
		s.unread = true
		return s.record
	}
	s.record = rec
	return s.record
}

// Record folds a final score into the stats and persists them in one write.
func (s *StatsStore) Record(ctx context.Context, finalScore int) domain.StatsRecord {
	if s.store != nil && s.unread {
		if stored, err := s.read(ctx); err == nil {
			if s.record.BestScore > stored.BestScore {
				stored.BestScore = s.record.BestScore
			}
			stored.TotalAttempts += s.unsaved
			if s.record.LastPlayed.After(stored.LastPlayed) {
				stored.LastPlayed = s.record.LastPlayed
			}
			s.record = stored
			s.unread = false
			s.unsaved = 0
		}
	}

	rec := s.record
	if finalScore > rec.BestScore {
		rec.BestScore = finalScore
	}
	rec.TotalAttempts++
	rec.LastPlayed = s.now().UTC()
	s.record = rec

	if s.store == nil {
		return rec
	}
	if s.unread {
		s.unsaved++
		s.log.Warn("stats store unreadable, keeping record in memory")
		return rec
	}
	data, err := json.Marshal(rec)
	if err != nil {
		s.log.Warn("encode stats", zap.Error(err))
		return rec
	}
	if err := s.store.Set(ctx, KeyStats, string(data)); err != nil {
		s.log.Warn("persist stats failed, kept in memory", zap.Error(err))
	}
	return rec
}

// read returns the persisted record. Absent or undecodable records read as defaults.
func (s *StatsStore) read(ctx context.Context) (domain.StatsRecord, error) {
	raw, ok, err := s.store.Get(ctx, KeyStats)
	if err != nil {
		return domain.StatsRecord{}, err
	}
	if !ok || raw == "" {
		return domain.StatsRecord{}, nil
	}
	var rec domain.StatsRecord
	if err := json.Unmarshal([]byte(raw), &rec); err != nil {
		s.log.Warn("stats record unreadable, using defaults", zap.Error(err))
		return domain.StatsRecord{}, nil
	}
	if rec.BestScore < 0 {
		rec.BestScore = 0
	}
	if rec.TotalAttempts < 0 {
		rec.TotalAttempts = 0
	}
	return rec, nil
}

// Current returns the in-memory record.
func (s *StatsStore) Current() domain.StatsRecord {
	return s.record
}
