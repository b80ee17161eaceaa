package core

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
)

// LineSource supplies the raw rows the store loads from.
type LineSource interface {
	ReadLines(ctx context.Context) ([]string, error)
}

// LineSink receives encoded rows appended by the store.
type LineSink interface {
	AppendLine(ctx context.Context, line string) error
}

// DecodePolicy controls what a load does with a row that has the right shape
// but cannot be decoded (bad id, impossible date).
type DecodePolicy string

const (
	// DecodeAbort fails the whole load on the first undecodable row.
	DecodeAbort DecodePolicy = "abort"
	// DecodeSkip drops undecodable rows and logs them.
	DecodeSkip DecodePolicy = "skip"
)

// Valid reports whether p is a known policy.
func (p DecodePolicy) Valid() bool {
	return p == DecodeAbort || p == DecodeSkip
}

type storeState int

const (
	storeUnloaded storeState = iota
	storeLoaded
)

// LoadStats summarizes the most recent successful load.
type LoadStats struct {
	Lines      int // rows returned by the source
	Valid      int // rows that passed IsValidRow
	Records    int // distinct vendors cached
	Duplicates int // exact duplicates dropped
	Skipped    int // undecodable rows dropped under DecodeSkip
}

// Store is a lazily loaded, process-lifetime cache of vendors backed by a
// LineSource, with appends going to a LineSink.
//
// The first ReadAll loads every row from the source. Later calls return the
// cached set without reading the source again, even if it has changed.
// Append writes through to the sink and does not touch the cache, so appended
// vendors only appear after a restart.
type Store struct {
	source LineSource
	sink   LineSink
	codec  Codec
	policy DecodePolicy
	logger *slog.Logger

	mu      sync.Mutex
	state   storeState
	records RecordSet
	stats   LoadStats
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithDecodePolicy sets how undecodable rows are handled. Default: DecodeAbort.
func WithDecodePolicy(p DecodePolicy) StoreOption {
	return func(s *Store) {
		s.policy = p
	}
}

// WithLogger sets the logger used for load diagnostics.
func WithLogger(l *slog.Logger) StoreOption {
	return func(s *Store) {
		s.logger = l
	}
}

// NewStore creates an unloaded store.
func NewStore(source LineSource, sink LineSink, opts ...StoreOption) *Store {
	s := &Store{
		source: source,
		sink:   sink,
		policy: DecodeAbort,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	return s
}

// ReadAll returns every vendor known to the store.
//
// On the first successful call the source is read and the result cached for
// the life of the Store. If the source fails, the error wraps
// ErrSourceUnavailable and the store stays unloaded so a later call retries.
// A row that cannot be decoded under DecodeAbort fails the load with
// ErrCorruptSource wrapped around the decode error.
func (s *Store) ReadAll(ctx context.Context) (RecordSet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == storeLoaded {
		return s.records, nil
	}

	records, stats, err := s.load(ctx)
	if err != nil {
		return RecordSet{}, err
	}

	s.records = records
	s.stats = stats
	s.state = storeLoaded
	return s.records, nil
}

// Append encodes v and writes it to the sink. The cached set is left as is.
func (s *Store) Append(ctx context.Context, v Vendor) error {
	line := s.codec.Encode(v)
	if err := s.sink.AppendLine(ctx, line); err != nil {
		return fmt.Errorf("%w: append vendor %d: %w", ErrSinkUnavailable, v.ID, err)
	}
	s.logger.Debug("vendor appended", "id", v.ID, "region", v.Region)
	return nil
}

// Loaded reports whether the cache has been populated.
func (s *Store) Loaded() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state == storeLoaded
}

// Stats returns the counts from the load that populated the cache.
// It is the zero value while the store is unloaded.
func (s *Store) Stats() LoadStats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stats
}

// load reads, filters, decodes and dedupes the source rows. Caller holds s.mu.
func (s *Store) load(ctx context.Context) (RecordSet, LoadStats, error) {
	s.logger.Debug("loading vendors")

	lines, err := s.source.ReadLines(ctx)
	if err != nil {
		return RecordSet{}, LoadStats{}, fmt.Errorf("%w: %w", ErrSourceUnavailable, err)
	}

	stats := LoadStats{Lines: len(lines)}
	var b recordSetBuilder

	for i, line := range lines {
		if !s.codec.IsValidRow(line) {
			continue
		}
		stats.Valid++

		v, err := s.codec.Decode(line)
		if err != nil {
			if s.policy == DecodeSkip {
				stats.Skipped++
				s.logger.Warn("skipping undecodable vendor row", "line", i+1, "error", err)
				continue
			}
			return RecordSet{}, LoadStats{}, fmt.Errorf("%w: load vendors: line %d: %w", ErrCorruptSource, i+1, err)
		}
		b.add(v)
	}

	stats.Duplicates = b.duplicates
	records := b.build()
	stats.Records = records.Len()

	s.logger.Info("vendors loaded",
		"lines", stats.Lines,
		"valid", stats.Valid,
		"records", stats.Records,
		"duplicates", stats.Duplicates,
		"skipped", stats.Skipped,
	)
	return records, stats, nil
}
