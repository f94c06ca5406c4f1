package frame

import (
	"context"
	"fmt"
	"sync"

	"github.com/lithica-io/flipbook/iox"
	"github.com/lithica-io/flipbook/log"
	"github.com/lithica-io/flipbook/metrics"
)

// DefaultBatchSize bounds simultaneous in-flight frame loads. The
// effective batch is min(DefaultBatchSize, frame count).
const DefaultBatchSize = 45

// ProgressFunc receives the fractional load progress in (0, 1] after
// each completed batch. Reported values are monotonically non-decreasing
// and reach exactly 1.0 only when every batch has completed.
type ProgressFunc func(fraction float64)

// StoreOptions configures a Store.
type StoreOptions struct {
	// Source supplies frame bytes (required).
	Source Source
	// Paths builds frame paths (required).
	Paths *PathBuilder
	// BatchSize overrides DefaultBatchSize when positive.
	BatchSize int
	// Metrics receives load counters (optional).
	Metrics *metrics.Collector
	// Logger receives load diagnostics (optional).
	Logger *log.Logger
}

// Store owns the frame set for one sequence and loads it in fixed-size
// concurrent batches. Frames within a batch load concurrently; batches
// execute strictly sequentially, so batch N+1 never starts before every
// frame of batch N has resolved.
type Store struct {
	set       *Set
	source    Source
	paths     *PathBuilder
	batchSize int
	collector *metrics.Collector
	logger    *log.Logger
}

// NewStore creates a store with frameCount empty slots.
func NewStore(frameCount int, opts StoreOptions) *Store {
	batch := opts.BatchSize
	if batch <= 0 {
		batch = DefaultBatchSize
	}
	return &Store{
		set:       NewSet(frameCount),
		source:    opts.Source,
		paths:     opts.Paths,
		batchSize: batch,
		collector: opts.Metrics,
		logger:    opts.Logger,
	}
}

// Set returns the underlying frame set.
func (s *Store) Set() *Set {
	return s.set
}

// Frame returns the frame at slot index i, or false if empty.
func (s *Store) Frame(i int) (*Frame, bool) {
	return s.set.Frame(i)
}

// Path returns the constructed path for the given 1-based frame number.
func (s *Store) Path(number int) string {
	return s.paths.Path(number)
}

// LoadAll loads every empty slot, in batches. onProgress (optional) is
// invoked after each completed batch with completedBatches/totalBatches.
//
// The first frame failure aborts the sequence with a *LoadError naming
// the lowest failing frame number; slots that already loaded stay loaded
// (no rollback). Slots loaded by a previous call are skipped and do not
// count toward progress twice.
func (s *Store) LoadAll(ctx context.Context, onProgress ProgressFunc) error {
	count := s.set.Len()
	if count == 0 {
		return fmt.Errorf("frame store has no slots")
	}

	batch := s.batchSize
	if batch > count {
		batch = count
	}
	totalBatches := (count + batch - 1) / batch

	for b := 0; b < totalBatches; b++ {
		first := b*batch + 1 // 1-based frame numbers
		last := first + batch - 1
		if last > count {
			last = count
		}

		var (
			wg       sync.WaitGroup
			mu       sync.Mutex
			firstErr *LoadError
		)
		for n := first; n <= last; n++ {
			if _, ok := s.set.Frame(n - 1); ok {
				continue
			}
			wg.Add(1)
			go func(number int) {
				defer wg.Done()
				if err := s.loadOne(ctx, number); err != nil {
					mu.Lock()
					if firstErr == nil || err.Number < firstErr.Number {
						firstErr = err
					}
					mu.Unlock()
				}
			}(n)
		}
		wg.Wait()

		if firstErr != nil {
			s.collector.IncLoadFailure()
			if s.logger != nil {
				s.logger.Error("frame load failed", map[string]any{
					"frame":  firstErr.Number,
					"path":   firstErr.Path,
					"error":  firstErr.Err.Error(),
					"loaded": s.set.LoadedCount(),
				})
			}
			return firstErr
		}

		s.collector.IncBatchCompleted()
		if s.logger != nil {
			s.logger.Debug("batch loaded", map[string]any{
				"batch":   b + 1,
				"batches": totalBatches,
				"loaded":  s.set.LoadedCount(),
			})
		}
		if onProgress != nil {
			onProgress(float64(b+1) / float64(totalBatches))
		}
	}

	return nil
}

// loadOne fetches and decodes frame number, storing it at slot number-1.
func (s *Store) loadOne(ctx context.Context, number int) *LoadError {
	path := s.paths.Path(number)

	rc, err := s.source.Open(ctx, path)
	if err != nil {
		return newLoadError(number, path, err)
	}
	defer iox.DiscardClose(rc)

	img, w, h, err := decode(rc)
	if err != nil {
		return newLoadError(number, path, err)
	}

	if s.set.put(number-1, &Frame{Image: img, Width: w, Height: h}) {
		s.collector.IncFrameLoaded()
	}
	return nil
}
