// Package metrics provides per-session metrics collection.
//
// The Collector accumulates counters during a single playback session. It is
// a leaf package with no internal dependencies. All increment methods are
// nil-receiver safe, so components can run with metrics disabled.
package metrics

import "sync"

// Snapshot is an immutable point-in-time view of session metrics.
// Returned by Collector.Snapshot(). Safe to read concurrently after creation.
type Snapshot struct {
	// Loading
	FramesLoaded     int64
	BatchesCompleted int64
	LoadFailures     int64

	// Playback
	Ticks          int64
	FramesRendered int64
	RenderFailures int64
	Wraps          int64

	// Dimensions (informational, set at construction)
	Prefix     string
	SessionID  string
	SourceKind string
}

// Collector accumulates metrics during a single session.
// Thread-safe via sync.Mutex.
type Collector struct {
	mu sync.Mutex

	framesLoaded     int64
	batchesCompleted int64
	loadFailures     int64

	ticks          int64
	framesRendered int64
	renderFailures int64
	wraps          int64

	prefix     string
	sessionID  string
	sourceKind string
}

// NewCollector creates a Collector with dimension labels.
func NewCollector(prefix, sessionID, sourceKind string) *Collector {
	return &Collector{
		prefix:     prefix,
		sessionID:  sessionID,
		sourceKind: sourceKind,
	}
}

// --- Loading ---

// IncFrameLoaded records one frame slot transitioning to loaded.
func (c *Collector) IncFrameLoaded() {
	if c == nil {
		return
	}
	c.mu.Lock()
	c.framesLoaded++
	c.mu.Unlock()
}

// IncBatchCompleted records completion of one load batch.
func (c *Collector) IncBatchCompleted() {
	if c == nil {
		return
	}
	c.mu.Lock()
	c.batchesCompleted++
	c.mu.Unlock()
}

// IncLoadFailure records a frame load failure.
func (c *Collector) IncLoadFailure() {
	if c == nil {
		return
	}
	c.mu.Lock()
	c.loadFailures++
	c.mu.Unlock()
}

// --- Playback ---

// IncTick records one scheduler tick evaluation.
func (c *Collector) IncTick() {
	if c == nil {
		return
	}
	c.mu.Lock()
	c.ticks++
	c.mu.Unlock()
}

// IncFrameRendered records one frame drawn to the surface.
func (c *Collector) IncFrameRendered() {
	if c == nil {
		return
	}
	c.mu.Lock()
	c.framesRendered++
	c.mu.Unlock()
}

// IncRenderFailure records a draw failure that stopped playback.
func (c *Collector) IncRenderFailure() {
	if c == nil {
		return
	}
	c.mu.Lock()
	c.renderFailures++
	c.mu.Unlock()
}

// IncWrap records the frame index wrapping past the last frame.
func (c *Collector) IncWrap() {
	if c == nil {
		return
	}
	c.mu.Lock()
	c.wraps++
	c.mu.Unlock()
}

// Snapshot returns an immutable view of all counters.
// Nil-receiver safe: returns a zero Snapshot.
func (c *Collector) Snapshot() Snapshot {
	if c == nil {
		return Snapshot{}
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	return Snapshot{
		FramesLoaded:     c.framesLoaded,
		BatchesCompleted: c.batchesCompleted,
		LoadFailures:     c.loadFailures,
		Ticks:            c.ticks,
		FramesRendered:   c.framesRendered,
		RenderFailures:   c.renderFailures,
		Wraps:            c.wraps,
		Prefix:           c.prefix,
		SessionID:        c.sessionID,
		SourceKind:       c.sourceKind,
	}
}
