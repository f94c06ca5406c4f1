// Package types defines core domain types for the flipbook engine.
//
//nolint:revive // types is a common Go package naming convention
package types

// SessionMeta identifies one playback session. A session is one configured
// frame sequence bound to one drawable surface; a process may run several
// sessions independently.
type SessionMeta struct {
	// SessionID is a unique identifier for this session instance.
	SessionID string
	// Prefix is the sequence name prefix. It doubles as the path segment
	// and filename stem of the sequence's frames, and keys all log output
	// for the session.
	Prefix string
}

// PlaybackStatus is the scheduler's tagged control state. Exactly one
// status holds at any time; there are no independent playing/loading/error
// booleans to fall out of agreement.
type PlaybackStatus string

const (
	// StatusIdle is the initial state, before the first Play. It is
	// reachable only once, at session start.
	StatusIdle PlaybackStatus = "idle"
	// StatusPlaying means the tick loop is armed and frames advance.
	StatusPlaying PlaybackStatus = "playing"
	// StatusStopped means playback was halted. The frame position is
	// preserved and playback can be restarted.
	StatusStopped PlaybackStatus = "stopped"
)

// Active returns true if the status has an armed tick loop.
func (s PlaybackStatus) Active() bool {
	return s == StatusPlaying
}
