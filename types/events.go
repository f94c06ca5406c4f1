package types

// SessionEventType discriminates session lifecycle events published to
// downstream adapters.
type SessionEventType string

// Session event type constants.
const (
	// EventFramesLoaded fires when every frame slot has loaded.
	EventFramesLoaded SessionEventType = "frames_loaded"
	// EventLoadFailed fires when a frame fails to load. The session is
	// permanently unusable after this event.
	EventLoadFailed SessionEventType = "load_failed"
	// EventPlaybackStarted fires on each transition into playing.
	EventPlaybackStarted SessionEventType = "playback_started"
	// EventPlaybackStopped fires on each transition out of playing,
	// whether by Stop, play-once completion, or a render failure.
	EventPlaybackStopped SessionEventType = "playback_stopped"
)

// IsTerminal returns true if no further events follow this one.
func (e SessionEventType) IsTerminal() bool {
	return e == EventLoadFailed
}

// SessionEvent is the payload published to adapters when a session
// changes lifecycle state.
type SessionEvent struct {
	ContractVersion string           `json:"contract_version"`
	EventType       SessionEventType `json:"event_type"`
	SessionID       string           `json:"session_id"`
	Prefix          string           `json:"prefix"`
	Timestamp       string           `json:"timestamp"` // ISO 8601
	// FrameCount is the configured sequence length.
	FrameCount int `json:"frame_count"`
	// FrameIndex is the current frame position, when meaningful
	// (playback events; -1 otherwise).
	FrameIndex int `json:"frame_index"`
	// Error carries the failure description for load_failed events.
	Error string `json:"error,omitempty"`
}
