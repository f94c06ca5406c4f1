package session

import (
	"context"
	"strconv"
)

// InitAll constructs and starts one session per config, isolating
// per-entry failures: a bad or unloadable entry is reported in the
// returned map under its name prefix and does not stop the others.
// The returned slice holds only the sessions that started.
func InitAll(ctx context.Context, configs []Config) ([]*Session, map[string]error) {
	sessions := make([]*Session, 0, len(configs))
	failures := make(map[string]error)

	for i, cfg := range configs {
		name := cfg.NamePrefix
		if name == "" {
			// Unnamed entries still need a failure key.
			name = "entry-" + strconv.Itoa(i)
		}

		s, err := New(cfg)
		if err != nil {
			failures[name] = err
			continue
		}
		if err := s.Start(ctx); err != nil {
			failures[name] = err
			continue
		}
		sessions = append(sessions, s)
	}

	return sessions, failures
}
