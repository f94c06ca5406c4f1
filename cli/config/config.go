package config

import (
	"fmt"
	"sort"
	"time"
)

// Config represents a flipbook.yaml configuration file.
// All values are optional and act as defaults for flipbook play flags.
// CLI flags always override config values.
type Config struct {
	Defaults  Defaults                  `yaml:"defaults"`
	Sequences map[string]SequenceConfig `yaml:"sequences"`
	Adapter   AdapterConfig             `yaml:"adapter"`
}

// Defaults holds sequence defaults from the config file. Zero values
// defer to the built-in defaults.
type Defaults struct {
	BasePath    string `yaml:"base_path"`
	Digits      int    `yaml:"digits"`
	FPS         int    `yaml:"fps"`
	BatchSize   int    `yaml:"batch_size"`
	RefreshRate int    `yaml:"refresh_rate"`
}

// SequenceConfig is a sequence manifest entry within the config file.
// Name is derived from the map key, not stored in the struct.
type SequenceConfig struct {
	FrameCount int          `yaml:"frame_count"`
	BasePath   string       `yaml:"base_path,omitempty"`
	Digits     int          `yaml:"digits,omitempty"`
	FPS        int          `yaml:"fps,omitempty"`
	NoLoop     bool         `yaml:"no_loop,omitempty"`
	NoAutoplay bool         `yaml:"no_autoplay,omitempty"`
	PlayOnce   bool         `yaml:"play_once,omitempty"`
	BatchSize  int          `yaml:"batch_size,omitempty"`
	Source     SourceConfig `yaml:"source,omitempty"`
}

// SourceConfig selects where frame bytes come from.
type SourceConfig struct {
	// Type is fs (default), http, or s3.
	Type string `yaml:"type,omitempty"`
	// Root is the fs directory or http base URL.
	Root string `yaml:"root,omitempty"`
	// S3 backend fields.
	Bucket      string `yaml:"bucket,omitempty"`
	Region      string `yaml:"region,omitempty"`
	Endpoint    string `yaml:"endpoint,omitempty"`
	S3PathStyle bool   `yaml:"s3_path_style,omitempty"`
}

// AdapterConfig holds event adapter defaults from the config file.
type AdapterConfig struct {
	Type    string            `yaml:"type"`
	URL     string            `yaml:"url"`
	Channel string            `yaml:"channel,omitempty"`
	Headers map[string]string `yaml:"headers,omitempty"`
	Timeout Duration          `yaml:"timeout,omitempty"`
	Retries *int              `yaml:"retries,omitempty"`
}

// Duration wraps time.Duration for YAML string parsing (e.g. "10s", "5m").
type Duration struct {
	time.Duration
}

// UnmarshalYAML parses a duration string like "10s" or "5m30s".
func (d *Duration) UnmarshalYAML(unmarshal func(any) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	if s == "" {
		return nil
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	d.Duration = parsed
	return nil
}

// SequenceEntry is a named manifest entry.
type SequenceEntry struct {
	Name string
	SequenceConfig
}

// SequenceList converts the map-keyed manifest into a sorted slice.
// Sorting by name ensures deterministic ordering.
func (c *Config) SequenceList() []SequenceEntry {
	if len(c.Sequences) == 0 {
		return nil
	}

	names := make([]string, 0, len(c.Sequences))
	for name := range c.Sequences {
		names = append(names, name)
	}
	sort.Strings(names)

	entries := make([]SequenceEntry, 0, len(names))
	for _, name := range names {
		entries = append(entries, SequenceEntry{
			Name:           name,
			SequenceConfig: c.Sequences[name],
		})
	}
	return entries
}

// Sequence returns the manifest entry with the given name.
func (c *Config) Sequence(name string) (SequenceEntry, bool) {
	sc, ok := c.Sequences[name]
	if !ok {
		return SequenceEntry{}, false
	}
	return SequenceEntry{Name: name, SequenceConfig: sc}, true
}
