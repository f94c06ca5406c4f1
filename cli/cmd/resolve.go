package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/lithica-io/flipbook/adapter"
	"github.com/lithica-io/flipbook/adapter/redis"
	"github.com/lithica-io/flipbook/adapter/webhook"
	"github.com/lithica-io/flipbook/cli/config"
	"github.com/lithica-io/flipbook/frame"
	"github.com/lithica-io/flipbook/session"
)

// loadConfig resolves the config file. An explicit --config that does
// not exist is an error; the implicit default is optional.
func loadConfig(c *cli.Context) (*config.Config, error) {
	if path := c.String("config"); path != "" {
		return config.Load(path)
	}
	if _, err := os.Stat(DefaultConfigPath); err == nil {
		return config.Load(DefaultConfigPath)
	}
	return &config.Config{}, nil
}

// resolveSequence merges flags, the selected manifest entry, and the
// config defaults into a session config. Precedence: flags over entry
// over defaults over built-ins.
func resolveSequence(c *cli.Context, cfg *config.Config) (session.Config, error) {
	var entry config.SequenceEntry

	switch {
	case c.String("sequence") != "":
		name := c.String("sequence")
		e, ok := cfg.Sequence(name)
		if !ok {
			return session.Config{}, fmt.Errorf("sequence %q not found in config", name)
		}
		entry = e
	case c.String("prefix") != "":
		entry = config.SequenceEntry{Name: c.String("prefix")}
	case c.NArg() >= 1:
		name := c.Args().First()
		if e, ok := cfg.Sequence(name); ok {
			entry = e
		} else {
			entry = config.SequenceEntry{Name: name}
		}
	default:
		return session.Config{}, fmt.Errorf("a sequence is required: pass a name, --sequence, or --prefix")
	}

	sc := session.Config{
		NamePrefix:    entry.Name,
		FrameCount:    pickInt(c.Int("frames"), entry.FrameCount, 0),
		ImageBasePath: pickString(c.String("base-path"), entry.BasePath, cfg.Defaults.BasePath, session.DefaultImageBasePath),
		Digits:        pickInt(c.Int("digits"), entry.Digits, cfg.Defaults.Digits),
		FPS:           pickInt(c.Int("fps"), entry.FPS, cfg.Defaults.FPS),
		NoLoop:        c.Bool("no-loop") || entry.NoLoop,
		NoAutoplay:    c.Bool("no-autoplay") || entry.NoAutoplay,
		PlayOnce:      c.Bool("play-once") || entry.PlayOnce,
		Debug:         c.Bool("debug"),
		BatchSize:     pickInt(c.Int("batch-size"), entry.BatchSize, cfg.Defaults.BatchSize),
		RefreshRate:   pickInt(c.Int("refresh-rate"), 0, cfg.Defaults.RefreshRate),
	}

	source, err := resolveSource(c, entry.Source)
	if err != nil {
		return session.Config{}, err
	}
	sc.Source = source

	return sc, nil
}

// resolveSource builds the frame source from flags, falling back to the
// manifest entry's source block.
func resolveSource(c *cli.Context, sourceCfg config.SourceConfig) (frame.Source, error) {
	kind := pickString(c.String("source"), sourceCfg.Type, "fs")
	root := pickString(c.String("source-root"), sourceCfg.Root, "")

	switch kind {
	case "fs":
		return frame.NewFSSource(root), nil
	case "http":
		if root == "" {
			return nil, fmt.Errorf("http source requires --source-root (base URL)")
		}
		return frame.NewHTTPSource(root), nil
	case "s3":
		s3cfg := frame.S3Config{
			Bucket:       pickString(c.String("s3-bucket"), sourceCfg.Bucket, ""),
			Region:       pickString(c.String("s3-region"), sourceCfg.Region, ""),
			Endpoint:     pickString(c.String("s3-endpoint"), sourceCfg.Endpoint, ""),
			UsePathStyle: c.Bool("s3-path-style") || sourceCfg.S3PathStyle,
		}
		return frame.NewS3Source(context.Background(), s3cfg)
	default:
		return nil, fmt.Errorf("unknown source: %s (must be fs, http, or s3)", kind)
	}
}

// resolveAdapter builds the event adapter from the config file, or nil
// when none is configured.
func resolveAdapter(cfg *config.Config) (adapter.Adapter, error) {
	ac := cfg.Adapter
	switch ac.Type {
	case "":
		return nil, nil
	case "webhook":
		wcfg := webhook.Config{
			URL:     ac.URL,
			Headers: ac.Headers,
			Timeout: ac.Timeout.Duration,
			Retries: webhook.DefaultRetries,
		}
		if ac.Retries != nil {
			wcfg.Retries = *ac.Retries
		}
		return webhook.New(wcfg)
	case "redis":
		rcfg := redis.Config{
			URL:     ac.URL,
			Channel: ac.Channel,
			Timeout: ac.Timeout.Duration,
			Retries: redis.DefaultRetries,
		}
		if ac.Retries != nil {
			rcfg.Retries = *ac.Retries
		}
		return redis.New(rcfg)
	default:
		return nil, fmt.Errorf("unknown adapter type: %s (must be webhook or redis)", ac.Type)
	}
}

func pickInt(values ...int) int {
	for _, v := range values {
		if v != 0 {
			return v
		}
	}
	return 0
}

func pickString(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
