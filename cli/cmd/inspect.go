package cmd

import (
	"fmt"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/lithica-io/flipbook/cli/render"
	"github.com/lithica-io/flipbook/frame"
	"github.com/lithica-io/flipbook/probe"
)

// InspectResponse is the rendered result of probing a sequence.
type InspectResponse struct {
	Prefix     string `json:"prefix" yaml:"prefix"`
	FrameCount int    `json:"frame_count" yaml:"frame_count"`
	Pattern    string `json:"pattern" yaml:"pattern"`
	Width      int    `json:"width" yaml:"width"`
	Height     int    `json:"height" yaml:"height"`
	Source     string `json:"source" yaml:"source"`
	ProbedAt   string `json:"probed_at" yaml:"probed_at"`
	Cached     bool   `json:"cached" yaml:"cached"`
}

// InspectCommand returns the inspect command. It probes the first frame
// of a sequence for its dimensions without loading the rest.
func InspectCommand() *cli.Command {
	return &cli.Command{
		Name:      "inspect",
		Usage:     "Probe a sequence's frame dimensions",
		ArgsUsage: "<sequence>",
		Flags: append(append([]cli.Flag{ConfigFlag, FormatFlag, NoColorFlag}, sequenceFlags()...),
			&cli.BoolFlag{
				Name:  "no-cache",
				Usage: "Probe the source even when a cached record exists",
			},
			&cli.StringFlag{
				Name:  "cache",
				Usage: "Probe cache file",
				Value: probe.DefaultCachePath,
			},
		),
		Action: inspectAction,
	}
}

func inspectAction(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return cli.Exit(err.Error(), exitConfigError)
	}

	sc, err := resolveSequence(c, cfg)
	if err != nil {
		return cli.Exit(err.Error(), exitConfigError)
	}
	if sc.FrameCount <= 0 {
		return cli.Exit("inspect requires a frame count: pass --frames or configure the sequence", exitConfigError)
	}

	r, err := render.NewRenderer(c)
	if err != nil {
		return err
	}

	paths := frame.NewPathBuilder(sc.ImageBasePath, sc.NamePrefix, sc.Digits)
	cache := probe.NewCache(c.String("cache"))

	var (
		record *probe.Record
		cached bool
	)
	if !c.Bool("no-cache") {
		records, err := cache.Load()
		if err != nil {
			return cli.Exit(fmt.Sprintf("read probe cache: %v", err), exitConfigError)
		}
		if rec, ok := records[sc.NamePrefix]; ok && rec.FrameCount == sc.FrameCount {
			record, cached = rec, true
		}
	}

	if record == nil {
		rec, err := probe.Sequence(c.Context, sc.Source, paths, sc.FrameCount)
		if err != nil {
			return cli.Exit(fmt.Sprintf("probe failed: %v", err), exitLoadFailure)
		}
		if err := cache.Upsert(rec); err != nil {
			return cli.Exit(fmt.Sprintf("write probe cache: %v", err), exitConfigError)
		}
		record = rec
	}

	return r.Render(InspectResponse{
		Prefix:     record.Prefix,
		FrameCount: record.FrameCount,
		Pattern:    paths.Pattern(),
		Width:      record.Width,
		Height:     record.Height,
		Source:     sc.Source.Kind(),
		ProbedAt:   time.Unix(record.ProbedAt, 0).UTC().Format(time.RFC3339),
		Cached:     cached,
	})
}
