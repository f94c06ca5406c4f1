package cmd

import (
	"github.com/urfave/cli/v2"

	"github.com/lithica-io/flipbook/cli/render"
)

// SequenceSummary is one row of the list output.
type SequenceSummary struct {
	Name       string `json:"name" yaml:"name"`
	FrameCount int    `json:"frame_count" yaml:"frame_count"`
	FPS        int    `json:"fps" yaml:"fps"`
	Source     string `json:"source" yaml:"source"`
	Loop       bool   `json:"loop" yaml:"loop"`
	Autoplay   bool   `json:"autoplay" yaml:"autoplay"`
	PlayOnce   bool   `json:"play_once" yaml:"play_once"`
}

// ListCommand returns the list command, which shows the sequences the
// config file declares.
func ListCommand() *cli.Command {
	return &cli.Command{
		Name:   "list",
		Usage:  "List sequences declared in the config file",
		Flags:  ReadOnlyFlags(),
		Action: listAction,
	}
}

func listAction(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return cli.Exit(err.Error(), exitConfigError)
	}

	r, err := render.NewRenderer(c)
	if err != nil {
		return err
	}

	entries := cfg.SequenceList()
	summaries := make([]SequenceSummary, 0, len(entries))
	for _, e := range entries {
		summaries = append(summaries, SequenceSummary{
			Name:       e.Name,
			FrameCount: e.FrameCount,
			FPS:        pickInt(e.FPS, cfg.Defaults.FPS),
			Source:     pickString(e.Source.Type, "fs"),
			Loop:       !e.NoLoop,
			Autoplay:   !e.NoAutoplay,
			PlayOnce:   e.PlayOnce,
		})
	}

	return r.Render(summaries)
}
