package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/urfave/cli/v2"

	"github.com/lithica-io/flipbook/cli/render"
	"github.com/lithica-io/flipbook/cli/tui"
	"github.com/lithica-io/flipbook/session"
	"github.com/lithica-io/flipbook/surface/term"
)

// Exit codes for play.
const (
	exitConfigError = 1
	exitLoadFailure = 2
)

// PlayCommand returns the play command, the only command that renders
// frames.
func PlayCommand() *cli.Command {
	return &cli.Command{
		Name:      "play",
		Usage:     "Play a frame sequence in the terminal",
		ArgsUsage: "<sequence>",
		Flags: append(append([]cli.Flag{ConfigFlag, FormatFlag, NoColorFlag}, sequenceFlags()...),
			&cli.IntFlag{
				Name:  "fps",
				Usage: "Target playback rate in frames per second",
			},
			&cli.IntFlag{
				Name:  "batch-size",
				Usage: "Frames loaded concurrently per batch",
			},
			&cli.IntFlag{
				Name:  "refresh-rate",
				Usage: "Scheduler tick rate in Hz",
			},
			&cli.BoolFlag{
				Name:  "no-loop",
				Usage: "Stop at the final frame instead of looping",
			},
			&cli.BoolFlag{
				Name:  "no-autoplay",
				Usage: "Wait for a key press instead of playing immediately",
			},
			&cli.BoolFlag{
				Name:  "play-once",
				Usage: "Halt after the final frame has been shown once",
			},
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "Enable debug logging",
			},
			&cli.BoolFlag{
				Name:  "stats",
				Usage: "Print playback counters on exit",
			},
		),
		Action: playAction,
	}
}

func playAction(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return cli.Exit(err.Error(), exitConfigError)
	}

	sc, err := resolveSequence(c, cfg)
	if err != nil {
		return cli.Exit(err.Error(), exitConfigError)
	}

	eventAdapter, err := resolveAdapter(cfg)
	if err != nil {
		return cli.Exit(err.Error(), exitConfigError)
	}
	if eventAdapter != nil {
		defer func() { _ = eventAdapter.Close() }()
		sc.Adapter = eventAdapter
	}

	// Session callbacks feed the TUI through one message channel.
	// Frames are dropped rather than blocking the scheduler when the
	// TUI falls behind.
	msgs := make(chan tea.Msg, 64)
	surf := term.New(func(rendered string) {
		select {
		case msgs <- tui.FrameMsg(rendered):
		default:
		}
	})
	sc.Surface = surf
	sc.OnProgress = func(fraction float64) {
		msgs <- tui.ProgressMsg(fraction)
	}

	sess, err := session.New(sc)
	if err != nil {
		return cli.Exit(err.Error(), exitConfigError)
	}
	defer func() { _ = sess.Close() }()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	go func() {
		if err := sess.Start(ctx); err != nil {
			msgs <- tui.LoadFailedMsg{Err: err}
			return
		}
		msgs <- tui.LoadedMsg{}
	}()

	if err := tui.RunPlay(sess, msgs); err != nil {
		return fmt.Errorf("playback ui failed: %w", err)
	}

	if c.Bool("stats") {
		r, err := render.NewRenderer(c)
		if err != nil {
			return err
		}
		if err := r.Render(sess.Metrics()); err != nil {
			return err
		}
	}

	if sess.Err() != nil {
		return cli.Exit(fmt.Sprintf("load failed: %v", sess.Err()), exitLoadFailure)
	}
	return nil
}
