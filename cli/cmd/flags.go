// Package cmd provides CLI commands for the flipbook binary.
package cmd

import "github.com/urfave/cli/v2"

// DefaultConfigPath is probed when --config is not given.
const DefaultConfigPath = "flipbook.yaml"

// Shared flags.
var (
	// ConfigFlag points at the flipbook.yaml config file.
	ConfigFlag = &cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "Path to flipbook.yaml (defaults to ./flipbook.yaml when present)",
	}

	// FormatFlag selects output format: json, table, yaml.
	FormatFlag = &cli.StringFlag{
		Name:    "format",
		Aliases: []string{"f"},
		Usage:   "Output format: json, table, yaml",
	}

	// NoColorFlag disables colored output.
	NoColorFlag = &cli.BoolFlag{
		Name:  "no-color",
		Usage: "Disable colored output",
	}
)

// ReadOnlyFlags returns the shared flags for all read-only commands.
func ReadOnlyFlags() []cli.Flag {
	return []cli.Flag{
		ConfigFlag,
		FormatFlag,
		NoColorFlag,
	}
}

// sequenceFlags returns the flags that select and override a sequence.
func sequenceFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "sequence",
			Aliases: []string{"s"},
			Usage:   "Manifest entry name from the config file",
		},
		&cli.StringFlag{
			Name:  "prefix",
			Usage: "Sequence name prefix (directory segment and filename stem)",
		},
		&cli.IntFlag{
			Name:  "frames",
			Usage: "Number of frames in the sequence",
		},
		&cli.StringFlag{
			Name:  "base-path",
			Usage: "Path prefix under which sequence directories live",
		},
		&cli.IntFlag{
			Name:  "digits",
			Usage: "Zero-padding width of frame numbers",
		},
		&cli.StringFlag{
			Name:  "source",
			Usage: "Frame source backend: fs, http, or s3",
		},
		&cli.StringFlag{
			Name:  "source-root",
			Usage: "Source root (fs: directory, http: base URL)",
		},
		&cli.StringFlag{
			Name:  "s3-bucket",
			Usage: "S3 bucket for the s3 source",
		},
		&cli.StringFlag{
			Name:  "s3-region",
			Usage: "AWS region for the s3 source (optional, uses default chain)",
		},
		&cli.StringFlag{
			Name:  "s3-endpoint",
			Usage: "Custom S3 endpoint (optional)",
		},
		&cli.BoolFlag{
			Name:  "s3-path-style",
			Usage: "Use path-style S3 addressing",
		},
	}
}
