// submodule cmd contains command definitions
package main

import (
	"strings"
	"time"

	"github.com/desertthunder/discover/internal/formatter"
	"github.com/urfave/cli/v3"
)

const defaultConfigPath = "config.toml"

// newApp builds the root "discover" command.
func newApp(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "discover",
		Usage:   "Browse new releases, featured playlists and categories on Spotify",
		Version: "0.1.0",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to configuration file",
				Value:   defaultConfigPath,
			},
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "Enable debug logging",
			},
		},
		Before:   r.before,
		Commands: r.register(),
	}
}

func outputFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "format",
			Aliases: []string{"f"},
			Usage:   "Output format (" + strings.Join(formatter.Formats, ", ") + ")",
			Value:   formatter.FormatText,
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "Write output to a file instead of stdout",
		},
		&cli.DurationFlag{
			Name:  "timeout",
			Usage: "Maximum time to wait for the catalog",
			Value: 30 * time.Second,
		},
	}
}

// browseCommand prints the three browse sections
func browseCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "browse",
		Aliases: []string{"b"},
		Usage:   "Show new releases, featured playlists and categories",
		Flags:   outputFlags(),
		Action:  r.Browse,
	}
}

// searchCommand searches the catalog and prints results above the browse sections
func searchCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "search",
		Aliases: []string{"s"},
		Usage:   "Search for artists",
		Arguments: []cli.Argument{
			&cli.StringArg{
				Name: "term",
			},
		},
		Flags:  outputFlags(),
		Action: r.Search,
	}
}

// initCommand writes a starter configuration file
func initCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "init",
		Usage:  "Create config.toml from the built-in template",
		Action: r.Init,
	}
}

// serveCommand serves the catalog page locally
func serveCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Serve the catalog page over HTTP",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "addr",
				Usage: "Listen address",
				Value: "localhost:3000",
			},
		},
		Action: r.Serve,
	}
}

// tuiCommand returns the top-level TUI command for interactive browsing.
func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "tui",
		Aliases: []string{"interactive", "ui"},
		Usage:   "Launch interactive TUI with live search",
		Action:  r.TUI,
	}
}
