package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/discover/internal/catalog"
	"github.com/desertthunder/discover/internal/shared"
	"github.com/desertthunder/discover/internal/ui"
	"github.com/urfave/cli/v3"
)

// TUI launches the interactive terminal UI with live search.
func (r *Runner) TUI(ctx context.Context, cmd *cli.Command) error {
	// Redirect logs to file to avoid interfering with TUI rendering
	fileLogger, err := shared.NewFileLogger(r.config.Log.File)
	if err != nil {
		return fmt.Errorf("failed to create file logger: %w", err)
	}
	if level, err := shared.ParseLogLevel(r.config.Log.Level); err == nil {
		shared.SetLogLevel(fileLogger, level)
	}
	r.SetLogger(fileLogger)

	s, err := r.newSession()
	if err != nil {
		return err
	}
	defer s.close()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	snapshots := catalog.Watch(ctx, s.orchestrator)
	s.start(ctx)

	model := ui.NewModel(ctx, s.state, snapshots)
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}
