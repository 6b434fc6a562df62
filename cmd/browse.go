package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/discover/internal/formatter"
	"github.com/desertthunder/discover/internal/models"
	"github.com/urfave/cli/v3"
)

// Browse acquires a credential, fetches the three browse sections and prints them.
//
// Sections that fail are still printed with their diagnostic; a credential failure is returned after output.
func (r *Runner) Browse(ctx context.Context, cmd *cli.Command) error {
	s, err := r.newSession()
	if err != nil {
		return err
	}
	defer s.close()

	ctx, cancel := context.WithTimeout(ctx, cmd.Duration("timeout"))
	defer cancel()

	s.start(ctx)

	snap, err := s.orchestrator.Wait(ctx)
	if err != nil {
		return fmt.Errorf("failed waiting for catalog: %w", err)
	}

	if err := r.emit(cmd, snap); err != nil {
		return err
	}
	return s.provider.Err()
}

func (r *Runner) emit(cmd *cli.Command, snap models.Snapshot) error {
	format := cmd.String("format")

	if path := cmd.String("output"); path != "" {
		written, err := formatter.WriteExport(snap, format, path)
		if err != nil {
			return err
		}
		r.logger.Info("export written", "path", written, "format", format)
		return r.writePlain("Exported to %s\n", written)
	}

	data, err := formatter.Render(format, snap)
	if err != nil {
		return err
	}
	return r.writeBytes(data)
}
