package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/discover/internal/shared"
	"github.com/urfave/cli/v3"
)

// Search sets the search term before the credential resolves, so the term is searched as soon as it does.
func (r *Runner) Search(ctx context.Context, cmd *cli.Command) error {
	term := cmd.StringArg("term")
	if term == "" {
		return fmt.Errorf("%w: search term is required", shared.ErrMissingArgument)
	}

	s, err := r.newSession()
	if err != nil {
		return err
	}
	defer s.close()

	ctx, cancel := context.WithTimeout(ctx, cmd.Duration("timeout"))
	defer cancel()

	s.state.SetTerm(term)
	s.start(ctx)

	results, err := s.orchestrator.WaitSearch(ctx, term)
	if err != nil {
		return fmt.Errorf("search for %q did not complete: %w", term, err)
	}
	r.logger.Debug("search settled", "term", term, "status", results.Status, "items", len(results.Items))

	snap, err := s.orchestrator.Wait(ctx)
	if err != nil {
		return fmt.Errorf("failed waiting for catalog: %w", err)
	}
	return r.emit(cmd, snap)
}
