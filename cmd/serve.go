package main

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"

	"github.com/desertthunder/discover/internal/server"
	"github.com/desertthunder/discover/internal/web"
	"github.com/urfave/cli/v3"
)

// Serve exposes the catalog page on --addr until interrupted.
func (r *Runner) Serve(ctx context.Context, cmd *cli.Command) error {
	s, err := r.newSession()
	if err != nil {
		return err
	}
	defer s.close()

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	ln, err := net.Listen("tcp", cmd.String("addr"))
	if err != nil {
		return fmt.Errorf("failed to listen: %w", err)
	}

	router := server.NewBasicRouter()
	router.Use(server.RequestLogger(r.logger))
	router.Handler(web.NewHandler(s.orchestrator, s.state, r.logger))

	s.start(ctx)
	r.writePlain("Serving on http://%s (Ctrl+C to stop)\n", ln.Addr())

	return server.Serve(ctx, ln, router, r.logger)
}
