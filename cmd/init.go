package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/discover/internal/shared"
	"github.com/urfave/cli/v3"
)

// Init writes the embedded example config to the --config path.
func (r *Runner) Init(ctx context.Context, cmd *cli.Command) error {
	path := cmd.String("config")

	r.logger.Info("creating config file from template", "path", path)
	if err := shared.CreateConfigFile(path); err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	r.logger.Info("config file created", "path", path)

	r.writePlain("✓ Wrote %s\n", path)
	r.writePlainln("Next steps:")
	r.writePlain("1. Set credentials.spotify.client_id and client_secret in %s\n", path)
	r.writePlain("   (or export SPOTIFY_CLIENT_ID and SPOTIFY_CLIENT_SECRET)\n")
	r.writePlain("2. Run 'discover browse' to test the connection\n")
	return nil
}
