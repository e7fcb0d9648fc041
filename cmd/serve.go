package main

import (
	"context"

	"github.com/desertthunder/crate/internal/server"
	"github.com/urfave/cli/v3"
)

// Serve runs the HTTP API until the process is interrupted.
func (r *Runner) Serve(ctx context.Context, cmd *cli.Command) error {
	catalog, err := r.Catalog(ctx)
	if err != nil {
		return err
	}

	cfg := r.config.Server
	if host := cmd.String("host"); host != "" {
		cfg.Host = host
	}
	if port := int(cmd.Int("port")); port > 0 {
		cfg.Port = port
	}

	srv := server.NewServer(catalog, cfg, r.logger)
	r.writePlain("Serving on http://%s (Ctrl+C to stop)\n", cfg.Addr())
	return srv.ListenAndServe(ctx)
}
