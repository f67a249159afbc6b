package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/desertthunder/moviemaze/internal/server"
	"github.com/urfave/cli/v3"
)

// Serve runs the local JSON API until interrupted.
func (r *Runner) Serve(ctx context.Context, cmd *cli.Command) error {
	if err := r.openStores(); err != nil {
		return err
	}

	cfg := r.config.Server
	if cmd.IsSet("host") {
		cfg.Host = cmd.String("host")
	}
	if cmd.IsSet("port") {
		cfg.Port = cmd.Int("port")
	}

	srv := server.New(cfg, server.Deps{
		Session:   r.session,
		Favorites: r.favorites,
		Theme:     r.theme,
		Accounts:  r.accounts,
		Logger:    r.logger,
	})

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	r.writePlain("Serving on http://%s\n", srv.Addr())
	return srv.ListenAndServe(ctx)
}
