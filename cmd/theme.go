package main

import (
	"context"

	"github.com/desertthunder/moviemaze/internal/theme"
	"github.com/urfave/cli/v3"
)

// ThemeShow prints the current theme.
func (r *Runner) ThemeShow(ctx context.Context, cmd *cli.Command) error {
	if err := r.openStores(); err != nil {
		return err
	}
	return r.writePlain("%s\n", r.theme.Mode())
}

// ThemeToggle switches between light and dark.
func (r *Runner) ThemeToggle(ctx context.Context, cmd *cli.Command) error {
	if err := r.openStores(); err != nil {
		return err
	}

	mode, err := r.theme.Toggle()
	if err != nil {
		return err
	}
	return r.writePlain("✓ Theme set to %s\n", mode)
}

// ThemeSet sets the theme to light or dark.
func (r *Runner) ThemeSet(ctx context.Context, cmd *cli.Command) error {
	mode, err := theme.ParseMode(cmd.StringArg("mode"))
	if err != nil {
		return err
	}

	if err := r.openStores(); err != nil {
		return err
	}

	if err := r.theme.Set(mode); err != nil {
		return err
	}
	return r.writePlain("✓ Theme set to %s\n", mode)
}
