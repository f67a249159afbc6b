package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/moviemaze/internal/shared"
	"github.com/desertthunder/moviemaze/internal/ui"
	"github.com/urfave/cli/v3"
)

// TUI launches the interactive terminal UI for browsing movies.
func (r *Runner) TUI(ctx context.Context, cmd *cli.Command) error {
	logPath := r.config.Log.File
	if logPath == "" {
		logPath = "./tmp/moviemaze-tui.log"
	}

	// Redirect logs to file to avoid interfering with TUI rendering
	fileLogger, err := shared.NewFileLogger(logPath)
	if err != nil {
		return fmt.Errorf("failed to create file logger: %w", err)
	}
	shared.SetLogLevel(fileLogger, shared.ParseLogLevel(r.config.Log.Level))
	r.SetLogger(fileLogger)

	catalog, err := r.browse()
	if err != nil {
		return err
	}

	model := ui.NewModel(ctx, ui.Deps{
		Catalog:      catalog,
		Engine:       r.engine,
		Session:      r.session,
		Favorites:    r.favorites,
		Theme:        r.theme,
		Logger:       fileLogger,
		ImageBaseURL: r.config.Catalog.ImageBaseURL,
	})
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}
