package main

import (
	"context"
	"fmt"
	"sync"

	"github.com/desertthunder/moviemaze/internal/formatter"
	"github.com/desertthunder/moviemaze/internal/session"
	"github.com/desertthunder/moviemaze/internal/tasks"
	"github.com/urfave/cli/v3"
)

// FavoritesList prints the favorites in the order they were added.
func (r *Runner) FavoritesList(ctx context.Context, cmd *cli.Command) error {
	if err := r.openStores(); err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(r.favorites.List(), false)
	}

	movies := r.favorites.Movies()
	if len(movies) == 0 {
		return r.writePlain("No favorites yet. Add one with 'moviemaze favorites add <id>'.\n")
	}

	r.writePlainHeader(fmt.Sprintf("Favorites (%d)", len(movies)))
	for i, m := range movies {
		r.writePlain("%s  #%d\n", formatter.FormatMovieLine(i+1, m, nil), m.ID)
	}
	return nil
}

// FavoritesAdd looks a movie up in the catalog and stores it as a favorite.
func (r *Runner) FavoritesAdd(ctx context.Context, cmd *cli.Command) error {
	id, err := parseMovieID(cmd.StringArg("id"))
	if err != nil {
		return err
	}

	catalog, err := r.browse()
	if err != nil {
		return err
	}

	if r.favorites.IsFavorite(id) {
		return r.writePlain("Already in favorites\n")
	}

	details, err := catalog.Movie(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to fetch movie %d: %w", id, err)
	}

	if _, err := r.favorites.AddMovie(details.Movie); err != nil {
		return fmt.Errorf("failed to save favorites: %w", err)
	}

	r.logger.Info("favorite added", "id", id, "title", details.Title)
	return r.writePlain("✓ Added %s to favorites\n", details.Title)
}

// FavoritesRemove removes a favorite by id.
func (r *Runner) FavoritesRemove(ctx context.Context, cmd *cli.Command) error {
	id, err := parseMovieID(cmd.StringArg("id"))
	if err != nil {
		return err
	}

	if err := r.openStores(); err != nil {
		return err
	}

	removed, err := r.favorites.Remove(id)
	if err != nil {
		return fmt.Errorf("failed to save favorites: %w", err)
	}
	if !removed {
		return r.writePlain("Movie %d is not in favorites\n", id)
	}
	return r.writePlain("✓ Removed %d from favorites\n", id)
}

// FavoritesCheck reports whether id is a favorite.
func (r *Runner) FavoritesCheck(ctx context.Context, cmd *cli.Command) error {
	id, err := parseMovieID(cmd.StringArg("id"))
	if err != nil {
		return err
	}

	if err := r.openStores(); err != nil {
		return err
	}

	if r.favorites.IsFavorite(id) {
		return r.writePlain("✓ %d is a favorite\n", id)
	}
	return r.writePlain("✗ %d is not a favorite\n", id)
}

// FavoritesExport enriches every favorite with catalog details and writes the export files.
func (r *Runner) FavoritesExport(ctx context.Context, cmd *cli.Command) error {
	if _, err := r.browse(); err != nil {
		return err
	}

	favs := r.favorites.List()
	if len(favs) == 0 {
		return r.writePlain("No favorites to export\n")
	}

	user := ""
	if current, ok := r.session.Current(); ok {
		user = session.DisplayName(&current)
	}

	opts := tasks.ExportOpts{
		Format:       cmd.String("format"),
		OutputDir:    cmd.String("output"),
		NumWorkers:   cmd.Int("workers"),
		RateLimit:    cmd.Float("rate-limit"),
		User:         user,
		ImageBaseURL: r.config.Catalog.ImageBaseURL,
	}

	progress := make(chan tasks.ProgressUpdate, 10)
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for update := range progress {
			r.logger.Info(update.Message, "phase", update.Phase, "step", update.Step, "total", update.Total)
		}
	}()

	result, err := r.engine.ExportFavorites(ctx, progress, favs, opts)
	close(progress)
	wg.Wait()
	if err != nil {
		return fmt.Errorf("export failed: %w", err)
	}

	r.writePlain("✓ Exported %d favorites to %s\n", len(favs), result.OutputDirectory)
	if result.Fallbacks > 0 {
		r.writePlain("  %d exported from stored data (details unavailable)\n", result.Fallbacks)
	}
	for _, f := range result.Files {
		r.writePlain("  %s\n", f)
	}
	r.writePlain("  %s\n", result.ManifestPath)
	return nil
}
