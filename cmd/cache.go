package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/moviemaze/internal/shared"
	"github.com/urfave/cli/v3"
)

// CacheStats prints how many movie details are cached.
func (r *Runner) CacheStats(ctx context.Context, cmd *cli.Command) error {
	if err := r.openStores(); err != nil {
		return err
	}
	if r.cache == nil {
		return fmt.Errorf("%w: movie cache is not configured", shared.ErrServiceUnavailable)
	}

	count, err := r.cache.Count()
	if err != nil {
		return err
	}

	r.writePlain("Cached movies: %d\n", count)
	r.writePlain("TTL:           %s\n", r.config.Catalog.CacheTTL.Duration)
	return nil
}

// CachePrune deletes expired movie details.
func (r *Runner) CachePrune(ctx context.Context, cmd *cli.Command) error {
	if err := r.openStores(); err != nil {
		return err
	}
	if r.cache == nil {
		return fmt.Errorf("%w: movie cache is not configured", shared.ErrServiceUnavailable)
	}

	pruned, err := r.cache.Prune()
	if err != nil {
		return err
	}

	r.logger.Infof("pruned %d cached movies", pruned)
	return r.writePlain("✓ Pruned %d expired entries\n", pruned)
}

// cacheCommand manages the movie details cache
func cacheCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "cache",
		Usage: "Manage the local movie details cache",
		Commands: []*cli.Command{
			{
				Name:   "stats",
				Usage:  "Show cache size",
				Action: r.CacheStats,
			},
			{
				Name:   "prune",
				Usage:  "Remove expired entries",
				Action: r.CachePrune,
			},
		},
	}
}
