// package tasks implements catalog operations that span several requests.
//
// The core abstraction is MovieEngine, which loads the home screen, pages through listings and exports favorites.
// Operations emit progress updates via channels for non-blocking status reporting to CLI/UI layers.
package tasks

import (
	"context"
	"fmt"
	"math/rand/v2"

	"github.com/desertthunder/moviemaze/internal/models"
	"github.com/desertthunder/moviemaze/internal/services"
	"github.com/desertthunder/moviemaze/internal/shared"
)

// FeaturedPool is how many of the top trending movies are eligible to be featured.
const FeaturedPool = 5

// HomeResult contains everything the home screen shows.
type HomeResult struct {
	Featured *models.Movie     // Random pick among the top trending movies, nil when trending is empty
	Trending []models.Movie    // Weekly trending movies
	Discover *models.MoviePage // First discover page for the requested filters
}

// LoadMoreRequest describes a page range to fetch. A non-blank Query searches, otherwise Discover filters apply.
type LoadMoreRequest struct {
	Query    string
	Discover models.DiscoverOptions
	From     int
	To       int
}

// LoadMoreResult contains the appended listing.
type LoadMoreResult struct {
	Movies   []models.Movie // Existing movies followed by new, unseen ones
	LastPage int            // Last page fetched
	HasMore  bool           // Whether pages after LastPage exist
	Added    int            // Number of movies appended
}

// MovieEngine runs catalog operations with progress reporting.
type MovieEngine struct {
	catalog services.Catalog
	pick    func(n int) int
}

// NewMovieEngine creates a new MovieEngine for catalog.
func NewMovieEngine(catalog services.Catalog) *MovieEngine {
	return &MovieEngine{catalog: catalog, pick: rand.IntN}
}

// sendProgress sends a progress update through the channel without blocking.
func (e *MovieEngine) sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
	default:
	}
}

func (e *MovieEngine) ready() error {
	if e.catalog == nil {
		return fmt.Errorf("%w: catalog not initialized", shared.ErrServiceUnavailable)
	}
	return nil
}

// Browse loads the home screen: trending movies, a featured pick and the first discover page.
func (e *MovieEngine) Browse(ctx context.Context, progress chan<- ProgressUpdate, opts models.DiscoverOptions) (*HomeResult, error) {
	if err := e.ready(); err != nil {
		return nil, err
	}

	e.sendProgress(progress, fetchTrendingUpdate(1, 2))
	trending, err := e.catalog.Trending(ctx, models.TrendingWeek)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch trending movies: %w", err)
	}

	result := &HomeResult{Trending: trending.Results}
	if featured := e.Featured(trending.Results); featured != nil {
		result.Featured = featured
		e.sendProgress(progress, featuredUpdate(1, 2, featured))
	}

	opts.Page = max(opts.Page, 1)
	e.sendProgress(progress, fetchDiscoverUpdate(2, 2, opts.Page))
	discover, err := e.catalog.Discover(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch discover page: %w", err)
	}
	result.Discover = discover

	return result, nil
}

// Featured picks a random movie among the first [FeaturedPool] entries. It returns nil for an empty list.
func (e *MovieEngine) Featured(movies []models.Movie) *models.Movie {
	if len(movies) == 0 {
		return nil
	}
	m := movies[e.pick(min(FeaturedPool, len(movies)))]
	return &m
}

// LoadMore fetches pages From through To and appends unseen movies to existing.
//
// Fetching stops early once the last page is reached. An error on any page returns what was gathered so far.
func (e *MovieEngine) LoadMore(ctx context.Context, progress chan<- ProgressUpdate, existing []models.Movie, req LoadMoreRequest) (*LoadMoreResult, error) {
	if err := e.ready(); err != nil {
		return nil, err
	}

	from := max(req.From, 1)
	to := max(req.To, from)
	total := to - from + 1

	seen := make(map[int64]bool, len(existing))
	for _, m := range existing {
		seen[m.ID] = true
	}

	result := &LoadMoreResult{Movies: append([]models.Movie(nil), existing...)}
	for page := from; page <= to; page++ {
		var (
			listing *models.MoviePage
			err     error
		)

		step := page - from + 1
		if req.Query != "" {
			e.sendProgress(progress, searchPageUpdate(step, total, req.Query, page))
			listing, err = e.catalog.Search(ctx, req.Query, page)
		} else {
			opts := req.Discover
			opts.Page = page
			e.sendProgress(progress, fetchDiscoverUpdate(step, total, page))
			listing, err = e.catalog.Discover(ctx, opts)
		}
		if err != nil {
			return result, fmt.Errorf("failed to fetch page %d: %w", page, err)
		}

		for _, m := range listing.Results {
			if seen[m.ID] {
				continue
			}
			seen[m.ID] = true
			result.Movies = append(result.Movies, m)
			result.Added++
		}

		result.LastPage = page
		result.HasMore = listing.HasMore()
		if !result.HasMore {
			break
		}
	}

	return result, nil
}
