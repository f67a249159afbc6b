package services

import (
	"context"

	"github.com/desertthunder/moviemaze/internal/models"
)

// Catalog defines the read-only movie metadata operations the app needs.
type Catalog interface {
	// Trending returns the first page of movies trending over window.
	Trending(ctx context.Context, window models.TimeWindow) (*models.MoviePage, error)

	// Search finds movies by title. A blank query returns an empty page without contacting the provider.
	Search(ctx context.Context, query string, page int) (*models.MoviePage, error)

	// Discover lists movies matching opts, sorted by popularity.
	Discover(ctx context.Context, opts models.DiscoverOptions) (*models.MoviePage, error)

	// Movie returns details for one movie including credits and videos.
	Movie(ctx context.Context, id int64) (*models.MovieDetails, error)

	// Genres returns the movie genre list.
	Genres(ctx context.Context) ([]models.Genre, error)
}

// MovieCache stores movie details between runs.
//
// GetMovie returns shared.ErrCacheMiss when nothing usable is cached.
type MovieCache interface {
	GetMovie(id int64) (*models.MovieDetails, error)
	PutMovie(details *models.MovieDetails) error
}
