package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/desertthunder/moviemaze/internal/formatter"
	"github.com/desertthunder/moviemaze/internal/models"
	"github.com/desertthunder/moviemaze/internal/services"
	"github.com/desertthunder/moviemaze/internal/shared"
	"github.com/desertthunder/moviemaze/internal/tasks"
	"github.com/urfave/cli/v3"
)

// parseMovieID reads a positive catalog id from a command argument.
func parseMovieID(arg string) (int64, error) {
	if arg == "" {
		return 0, fmt.Errorf("%w: movie id is required", shared.ErrMissingArgument)
	}
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: movie id must be a positive number, got %q", shared.ErrInvalidArgument, arg)
	}
	return id, nil
}

// browse opens the stores (so the detail cache and favorites are available) and the catalog.
func (r *Runner) browse() (services.Catalog, error) {
	if err := r.openStores(); err != nil {
		return nil, err
	}
	return r.catalogService()
}

// genreIndex fetches genre names; listings still print without them when the lookup fails.
func (r *Runner) genreIndex(ctx context.Context, catalog services.Catalog) formatter.GenreIndex {
	genres, err := catalog.Genres(ctx)
	if err != nil {
		r.logger.Warn("failed to fetch genres", "error", err)
		return formatter.GenreIndex{}
	}
	return formatter.NewGenreIndex(genres)
}

func (r *Runner) printMovies(movies []models.Movie, genres formatter.GenreIndex) {
	for i, m := range movies {
		marker := "  "
		if r.favorites != nil && r.favorites.IsFavorite(m.ID) {
			marker = "♥ "
		}
		r.writePlain("%s%s  #%d\n", marker, formatter.FormatMovieLine(i+1, m, genres), m.ID)
	}
}

// MoviesTrending prints trending movies with a featured pick.
func (r *Runner) MoviesTrending(ctx context.Context, cmd *cli.Command) error {
	catalog, err := r.browse()
	if err != nil {
		return err
	}

	window := models.TimeWindow(cmd.String("window"))
	if window != models.TrendingDay && window != models.TrendingWeek {
		return fmt.Errorf("%w: window must be day or week, got %q", shared.ErrInvalidFlag, window)
	}

	page, err := catalog.Trending(ctx, window)
	if err != nil {
		return fmt.Errorf("failed to fetch trending movies: %w", err)
	}

	if cmd.Bool("json") {
		return r.writeJSON(page, false)
	}

	genres := r.genreIndex(ctx, catalog)
	if featured := r.engine.Featured(page.Results); featured != nil {
		r.writePlainHeader("Featured: " + featured.Title)
		if featured.Overview != "" {
			r.writePlain("%s\n", featured.Overview)
		}
		r.writePlainln("Trending this %s", window)
	}
	r.printMovies(page.Results, genres)
	return nil
}

// MoviesSearch searches by title across one or more pages.
func (r *Runner) MoviesSearch(ctx context.Context, cmd *cli.Command) error {
	query := strings.TrimSpace(cmd.StringArg("query"))
	if query == "" {
		return fmt.Errorf("%w: search query is required", shared.ErrMissingArgument)
	}

	catalog, err := r.browse()
	if err != nil {
		return err
	}

	res, err := r.engine.LoadMore(ctx, nil, nil, tasks.LoadMoreRequest{Query: query, From: 1, To: max(cmd.Int("pages"), 1)})
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if cmd.Bool("json") {
		return r.writeJSON(res.Movies, false)
	}

	if len(res.Movies) == 0 {
		return r.writePlain("No movies found for %q\n", query)
	}

	r.writePlainHeader(fmt.Sprintf("Results for %q", query))
	r.printMovies(res.Movies, r.genreIndex(ctx, catalog))
	if res.HasMore {
		r.writePlainln("More results available: --pages %d", res.LastPage+1)
	}
	return nil
}

// MoviesDiscover lists movies by genre, year and minimum rating.
func (r *Runner) MoviesDiscover(ctx context.Context, cmd *cli.Command) error {
	catalog, err := r.browse()
	if err != nil {
		return err
	}

	opts := models.DiscoverOptions{
		Genre:     cmd.Int("genre"),
		Year:      cmd.Int("year"),
		MinRating: cmd.Float("min-rating"),
	}
	from := max(cmd.Int("page"), 1)
	to := from + max(cmd.Int("pages"), 1) - 1

	res, err := r.engine.LoadMore(ctx, nil, nil, tasks.LoadMoreRequest{Discover: opts, From: from, To: to})
	if err != nil {
		return fmt.Errorf("discover failed: %w", err)
	}

	if cmd.Bool("json") {
		return r.writeJSON(res.Movies, false)
	}

	r.writePlainHeader("Discover")
	r.printMovies(res.Movies, r.genreIndex(ctx, catalog))
	if res.HasMore {
		r.writePlainln("Next: --page %d", res.LastPage+1)
	}
	return nil
}

// MoviesShow prints movie details.
func (r *Runner) MoviesShow(ctx context.Context, cmd *cli.Command) error {
	id, err := parseMovieID(cmd.StringArg("id"))
	if err != nil {
		return err
	}

	catalog, err := r.browse()
	if err != nil {
		return err
	}

	details, err := catalog.Movie(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to fetch movie %d: %w", id, err)
	}

	if cmd.Bool("json") {
		return r.writeJSON(details, true)
	}

	r.writePlain("%s", formatter.FormatDetails(details, r.config.Catalog.ImageBaseURL))
	if r.favorites.IsFavorite(id) {
		r.writePlainln("♥ In your favorites")
	}
	return nil
}

// MoviesGenres lists genre ids and names.
func (r *Runner) MoviesGenres(ctx context.Context, cmd *cli.Command) error {
	catalog, err := r.browse()
	if err != nil {
		return err
	}

	genres, err := catalog.Genres(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch genres: %w", err)
	}

	if cmd.Bool("json") {
		return r.writeJSON(genres, false)
	}

	for _, g := range genres {
		r.writePlain("%6d  %s\n", g.ID, g.Name)
	}
	return nil
}

// MoviesOpen opens the movie page, or its trailer, in the browser.
func (r *Runner) MoviesOpen(ctx context.Context, cmd *cli.Command) error {
	id, err := parseMovieID(cmd.StringArg("id"))
	if err != nil {
		return err
	}

	url := shared.MoviePageURL(id)
	if cmd.Bool("trailer") {
		catalog, err := r.browse()
		if err != nil {
			return err
		}
		details, err := catalog.Movie(ctx, id)
		if err != nil {
			return fmt.Errorf("failed to fetch movie %d: %w", id, err)
		}
		trailer, ok := details.Trailer()
		if !ok {
			return fmt.Errorf("%w: no trailer for %s", shared.ErrMovieNotFound, details.Title)
		}
		url = trailer.URL()
	}

	r.logger.Info("opening browser", "url", url)
	if err := shared.OpenBrowser(url); err != nil {
		r.writePlain("Open this URL: %s\n", url)
		return err
	}
	return nil
}
