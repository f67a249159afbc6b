package tasks

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/desertthunder/moviemaze/internal/models"
	"github.com/desertthunder/moviemaze/internal/shared"
	tu "github.com/desertthunder/moviemaze/internal/testing"
)

func movies(ids ...int64) []models.Movie {
	out := make([]models.Movie, len(ids))
	for i, id := range ids {
		out[i] = models.Movie{ID: id, Title: "Movie " + string(rune('A'+i))}
	}
	return out
}

func drain(ch chan ProgressUpdate) []ProgressUpdate {
	var updates []ProgressUpdate
	for {
		select {
		case u := <-ch:
			updates = append(updates, u)
		default:
			return updates
		}
	}
}

func TestPhase(t *testing.T) {
	tests := map[Phase]string{
		FetchTrending: "fetch_trending",
		FetchDiscover: "fetch_discover",
		SearchMovies:  "search_movies",
		FetchDetails:  "fetch_details",
		WriteExport:   "write_export",
		Phase(99):     "",
	}
	for phase, want := range tests {
		if got := phase.String(); got != want {
			t.Errorf("Phase(%d).String() = %q, want %q", phase, got, want)
		}
	}
}

func TestBrowse(t *testing.T) {
	ctx := context.Background()

	t.Run("picks featured among top five", func(t *testing.T) {
		catalog := tu.NewMockCatalog(movies(1, 2, 3, 4, 5, 6, 7)...)
		engine := NewMovieEngine(catalog)

		var bound int
		engine.pick = func(n int) int { bound = n; return n - 1 }

		progress := make(chan ProgressUpdate, 10)
		home, err := engine.Browse(ctx, progress, models.DiscoverOptions{Genre: 28})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if bound != FeaturedPool {
			t.Errorf("expected pick bound %d, got %d", FeaturedPool, bound)
		}
		if home.Featured == nil || home.Featured.ID != 5 {
			t.Errorf("expected fifth movie featured, got %+v", home.Featured)
		}
		if len(home.Trending) != 7 || home.Discover == nil {
			t.Errorf("unexpected home %+v", home)
		}
		if catalog.CallCount("Trending") != 1 || catalog.CallCount("Discover") != 1 {
			t.Errorf("unexpected calls %v", catalog.Calls)
		}
		if len(drain(progress)) == 0 {
			t.Error("expected progress updates")
		}
	})

	t.Run("short trending list", func(t *testing.T) {
		engine := NewMovieEngine(tu.NewMockCatalog(movies(1, 2)...))
		var bound int
		engine.pick = func(n int) int { bound = n; return 0 }

		if _, err := engine.Browse(ctx, nil, models.DiscoverOptions{}); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if bound != 2 {
			t.Errorf("expected pick bound 2, got %d", bound)
		}
	})

	t.Run("empty trending has no featured movie", func(t *testing.T) {
		home, err := NewMovieEngine(tu.NewMockCatalog()).Browse(ctx, nil, models.DiscoverOptions{})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if home.Featured != nil {
			t.Errorf("expected no featured movie, got %+v", home.Featured)
		}
	})

	t.Run("catalog error", func(t *testing.T) {
		catalog := tu.NewMockCatalog(movies(1)...)
		catalog.Err = shared.ErrServiceUnavailable
		if _, err := NewMovieEngine(catalog).Browse(ctx, nil, models.DiscoverOptions{}); !errors.Is(err, shared.ErrServiceUnavailable) {
			t.Errorf("expected ErrServiceUnavailable, got %v", err)
		}
	})

	t.Run("nil catalog", func(t *testing.T) {
		if _, err := NewMovieEngine(nil).Browse(ctx, nil, models.DiscoverOptions{}); !errors.Is(err, shared.ErrServiceUnavailable) {
			t.Errorf("expected ErrServiceUnavailable, got %v", err)
		}
	})
}

func TestLoadMore(t *testing.T) {
	ctx := context.Background()

	newCatalog := func() *tu.MockCatalog {
		c := tu.NewMockCatalog()
		c.Pages = []models.MoviePage{
			{Page: 1, TotalPages: 3, Results: movies(1, 2)},
			{Page: 2, TotalPages: 3, Results: movies(2, 3)},
			{Page: 3, TotalPages: 3, Results: movies(4)},
		}
		return c
	}

	t.Run("appends unseen movies", func(t *testing.T) {
		catalog := newCatalog()
		res, err := NewMovieEngine(catalog).LoadMore(ctx, nil, movies(1, 2), LoadMoreRequest{From: 2, To: 3})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(res.Movies) != 4 || res.Added != 2 {
			t.Errorf("expected 4 movies with 2 added, got %d and %d", len(res.Movies), res.Added)
		}
		if res.LastPage != 3 || res.HasMore {
			t.Errorf("unexpected paging %+v", res)
		}
		if catalog.CallCount("Discover") != 2 {
			t.Errorf("expected 2 discover calls, got %v", catalog.Calls)
		}
	})

	t.Run("stops at last page", func(t *testing.T) {
		catalog := newCatalog()
		res, err := NewMovieEngine(catalog).LoadMore(ctx, nil, nil, LoadMoreRequest{From: 3, To: 10})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if catalog.CallCount("Discover") != 1 || res.LastPage != 3 {
			t.Errorf("expected a single request, got %v", catalog.Calls)
		}
	})

	t.Run("search query uses search", func(t *testing.T) {
		catalog := newCatalog()
		progress := make(chan ProgressUpdate, 10)
		_, err := NewMovieEngine(catalog).LoadMore(ctx, progress, nil, LoadMoreRequest{Query: "heat", From: 1, To: 1})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if catalog.CallCount("Search") != 1 || catalog.CallCount("Discover") != 0 {
			t.Errorf("unexpected calls %v", catalog.Calls)
		}
		updates := drain(progress)
		if len(updates) != 1 || updates[0].Phase != SearchMovies {
			t.Errorf("unexpected updates %+v", updates)
		}
	})

	t.Run("error keeps partial results", func(t *testing.T) {
		catalog := newCatalog()
		catalog.Err = shared.ErrAPIRequest
		res, err := NewMovieEngine(catalog).LoadMore(ctx, nil, movies(9), LoadMoreRequest{From: 1, To: 2})
		if !errors.Is(err, shared.ErrAPIRequest) {
			t.Errorf("expected ErrAPIRequest, got %v", err)
		}
		if res == nil || len(res.Movies) != 1 {
			t.Errorf("expected existing movies to be kept, got %+v", res)
		}
	})
}

func TestExportFavorites(t *testing.T) {
	ctx := context.Background()

	favorites := func(t *testing.T, raws ...string) []models.FavoriteMovie {
		t.Helper()
		out := make([]models.FavoriteMovie, len(raws))
		for i, raw := range raws {
			f, err := models.ParseFavorite([]byte(raw))
			if err != nil {
				t.Fatalf("failed to parse favorite: %v", err)
			}
			out[i] = f
		}
		return out
	}

	t.Run("json with fallback for unknown ids", func(t *testing.T) {
		catalog := tu.NewMockCatalog(models.Movie{ID: 1, Title: "Known"}, models.Movie{ID: 3, Title: "Also Known"})
		dir := filepath.Join(t.TempDir(), "out")
		favs := favorites(t, `{"id":1}`, `{"id":2,"title":"Stored Only"}`, `{"id":3}`)

		progress := make(chan ProgressUpdate, 20)
		res, err := NewMovieEngine(catalog).ExportFavorites(ctx, progress, favs, ExportOpts{OutputDir: dir, RateLimit: 1000, User: "Jane"})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if res.Fetched != 2 || res.Fallbacks != 1 {
			t.Errorf("expected 2 fetched and 1 fallback, got %d and %d", res.Fetched, res.Fallbacks)
		}
		titles := []string{res.Export.Movies[0].Title, res.Export.Movies[1].Title, res.Export.Movies[2].Title}
		if strings.Join(titles, "|") != "Known|Stored Only|Also Known" {
			t.Errorf("expected favorites order to be kept, got %v", titles)
		}
		if len(res.Export.Missing) != 1 || res.Export.Missing[0] != 2 {
			t.Errorf("expected missing [2], got %v", res.Export.Missing)
		}
		if res.RunID == "" || res.Export.User != "Jane" {
			t.Errorf("unexpected export metadata %+v", res.Export)
		}

		tu.AssertFileExists(t, filepath.Join(dir, "favorites.json"))
		manifest := tu.MustReadFile(t, res.ManifestPath)
		if !strings.Contains(manifest, `"format": "json"`) || !strings.Contains(manifest, res.RunID) {
			t.Errorf("unexpected manifest %s", manifest)
		}

		var sawWrite bool
		for _, u := range drain(progress) {
			if u.Phase == WriteExport {
				sawWrite = true
			}
		}
		if !sawWrite {
			t.Error("expected a write_export update")
		}
	})

	t.Run("formats", func(t *testing.T) {
		tests := []struct {
			format string
			file   string
		}{
			{"csv", "favorites_movies.csv"},
			{"txt", "favorites.txt"},
			{"markdown", "README.md"},
		}

		for _, tt := range tests {
			t.Run(tt.format, func(t *testing.T) {
				dir := t.TempDir()
				catalog := tu.NewMockCatalog(models.Movie{ID: 1, Title: "Known"})
				res, err := NewMovieEngine(catalog).ExportFavorites(ctx, nil, favorites(t, `{"id":1}`), ExportOpts{Format: tt.format, OutputDir: dir, RateLimit: 1000})
				if err != nil {
					t.Fatalf("expected no error, got %v", err)
				}
				tu.AssertFileExists(t, filepath.Join(dir, tt.file))
				if len(res.Files) == 0 {
					t.Error("expected files to be reported")
				}
			})
		}
	})

	t.Run("unknown format", func(t *testing.T) {
		_, err := NewMovieEngine(tu.NewMockCatalog()).ExportFavorites(ctx, nil, nil, ExportOpts{Format: "xml", OutputDir: t.TempDir()})
		if !errors.Is(err, shared.ErrInvalidFlag) {
			t.Errorf("expected ErrInvalidFlag, got %v", err)
		}
	})

	t.Run("empty favorites", func(t *testing.T) {
		dir := t.TempDir()
		res, err := NewMovieEngine(tu.NewMockCatalog()).ExportFavorites(ctx, nil, nil, ExportOpts{OutputDir: dir})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(res.Export.Movies) != 0 {
			t.Errorf("expected no movies, got %d", len(res.Export.Movies))
		}
		if _, err := os.Stat(res.ManifestPath); err != nil {
			t.Errorf("expected manifest, got %v", err)
		}
	})

	t.Run("cancelled context", func(t *testing.T) {
		cctx, cancel := context.WithCancel(ctx)
		cancel()
		catalog := tu.NewMockCatalog(models.Movie{ID: 1})
		_, err := NewMovieEngine(catalog).ExportFavorites(cctx, nil, favorites(t, `{"id":1}`), ExportOpts{OutputDir: t.TempDir()})
		if !errors.Is(err, context.Canceled) {
			t.Errorf("expected context.Canceled, got %v", err)
		}
	})
}
