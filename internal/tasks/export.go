package tasks

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/desertthunder/moviemaze/internal/formatter"
	"github.com/desertthunder/moviemaze/internal/models"
	"github.com/desertthunder/moviemaze/internal/shared"
	"golang.org/x/time/rate"
)

// ExportOpts contains configuration for favorites exports.
type ExportOpts struct {
	Format       string  // Export format: json, csv, markdown, txt
	OutputDir    string  // Base output directory (default: favorites_export_{epoch})
	NumWorkers   int     // Concurrent workers (default: 4)
	RateLimit    float64 // Detail requests per second (default: 10)
	User         string  // Display name recorded in the export
	ImageBaseURL string  // Poster base URL for markdown exports; empty skips poster downloads
}

// ExportResult summarizes a favorites export.
type ExportResult struct {
	RunID           string
	Export          *models.FavoritesExport
	Fetched         int     // Favorites enriched with catalog details
	Fallbacks       int     // Favorites exported from their stored record
	Files           []string
	OutputDirectory string
	ManifestPath    string
}

type detailJob struct {
	index int
	fav   models.FavoriteMovie
}

type detailResult struct {
	index   int
	id      int64
	details *models.MovieDetails
	err     error
}

// Formats lists the accepted export formats.
var Formats = []string{"json", "csv", "markdown", "txt"}

func validFormat(format string) bool {
	for _, f := range Formats {
		if f == format {
			return true
		}
	}
	return false
}

// ExportFavorites enriches favs with catalog details through a rate limited worker pool and writes the export.
//
// Output order matches favs. A favorite whose lookup fails is exported from its stored record and listed in
// [models.FavoritesExport.Missing]. A manifest is written next to the export files.
func (e *MovieEngine) ExportFavorites(ctx context.Context, progress chan<- ProgressUpdate, favs []models.FavoriteMovie, opts ExportOpts) (*ExportResult, error) {
	if err := e.ready(); err != nil {
		return nil, err
	}

	if opts.Format == "" {
		opts.Format = "json"
	}
	if !validFormat(opts.Format) {
		return nil, fmt.Errorf("%w: unknown export format %q", shared.ErrInvalidFlag, opts.Format)
	}
	if opts.OutputDir == "" {
		opts.OutputDir = fmt.Sprintf("favorites_export_%d", time.Now().Unix())
	}
	if opts.NumWorkers <= 0 {
		opts.NumWorkers = 4
	}
	if opts.NumWorkers > 10 {
		opts.NumWorkers = 10
	}
	if opts.RateLimit <= 0 {
		opts.RateLimit = 10.0
	}

	if err := os.MkdirAll(opts.OutputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	runID := shared.GenerateID()
	export := &models.FavoritesExport{
		RunID:      runID,
		ExportedAt: time.Now().UTC(),
		User:       opts.User,
		Movies:     make([]models.MovieDetails, len(favs)),
	}
	result := &ExportResult{RunID: runID, Export: export, OutputDirectory: opts.OutputDir}

	limiter := rate.NewLimiter(rate.Limit(opts.RateLimit), 1)
	jobs := make(chan detailJob, len(favs))
	results := make(chan detailResult, len(favs))

	var wg sync.WaitGroup
	for range opts.NumWorkers {
		wg.Add(1)
		go e.detailWorker(ctx, &wg, limiter, jobs, results)
	}

	for i, fav := range favs {
		jobs <- detailJob{index: i, fav: fav}
	}
	close(jobs)

	go func() {
		wg.Wait()
		close(results)
	}()

	done := make([]bool, len(favs))
	completed := 0
	for res := range results {
		completed++
		done[res.index] = true

		if res.err == nil {
			export.Movies[res.index] = *res.details
			result.Fetched++
			e.sendProgress(progress, detailsFetchedUpdate(completed, len(favs), res.details))
			continue
		}

		e.sendProgress(progress, detailsFailedUpdate(completed, len(favs), res.id, res.err))
		export.Movies[res.index] = fallbackDetails(favs[res.index])
		export.Missing = append(export.Missing, res.id)
		result.Fallbacks++
	}

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("export cancelled: %w", err)
	}
	for i, ok := range done {
		if !ok {
			export.Movies[i] = fallbackDetails(favs[i])
			export.Missing = append(export.Missing, favs[i].ID)
			result.Fallbacks++
		}
	}

	files, err := writeExport(export, opts)
	if err != nil {
		return result, err
	}
	result.Files = files
	e.sendProgress(progress, writeExportUpdate(opts.Format, len(files)))

	manifestPath := filepath.Join(opts.OutputDir, "export_manifest.json")
	manifest, err := formatter.ToMetadataJSON(models.ExportMetadata{
		RunID:      runID,
		ExportedAt: export.ExportedAt,
		User:       opts.User,
		Format:     opts.Format,
		Count:      len(export.Movies),
		Missing:    export.Missing,
		Files:      files,
	})
	if err == nil {
		err = os.WriteFile(manifestPath, manifest, 0644)
	}
	if err != nil {
		return result, fmt.Errorf("export completed but failed to write manifest: %w", err)
	}
	result.ManifestPath = manifestPath
	return result, nil
}

// detailWorker fetches movie details for jobs until the channel closes or ctx is cancelled.
func (e *MovieEngine) detailWorker(
	ctx context.Context,
	wg *sync.WaitGroup,
	limiter *rate.Limiter,
	jobs <-chan detailJob,
	results chan<- detailResult,
) {
	defer wg.Done()

	for job := range jobs {
		select {
		case <-ctx.Done():
			return
		default:
		}

		res := detailResult{index: job.index, id: job.fav.ID}
		if err := limiter.Wait(ctx); err != nil {
			return
		}
		res.details, res.err = e.catalog.Movie(ctx, job.fav.ID)
		results <- res
	}
}

// fallbackDetails builds a details record from the catalog fields stored with the favorite.
func fallbackDetails(fav models.FavoriteMovie) models.MovieDetails {
	m, err := fav.Movie()
	if err != nil {
		m = models.Movie{ID: fav.ID}
	}
	return models.MovieDetails{Movie: m}
}

func writeExport(export *models.FavoritesExport, opts ExportOpts) ([]string, error) {
	switch opts.Format {
	case "csv":
		path, err := formatter.WriteCSVExport(export, filepath.Join(opts.OutputDir, "favorites"))
		if err != nil {
			return nil, fmt.Errorf("CSV export failed: %w", err)
		}
		return []string{path}, nil
	case "markdown":
		res, err := formatter.WriteMarkdownExport(export, opts.OutputDir, opts.ImageBaseURL)
		if err != nil {
			return nil, fmt.Errorf("markdown export failed: %w", err)
		}
		return res.Files, nil
	case "txt":
		path, err := formatter.WriteTextExport(export, filepath.Join(opts.OutputDir, "favorites.txt"))
		if err != nil {
			return nil, fmt.Errorf("text export failed: %w", err)
		}
		return []string{path}, nil
	default:
		path, err := formatter.WriteJSONExport(export, filepath.Join(opts.OutputDir, "favorites.json"))
		if err != nil {
			return nil, fmt.Errorf("JSON export failed: %w", err)
		}
		return []string{path}, nil
	}
}
