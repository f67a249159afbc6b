package tasks

import (
	"fmt"

	"github.com/desertthunder/moviemaze/internal/models"
)

// ProgressUpdate represents a progress event during a long-running operation.
//
// Used to send real-time updates to the CLI or UI layer for display.
type ProgressUpdate struct {
	Phase   Phase  // Operation phase
	Step    int    // Current step number within phase
	Total   int    // Total steps in this phase
	Message string // Human-readable message for display
	Data    any    // Optional phase-specific data for advanced UIs
}

// Operation phase enumeration
type Phase int

const (
	FetchTrending Phase = iota
	FetchDiscover
	SearchMovies
	FetchDetails
	WriteExport
)

func (p Phase) String() string {
	switch p {
	case FetchTrending:
		return "fetch_trending"
	case FetchDiscover:
		return "fetch_discover"
	case SearchMovies:
		return "search_movies"
	case FetchDetails:
		return "fetch_details"
	case WriteExport:
		return "write_export"
	default:
		return ""
	}
}

func fetchTrendingUpdate(step, total int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchTrending,
		Step:    step,
		Total:   total,
		Message: "Fetching trending movies...",
	}
}

func featuredUpdate(step, total int, m *models.Movie) ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchTrending,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("Featured: %s", m.Title),
		Data:    m,
	}
}

func fetchDiscoverUpdate(step, total, page int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchDiscover,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("Fetching discover page %d...", page),
	}
}

func searchPageUpdate(step, total int, query string, page int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   SearchMovies,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("Searching %q (page %d)...", query, page),
	}
}

func detailsFetchedUpdate(step, total int, d *models.MovieDetails) ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchDetails,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✓ %s", step, total, d.Title),
		Data:    d,
	}
}

func detailsFailedUpdate(step, total int, id int64, err error) ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchDetails,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✗ movie %d: %v", step, total, id, err),
	}
}

func writeExportUpdate(format string, files int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   WriteExport,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Wrote %s export (%d files)", format, files),
	}
}
