package repositories

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/desertthunder/moviemaze/internal/models"
	"github.com/desertthunder/moviemaze/internal/shared"
)

// MovieCacheRepository caches catalog movie details keyed by movie id.
//
// Entries older than the TTL are treated as misses; a TTL of zero disables expiry.
type MovieCacheRepository struct {
	db  *sql.DB
	ttl time.Duration
	now func() time.Time
}

// NewMovieCacheRepository creates a new MovieCacheRepository with the given database connection and TTL
func NewMovieCacheRepository(db *sql.DB, ttl time.Duration) *MovieCacheRepository {
	return &MovieCacheRepository{db: db, ttl: ttl, now: time.Now}
}

// GetMovie returns cached details, or [shared.ErrCacheMiss] when absent or expired
func (r *MovieCacheRepository) GetMovie(id int64) (*models.MovieDetails, error) {
	var payload []byte
	var fetchedAt time.Time

	err := r.db.QueryRow("SELECT payload, fetched_at FROM movie_cache WHERE movie_id = ?", id).Scan(&payload, &fetchedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, shared.ErrCacheMiss
		}
		return nil, fmt.Errorf("failed to read cached movie %d: %w", id, err)
	}

	if r.ttl > 0 && r.now().Sub(fetchedAt) > r.ttl {
		return nil, shared.ErrCacheMiss
	}

	var details models.MovieDetails
	if err := json.Unmarshal(payload, &details); err != nil {
		return nil, fmt.Errorf("%w: corrupt cache entry %d", shared.ErrCacheMiss, id)
	}
	return &details, nil
}

// PutMovie stores details, replacing any previous entry for the same id
func (r *MovieCacheRepository) PutMovie(details *models.MovieDetails) error {
	payload, err := json.Marshal(details)
	if err != nil {
		return fmt.Errorf("failed to encode movie %d: %w", details.ID, err)
	}

	query := `
		INSERT INTO movie_cache (movie_id, payload, fetched_at)
		VALUES (?, ?, ?)
		ON CONFLICT(movie_id) DO UPDATE SET payload = excluded.payload, fetched_at = excluded.fetched_at
	`
	if _, err := r.db.Exec(query, details.ID, payload, r.now().UTC()); err != nil {
		return fmt.Errorf("failed to cache movie %d: %w", details.ID, err)
	}
	return nil
}

// Prune deletes expired entries and returns how many were removed
func (r *MovieCacheRepository) Prune() (int64, error) {
	if r.ttl <= 0 {
		return 0, nil
	}

	result, err := r.db.Exec("DELETE FROM movie_cache WHERE fetched_at < ?", r.now().UTC().Add(-r.ttl))
	if err != nil {
		return 0, fmt.Errorf("failed to prune movie cache: %w", err)
	}
	return result.RowsAffected()
}

// Count returns the number of cached entries
func (r *MovieCacheRepository) Count() (int, error) {
	var n int
	if err := r.db.QueryRow("SELECT COUNT(*) FROM movie_cache").Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count cached movies: %w", err)
	}
	return n, nil
}
