// package favorites keeps the user's ordered, de-duplicated list of favorite movies.
package favorites

import (
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/moviemaze/internal/models"
	"github.com/desertthunder/moviemaze/internal/shared"
)

// Store holds the favorites sequence and persists it to the favorites slot after every change.
type Store struct {
	mu     sync.RWMutex
	slots  models.SlotStore
	logger *log.Logger
	items  []models.FavoriteMovie
}

// Open loads the favorites slot. A missing or corrupt slot yields an empty list; individual entries that
// cannot be read are skipped with a warning.
func Open(slots models.SlotStore, logger *log.Logger) *Store {
	if logger == nil {
		logger = shared.DiscardLogger()
	}
	s := &Store{slots: slots, logger: logger}
	s.items = s.load()
	return s
}

// Reload re-reads the favorites slot.
func (s *Store) Reload() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = s.load()
}

// Add appends movie unless a favorite with the same id exists. It reports whether the list changed.
func (s *Store) Add(movie models.FavoriteMovie) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.indexOf(movie.ID) >= 0 {
		return false, nil
	}

	next := append(slices.Clone(s.items), movie)
	if err := s.persist(next); err != nil {
		return false, err
	}
	s.items = next
	return true, nil
}

// AddMovie is [Store.Add] for a catalog movie.
func (s *Store) AddMovie(m models.Movie) (bool, error) {
	fav, err := models.NewFavorite(m)
	if err != nil {
		return false, err
	}
	return s.Add(fav)
}

// Remove deletes the favorite with the given id. Removing an absent id changes nothing.
func (s *Store) Remove(id int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return false, nil
	}

	next := slices.Delete(slices.Clone(s.items), i, i+1)
	if err := s.persist(next); err != nil {
		return false, err
	}
	s.items = next
	return true, nil
}

// Toggle adds the movie when absent and removes it otherwise. It returns whether the movie is now a favorite.
func (s *Store) Toggle(m models.Movie) (bool, error) {
	if s.IsFavorite(m.ID) {
		_, err := s.Remove(m.ID)
		return false, err
	}
	_, err := s.AddMovie(m)
	return err == nil, err
}

// IsFavorite reports whether a favorite with id exists.
func (s *Store) IsFavorite(id int64) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.indexOf(id) >= 0
}

// List returns a copy of the favorites in insertion order.
func (s *Store) List() []models.FavoriteMovie {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.items)
}

// Len returns the number of favorites.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// Movies decodes every favorite into a [models.Movie].
func (s *Store) Movies() []models.Movie {
	items := s.List()
	movies := make([]models.Movie, 0, len(items))
	for _, f := range items {
		m, err := f.Movie()
		if err != nil {
			s.logger.Warn("skipping unreadable favorite", "id", f.ID, "error", err)
			continue
		}
		movies = append(movies, m)
	}
	return movies
}

func (s *Store) indexOf(id int64) int {
	return slices.IndexFunc(s.items, func(f models.FavoriteMovie) bool { return f.ID == id })
}

func (s *Store) persist(items []models.FavoriteMovie) error {
	if items == nil {
		items = []models.FavoriteMovie{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("failed to encode favorites: %w", err)
	}
	if err := s.slots.Set(models.SlotFavorites, data); err != nil {
		return fmt.Errorf("failed to save favorites: %w", err)
	}
	return nil
}

func (s *Store) load() []models.FavoriteMovie {
	data, err := s.slots.Get(models.SlotFavorites)
	if err != nil {
		if !errors.Is(err, shared.ErrSlotNotFound) {
			s.logger.Warn("failed to read favorites slot", "error", err)
		}
		return nil
	}

	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		s.logger.Warn("ignoring corrupt favorites slot", "error", err)
		return nil
	}

	items := make([]models.FavoriteMovie, 0, len(raw))
	seen := make(map[int64]bool, len(raw))
	for i, entry := range raw {
		fav, err := models.ParseFavorite(entry)
		if err != nil {
			s.logger.Warn("skipping corrupt favorite", "index", i, "error", err)
			continue
		}
		if seen[fav.ID] {
			continue
		}
		seen[fav.ID] = true
		items = append(items, fav)
	}
	return items
}
