// package theme persists the light/dark display preference.
package theme

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/moviemaze/internal/models"
	"github.com/desertthunder/moviemaze/internal/shared"
)

// Mode is a display theme.
type Mode string

const (
	Light Mode = "light"
	Dark  Mode = "dark"
)

// ParseMode accepts "light" or "dark" in any case.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case Light:
		return Light, nil
	case Dark:
		return Dark, nil
	default:
		return "", fmt.Errorf("%w: theme must be light or dark, got %q", shared.ErrInvalidArgument, s)
	}
}

// Other returns the opposite mode.
func (m Mode) Other() Mode {
	if m == Dark {
		return Light
	}
	return Dark
}

// Store holds the theme preference. Missing or corrupt slots read as [Light].
type Store struct {
	mu     sync.RWMutex
	slots  models.SlotStore
	logger *log.Logger
	mode   Mode
}

// Open loads the theme slot.
func Open(slots models.SlotStore, logger *log.Logger) *Store {
	if logger == nil {
		logger = shared.DiscardLogger()
	}
	s := &Store{slots: slots, logger: logger, mode: Light}

	data, err := slots.Get(models.SlotTheme)
	if err != nil {
		if !errors.Is(err, shared.ErrSlotNotFound) {
			logger.Warn("failed to read theme slot", "error", err)
		}
		return s
	}

	var stored string
	if err := json.Unmarshal(data, &stored); err != nil {
		logger.Warn("ignoring corrupt theme slot", "error", err)
		return s
	}
	if mode, err := ParseMode(stored); err == nil {
		s.mode = mode
	}
	return s
}

// Mode returns the current theme.
func (s *Store) Mode() Mode {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.mode
}

// Set stores mode.
func (s *Store) Set(mode Mode) error {
	mode, err := ParseMode(string(mode))
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.Marshal(string(mode))
	if err != nil {
		return fmt.Errorf("failed to encode theme: %w", err)
	}
	if err := s.slots.Set(models.SlotTheme, data); err != nil {
		return fmt.Errorf("failed to save theme: %w", err)
	}
	s.mode = mode
	return nil
}

// Toggle flips between light and dark and returns the new mode.
func (s *Store) Toggle() (Mode, error) {
	next := s.Mode().Other()
	if err := s.Set(next); err != nil {
		return s.Mode(), err
	}
	return next, nil
}
