package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/moviemaze/internal/models"
	"github.com/desertthunder/moviemaze/internal/shared"
)

// Store holds the current session and persists it to the session slot.
type Store struct {
	mu      sync.RWMutex
	slots   models.SlotStore
	logger  *log.Logger
	now     func() time.Time
	current *models.UserRecord
}

// Option configures a [Store].
type Option func(*Store)

// WithLogger sets the logger used for storage warnings.
func WithLogger(l *log.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithClock overrides the time source used for record timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// Open creates a Store over slots, loads the current session and migrates the legacy slot if needed.
//
// A corrupt session slot is logged and treated as signed out. Open only fails when migration cannot be persisted.
func Open(slots models.SlotStore, opts ...Option) (*Store, error) {
	s := &Store{
		slots:  slots,
		logger: shared.DiscardLogger(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	s.current = s.load()
	if err := s.migrateLegacy(); err != nil {
		return nil, err
	}
	return s, nil
}

// Reload re-reads the session slot, picking up writes made by another process.
func (s *Store) Reload() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.current = s.load()
	return nil
}

// Login starts a session from a partial profile, replacing any existing one.
//
// The profile image is the first non-empty alias in [models.Profile.ImageAliases] order.
func (s *Store) Login(p models.Profile) (models.UserRecord, error) {
	record := s.build(p)
	record.ProfileImage = firstImage(p.ImageAliases())
	if !p.CreatedAt.IsZero() {
		record.CreatedAt = p.CreatedAt
	}
	if !p.UpdatedAt.IsZero() {
		record.UpdatedAt = p.UpdatedAt
	}
	return s.replace(record)
}

// LoginUsername starts a session that only knows the username.
func (s *Store) LoginUsername(username string) (models.UserRecord, error) {
	return s.replace(s.build(models.Profile{Username: username}))
}

// Register starts a session for a newly created user. The profile image is always empty and the timestamps fresh.
func (s *Store) Register(p models.Profile) (models.UserRecord, error) {
	return s.replace(s.build(p))
}

// UpdateUser merges patch over the current record and refreshes updatedAt.
//
// It fails with [shared.ErrNoSession] when nobody is signed in.
func (s *Store) UpdateUser(ctx context.Context, patch models.UserPatch) (models.UserRecord, error) {
	return s.update(ctx, patch, nil)
}

// UpdateProfile is [Store.UpdateUser] with the profile page rules applied to the merged record.
func (s *Store) UpdateProfile(ctx context.Context, patch models.UserPatch) (models.UserRecord, error) {
	return s.update(ctx, patch, func(r models.UserRecord) error {
		if err := ValidateProfile(r.Name, r.Email); err != nil {
			return err
		}
		if r.ProfileImage != nil && *r.ProfileImage != "" {
			return ValidateImageURI(*r.ProfileImage)
		}
		return nil
	})
}

func (s *Store) update(ctx context.Context, patch models.UserPatch, validate func(models.UserRecord) error) (models.UserRecord, error) {
	if err := ctx.Err(); err != nil {
		return models.UserRecord{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		return models.UserRecord{}, shared.ErrNoSession
	}

	merged := applyPatch(*s.current, patch)
	if validate != nil {
		if err := validate(merged); err != nil {
			return models.UserRecord{}, err
		}
	}

	merged.UpdatedAt = s.after(s.current.UpdatedAt)
	if err := s.persist(merged); err != nil {
		return models.UserRecord{}, err
	}

	s.current = &merged
	return merged, nil
}

// Logout clears the current and legacy slots. Logging out twice is not an error.
func (s *Store) Logout() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.current = nil
	return errors.Join(
		s.slots.Delete(models.SlotSession),
		s.slots.Delete(models.SlotLegacySession),
	)
}

// IsAuthenticated reports whether a session is active.
func (s *Store) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current != nil
}

// Current returns a copy of the session record.
func (s *Store) Current() (models.UserRecord, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.current == nil {
		return models.UserRecord{}, false
	}
	return cloneRecord(*s.current), true
}

// DisplayName returns the label for the current user, see [DisplayName].
func (s *Store) DisplayName() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return DisplayName(s.current)
}

func (s *Store) build(p models.Profile) models.UserRecord {
	now := s.stamp()
	return models.UserRecord{
		Username:    p.Username,
		Name:        p.Name,
		DisplayName: p.DisplayName,
		FirstName:   p.FirstName,
		FullName:    p.FullName,
		Email:       p.Email,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func (s *Store) replace(record models.UserRecord) (models.UserRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.persist(record); err != nil {
		return models.UserRecord{}, err
	}
	s.current = &record
	return cloneRecord(record), nil
}

func (s *Store) persist(record models.UserRecord) error {
	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}
	if err := s.slots.Set(models.SlotSession, data); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

func (s *Store) load() *models.UserRecord {
	data, err := s.slots.Get(models.SlotSession)
	if err != nil {
		if !errors.Is(err, shared.ErrSlotNotFound) {
			s.logger.Warn("failed to read session slot", "error", err)
		}
		return nil
	}

	var record *models.UserRecord
	if err := json.Unmarshal(data, &record); err != nil {
		s.logger.Warn("ignoring corrupt session slot", "error", err)
		return nil
	}
	return record
}

// migrateLegacy moves a `{"username": ...}` record from the legacy slot into a fresh session.
func (s *Store) migrateLegacy() error {
	if s.current != nil {
		return nil
	}

	data, err := s.slots.Get(models.SlotLegacySession)
	if err != nil {
		if !errors.Is(err, shared.ErrSlotNotFound) {
			s.logger.Warn("failed to read legacy session slot", "error", err)
		}
		return nil
	}

	var legacy struct {
		Username string `json:"username"`
	}
	if err := json.Unmarshal(data, &legacy); err != nil || strings.TrimSpace(legacy.Username) == "" {
		s.logger.Warn("skipping malformed legacy session", "error", err)
		return nil
	}

	if _, err := s.LoginUsername(legacy.Username); err != nil {
		return fmt.Errorf("failed to migrate legacy session: %w", err)
	}
	if err := s.slots.Delete(models.SlotLegacySession); err != nil {
		return fmt.Errorf("failed to remove legacy session: %w", err)
	}

	s.logger.Info("migrated legacy session", "username", legacy.Username)
	return nil
}

// stamp returns the current time at the millisecond precision the slot format carries.
func (s *Store) stamp() time.Time {
	return s.now().UTC().Truncate(time.Millisecond)
}

// after returns a timestamp strictly later than prev.
func (s *Store) after(prev time.Time) time.Time {
	now := s.stamp()
	if !now.After(prev) {
		now = prev.Add(time.Millisecond)
	}
	return now
}

func applyPatch(r models.UserRecord, p models.UserPatch) models.UserRecord {
	set := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	set(&r.Username, p.Username)
	set(&r.Name, p.Name)
	set(&r.DisplayName, p.DisplayName)
	set(&r.FirstName, p.FirstName)
	set(&r.FullName, p.FullName)
	set(&r.Email, p.Email)

	switch {
	case p.ClearProfileImage:
		r.ProfileImage = nil
	case p.ProfileImage != nil:
		img := *p.ProfileImage
		r.ProfileImage = &img
	}
	return r
}

func firstImage(candidates []string) *string {
	for _, c := range candidates {
		if c != "" {
			img := c
			return &img
		}
	}
	return nil
}

func cloneRecord(r models.UserRecord) models.UserRecord {
	if r.ProfileImage != nil {
		img := *r.ProfileImage
		r.ProfileImage = &img
	}
	return r
}
