package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/desertthunder/moviemaze/internal/models"
	"github.com/desertthunder/moviemaze/internal/shared"
)

// SlotRepository implements [models.SlotStore] on the SQLite slots table.
type SlotRepository struct {
	db *sql.DB
}

// NewSlotRepository creates a new SlotRepository with the given database connection
func NewSlotRepository(db *sql.DB) *SlotRepository {
	return &SlotRepository{db: db}
}

// Get returns the value stored under key, or [shared.ErrSlotNotFound]
func (r *SlotRepository) Get(key string) ([]byte, error) {
	var value []byte
	err := r.db.QueryRow("SELECT value FROM slots WHERE key = ?", key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", shared.ErrSlotNotFound, key)
		}
		return nil, fmt.Errorf("failed to read slot %s: %w", key, err)
	}
	return value, nil
}

// Set creates or replaces the value stored under key and bumps its revision
func (r *SlotRepository) Set(key string, value []byte) error {
	revision, err := NextSequence(r.db, "slots")
	if err != nil {
		return fmt.Errorf("failed to generate revision: %w", err)
	}

	query := `
		INSERT INTO slots (key, value, revision, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, revision = excluded.revision, updated_at = excluded.updated_at
	`

	if value == nil {
		value = []byte{}
	}
	if _, err := r.db.Exec(query, key, value, revision, time.Now().UTC()); err != nil {
		return fmt.Errorf("failed to write slot %s: %w", key, err)
	}
	return nil
}

// Delete removes the slot. Deleting a missing slot is not an error.
func (r *SlotRepository) Delete(key string) error {
	if _, err := r.db.Exec("DELETE FROM slots WHERE key = ?", key); err != nil {
		return fmt.Errorf("failed to delete slot %s: %w", key, err)
	}
	return nil
}

// Revision returns the revision of the slot, or [shared.ErrSlotNotFound]
func (r *SlotRepository) Revision(key string) (int, error) {
	var revision int
	err := r.db.QueryRow("SELECT revision FROM slots WHERE key = ?", key).Scan(&revision)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, fmt.Errorf("%w: %s", shared.ErrSlotNotFound, key)
		}
		return 0, fmt.Errorf("failed to read slot revision %s: %w", key, err)
	}
	return revision, nil
}

// Describe returns the full slot row, or [shared.ErrSlotNotFound]
func (r *SlotRepository) Describe(key string) (*models.Slot, error) {
	row := r.db.QueryRow("SELECT key, value, revision, updated_at FROM slots WHERE key = ?", key)
	slot, err := scanSlot(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", shared.ErrSlotNotFound, key)
		}
		return nil, fmt.Errorf("failed to read slot %s: %w", key, err)
	}
	return slot, nil
}

// List returns all slots ordered by key
func (r *SlotRepository) List() ([]*models.Slot, error) {
	rows, err := r.db.Query("SELECT key, value, revision, updated_at FROM slots ORDER BY key")
	if err != nil {
		return nil, fmt.Errorf("failed to query slots: %w", err)
	}
	defer rows.Close()

	var slots []*models.Slot
	for rows.Next() {
		slot, err := scanSlot(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan slot: %w", err)
		}
		slots = append(slots, slot)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating slots: %w", err)
	}
	return slots, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanSlot(s scanner) (*models.Slot, error) {
	var slot models.Slot
	if err := s.Scan(&slot.Key, &slot.Value, &slot.Revision, &slot.UpdatedAt); err != nil {
		return nil, err
	}
	return &slot, nil
}
