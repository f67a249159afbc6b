// package models defines the data model for the movie discovery stores
package models

import (
	"time"
)

// Fixed storage slot keys. The names match the keys the browser build of the app used, so exported slot data stays compatible.
const (
	SlotSession       = "movieMazeUser"
	SlotLegacySession = "user"
	SlotFavorites     = "favorites"
	SlotTheme         = "theme"
	SlotAccounts      = "users"
)

// SlotStore is the durable key-value facility the stores persist to.
//
// Values are whole documents: every Set replaces the previous value and there are no partial updates.
type SlotStore interface {
	Get(key string) ([]byte, error)     // Get returns the slot value or shared.ErrSlotNotFound
	Set(key string, value []byte) error // Set creates or replaces the slot value
	Delete(key string) error            // Delete removes the slot; deleting a missing slot is not an error
}

// Slot describes a stored slot, used for inspection commands.
type Slot struct {
	Key       string
	Value     []byte
	Revision  int
	UpdatedAt time.Time
}
