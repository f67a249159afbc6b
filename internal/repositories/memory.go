package repositories

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/desertthunder/moviemaze/internal/models"
	"github.com/desertthunder/moviemaze/internal/shared"
)

// MemorySlotStore is a volatile [models.SlotStore]. Values are copied on the way in and out.
type MemorySlotStore struct {
	mu       sync.RWMutex
	slots    map[string]models.Slot
	revision int
}

// NewMemorySlotStore creates an empty MemorySlotStore
func NewMemorySlotStore() *MemorySlotStore {
	return &MemorySlotStore{slots: make(map[string]models.Slot)}
}

func (m *MemorySlotStore) Get(key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	slot, ok := m.slots[key]
	if !ok {
		return nil, fmt.Errorf("%w: %s", shared.ErrSlotNotFound, key)
	}
	return append([]byte(nil), slot.Value...), nil
}

func (m *MemorySlotStore) Set(key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.revision++
	m.slots[key] = models.Slot{
		Key:       key,
		Value:     append([]byte{}, value...),
		Revision:  m.revision,
		UpdatedAt: time.Now().UTC(),
	}
	return nil
}

func (m *MemorySlotStore) Delete(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.slots, key)
	return nil
}

// Revision returns the revision of the slot, or [shared.ErrSlotNotFound]
func (m *MemorySlotStore) Revision(key string) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	slot, ok := m.slots[key]
	if !ok {
		return 0, fmt.Errorf("%w: %s", shared.ErrSlotNotFound, key)
	}
	return slot.Revision, nil
}

// Describe returns a copy of the full slot, or [shared.ErrSlotNotFound]
func (m *MemorySlotStore) Describe(key string) (*models.Slot, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	slot, ok := m.slots[key]
	if !ok {
		return nil, fmt.Errorf("%w: %s", shared.ErrSlotNotFound, key)
	}
	slot.Value = append([]byte(nil), slot.Value...)
	return &slot, nil
}

// List returns copies of all slots ordered by key
func (m *MemorySlotStore) List() ([]*models.Slot, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	slots := make([]*models.Slot, 0, len(m.slots))
	for _, s := range m.slots {
		s.Value = append([]byte(nil), s.Value...)
		slots = append(slots, &s)
	}
	sort.Slice(slots, func(i, j int) bool { return slots[i].Key < slots[j].Key })
	return slots, nil
}

// Inspector is implemented by slot stores that can enumerate their contents.
type Inspector interface {
	List() ([]*models.Slot, error)
	Describe(key string) (*models.Slot, error)
}

var (
	_ models.SlotStore = (*SlotRepository)(nil)
	_ models.SlotStore = (*MemorySlotStore)(nil)
	_ Inspector        = (*SlotRepository)(nil)
	_ Inspector        = (*MemorySlotStore)(nil)
)
