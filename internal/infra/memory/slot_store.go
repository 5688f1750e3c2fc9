package memory

import (
	"context"
	"strings"
	"sync"

	"quizzle/internal/domain"
)

// SlotStore is an in-memory implementation of app.SlotStore. Stores returned
// by Device share the same map under a per-device namespace.
type SlotStore struct {
	shared    *slotMap
	namespace string
}

type slotMap struct {
	mu    sync.RWMutex
	slots map[string]string
}

func NewSlotStore() *SlotStore {
	return &SlotStore{
		shared: &slotMap{slots: make(map[string]string)},
	}
}

// Device returns a view of the store scoped to one device.
func (s *SlotStore) Device(id string) *SlotStore {
	return &SlotStore{
		shared:    s.shared,
		namespace: "device:" + id + ":",
	}
}

func (s *SlotStore) Get(_ context.Context, key string) (string, error) {
	s.shared.mu.RLock()
	defer s.shared.mu.RUnlock()
	value, ok := s.shared.slots[s.namespace+key]
	if !ok {
		return "", domain.ErrSlotNotFound
	}
	return value, nil
}

func (s *SlotStore) Set(_ context.Context, key, value string) error {
	s.shared.mu.Lock()
	defer s.shared.mu.Unlock()
	s.shared.slots[s.namespace+key] = value
	return nil
}

func (s *SlotStore) Delete(_ context.Context, key string) error {
	s.shared.mu.Lock()
	defer s.shared.mu.Unlock()
	delete(s.shared.slots, s.namespace+key)
	return nil
}

// Keys lists the keys visible in this namespace (test helper for asserting slot naming).
func (s *SlotStore) Keys() []string {
	s.shared.mu.RLock()
	defer s.shared.mu.RUnlock()
	keys := make([]string, 0, len(s.shared.slots))
	for k := range s.shared.slots {
		if s.namespace == "" && strings.HasPrefix(k, "device:") {
			continue
		}
		if rest, ok := strings.CutPrefix(k, s.namespace); ok {
			keys = append(keys, rest)
		}
	}
	return keys
}
