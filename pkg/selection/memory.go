package selection

import (
	"context"
	"sync"

	"github.com/matzehuels/vehiclelookup/pkg/integrations/vehicles"
)

// MemoryStore keeps selections in process memory.
type MemoryStore struct {
	mu     sync.RWMutex
	states map[string]*vehicles.VehicleState
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{states: make(map[string]*vehicles.VehicleState)}
}

func (s *MemoryStore) Get(ctx context.Context, profile string) (*vehicles.VehicleState, error) {
	if err := checkProfile(profile); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return clone(s.states[profile]), nil
}

func (s *MemoryStore) Set(ctx context.Context, profile string, st *vehicles.VehicleState) error {
	if err := checkSet(profile, st); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.states[profile] = clone(st)
	return nil
}

func (s *MemoryStore) Delete(ctx context.Context, profile string) error {
	if err := checkProfile(profile); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.states, profile)
	return nil
}

func (s *MemoryStore) Close() error { return nil }

var _ Store = (*MemoryStore)(nil)
