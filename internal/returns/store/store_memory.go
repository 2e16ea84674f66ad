package store

import (
	"context"
	"sync"

	"taxgate/internal/returns"
	id "taxgate/pkg/domain"
)

type memoryKey struct {
	vrn       id.VRN
	periodKey id.PeriodKey
}

// InMemoryStore keeps returns in process memory. Used in development and
// unit tests.
type InMemoryStore struct {
	mu      sync.RWMutex
	returns map[memoryKey]returns.VATReturn
}

func NewInMemory() *InMemoryStore {
	return &InMemoryStore{returns: make(map[memoryKey]returns.VATReturn)}
}

func (s *InMemoryStore) Save(_ context.Context, ret *returns.VATReturn) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := memoryKey{vrn: ret.VRN, periodKey: ret.PeriodKey}
	if _, exists := s.returns[key]; exists {
		return returns.ErrDuplicate
	}
	s.returns[key] = *ret
	return nil
}

func (s *InMemoryStore) Find(_ context.Context, vrn id.VRN, periodKey id.PeriodKey) (*returns.VATReturn, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ret, ok := s.returns[memoryKey{vrn: vrn, periodKey: periodKey}]
	if !ok {
		return nil, returns.ErrNotFound
	}
	return &ret, nil
}

func (s *InMemoryStore) ListPeriodKeys(_ context.Context, vrn id.VRN) ([]id.PeriodKey, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var keys []id.PeriodKey
	for k := range s.returns {
		if k.vrn == vrn {
			keys = append(keys, k.periodKey)
		}
	}
	return keys, nil
}
