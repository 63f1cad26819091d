package storage

import (
	"context"
	"sort"
	"sync"
	"time"
)

// MemoryStore keeps contracts in process memory. Used by tests and by local
// runs without a configured database.
type MemoryStore struct {
	mu        sync.RWMutex
	nextID    int64
	contracts map[int64]Contract
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{nextID: 1, contracts: make(map[int64]Contract)}
}

// All returns every contract, newest first.
func (s *MemoryStore) All(ctx context.Context) ([]Contract, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	all := make([]Contract, 0, len(s.contracts))
	for _, c := range s.contracts {
		all = append(all, c)
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].CreatedAt.Equal(all[j].CreatedAt) {
			return all[i].ID > all[j].ID
		}
		return all[i].CreatedAt.After(all[j].CreatedAt)
	})
	return all, nil
}

// ByID returns one contract or ErrNotFound.
func (s *MemoryStore) ByID(ctx context.Context, id int64) (Contract, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.contracts[id]
	if !ok {
		return Contract{}, ErrNotFound
	}
	return c, nil
}

// Create assigns the next contract number and stores the record.
func (s *MemoryStore) Create(ctx context.Context, nc NewContract) (Contract, error) {
	nc.applyDefaults()

	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	c := Contract{
		ID:             s.nextID,
		ContractNumber: contractNumber(now.Year(), int64(len(s.contracts))+1),
		StudentName:    nc.StudentName,
		Phone:          nc.Phone,
		Age:            nc.Age,
		Course:         nc.Course,
		Format:         nc.Format,
		Status:         "signed",
		CreatedAt:      now,
	}
	s.contracts[c.ID] = c
	s.nextID++
	return c, nil
}

// Delete removes a contract or returns ErrNotFound.
func (s *MemoryStore) Delete(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.contracts[id]; !ok {
		return ErrNotFound
	}
	delete(s.contracts, id)
	return nil
}
