package redemption

import (
	"context"
	"sync"
	"time"
)

type memoryStore struct {
	mu    sync.Mutex
	codes map[string]PendingCode
	ttl   time.Duration
	now   func() time.Time
}

// NewMemoryStore constructs an in-memory pending-code table. The TTL is only
// used by Sweep; the coordinator performs the authoritative expiry check on
// access.
func NewMemoryStore(ttl time.Duration) CodeStore {
	return &memoryStore{
		codes: make(map[string]PendingCode),
		ttl:   ttl,
		now:   time.Now,
	}
}

func (s *memoryStore) Put(_ context.Context, pc PendingCode) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.codes[pc.Code]; exists {
		return ErrCodeTaken
	}
	s.codes[pc.Code] = pc
	return nil
}

func (s *memoryStore) Get(_ context.Context, code string) (PendingCode, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	pc, ok := s.codes[code]
	if !ok {
		return PendingCode{}, ErrCodeNotFound
	}
	return pc, nil
}

func (s *memoryStore) Take(_ context.Context, code string) (PendingCode, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	pc, ok := s.codes[code]
	if !ok {
		return PendingCode{}, ErrCodeNotFound
	}
	delete(s.codes, code)
	return pc, nil
}

func (s *memoryStore) Delete(_ context.Context, code string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.codes, code)
	return nil
}

func (s *memoryStore) Sweep(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	t := s.now()
	for code, pc := range s.codes {
		if t.After(pc.CreatedAt.Add(s.ttl)) {
			delete(s.codes, code)
		}
	}
	return nil
}
