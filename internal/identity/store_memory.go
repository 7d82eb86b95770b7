package identity

import (
	"context"
	"strings"
	"sync"

	"freightdesk/pkg/platform/sentinel"
)

// InMemoryUserStore keeps accounts in process memory. Development and test
// use only.
type InMemoryUserStore struct {
	mu      sync.RWMutex
	byEmail map[string]User
}

func NewInMemoryUserStore() *InMemoryUserStore {
	return &InMemoryUserStore{byEmail: make(map[string]User)}
}

func (s *InMemoryUserStore) Create(_ context.Context, user User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := strings.ToLower(user.Email)
	if _, exists := s.byEmail[key]; exists {
		return sentinel.ErrConflict
	}
	s.byEmail[key] = user
	return nil
}

func (s *InMemoryUserStore) FindByEmail(_ context.Context, email string) (User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	user, ok := s.byEmail[strings.ToLower(email)]
	if !ok {
		return User{}, sentinel.ErrNotFound
	}
	return user, nil
}

func (s *InMemoryUserStore) FindByID(_ context.Context, id string) (User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, user := range s.byEmail {
		if user.ID.String() == id {
			return user, nil
		}
	}
	return User{}, sentinel.ErrNotFound
}
