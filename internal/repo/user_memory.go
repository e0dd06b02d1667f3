package repo

import (
	"context"
	"sync"

	"github.com/bloomnext/pos-inventory/internal/models"
)

type InMemoryUserRepository struct {
	mu     sync.Mutex
	users  map[string]models.User
	nextID int
}

func NewInMemoryUserRepository() *InMemoryUserRepository {
	return &InMemoryUserRepository{users: map[string]models.User{}, nextID: 1}
}

func (r *InMemoryUserRepository) CreateUser(_ context.Context, u models.User) (models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.users[u.Username]; exists {
		return models.User{}, ErrUsernameTaken
	}
	u.ID = r.nextID
	r.nextID++
	r.users[u.Username] = u
	return u, nil
}

func (r *InMemoryUserRepository) GetByUsername(_ context.Context, username string) (models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[username]
	if !ok {
		return models.User{}, ErrUserNotFound
	}
	return u, nil
}
