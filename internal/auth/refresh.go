package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrRefreshTokenNotFound is returned for unknown, expired or already
// rotated refresh tokens.
var ErrRefreshTokenNotFound = errors.New("refresh token not found")

// RefreshStore persists opaque refresh tokens mapped to usernames.
type RefreshStore interface {
	Save(ctx context.Context, token, username string) error
	// Consume returns the owner of the token and removes it, so every
	// refresh rotates the token.
	Consume(ctx context.Context, token string) (string, error)
}

// NewRefreshToken returns a random opaque token.
func NewRefreshToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate refresh token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

const refreshKeyPrefix = "auth:refresh:"

// RedisRefreshStore keeps refresh tokens in redis with a TTL.
type RedisRefreshStore struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisRefreshStore(rdb *redis.Client, ttl time.Duration) *RedisRefreshStore {
	return &RedisRefreshStore{rdb: rdb, ttl: ttl}
}

func (s *RedisRefreshStore) Save(ctx context.Context, token, username string) error {
	return s.rdb.Set(ctx, refreshKeyPrefix+token, username, s.ttl).Err()
}

func (s *RedisRefreshStore) Consume(ctx context.Context, token string) (string, error) {
	username, err := s.rdb.GetDel(ctx, refreshKeyPrefix+token).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrRefreshTokenNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to read refresh token: %w", err)
	}
	return username, nil
}

// InMemoryRefreshStore backs the handler test suites.
type InMemoryRefreshStore struct {
	mu     sync.Mutex
	tokens map[string]string
}

func NewInMemoryRefreshStore() *InMemoryRefreshStore {
	return &InMemoryRefreshStore{tokens: map[string]string{}}
}

func (s *InMemoryRefreshStore) Save(_ context.Context, token, username string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens[token] = username
	return nil
}

func (s *InMemoryRefreshStore) Consume(_ context.Context, token string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	username, ok := s.tokens[token]
	if !ok {
		return "", ErrRefreshTokenNotFound
	}
	delete(s.tokens, token)
	return username, nil
}
