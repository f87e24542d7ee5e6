// Package session stores per-player game state behind an opaque id.
package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"Stockle/internal/domain/models"
	drepo "Stockle/internal/domain/repository"
	"Stockle/pkg/cache"
)

// Store implements repository.SessionStore on top of a cache backend, so
// sessions live in-process or in Redis depending on configuration. Entries
// expire after the idle TTL.
type Store struct {
	cache cache.Service
	ttl   time.Duration
}

// NewStore creates a session store with the given idle TTL.
func NewStore(c cache.Service, ttl time.Duration) *Store {
	return &Store{cache: c, ttl: ttl}
}

func sessionKey(id string) string {
	return "session:" + id
}

func (s *Store) Get(ctx context.Context, id string) (*models.Session, error) {
	var sess models.Session
	if err := s.cache.Get(ctx, sessionKey(id), &sess); err != nil {
		if errors.Is(err, cache.ErrCacheMiss) {
			return nil, drepo.ErrSessionNotFound
		}
		return nil, fmt.Errorf("session get: %w", err)
	}
	return &sess, nil
}

func (s *Store) Put(ctx context.Context, id string, sess *models.Session) error {
	if err := s.cache.Set(ctx, sessionKey(id), sess, s.ttl); err != nil {
		return fmt.Errorf("session put: %w", err)
	}
	return nil
}

func (s *Store) Clear(ctx context.Context, id string) error {
	if err := s.cache.Delete(ctx, sessionKey(id)); err != nil {
		return fmt.Errorf("session clear: %w", err)
	}
	return nil
}
