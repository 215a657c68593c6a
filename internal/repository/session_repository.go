package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/controledu/controledu-api/internal/models"
	appErrors "github.com/controledu/controledu-api/pkg/errors"
)

const sessionKeyPrefix = "session:"

// SessionRepository stores authenticated sessions in Redis with an idle
// expiry that slides forward on every lookup.
type SessionRepository struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSessionRepository constructs a SessionRepository.
func NewSessionRepository(client *redis.Client, ttl time.Duration) *SessionRepository {
	return &SessionRepository{client: client, ttl: ttl}
}

// Save stores a session under its token with the configured TTL.
func (r *SessionRepository) Save(ctx context.Context, session *models.Session) error {
	payload, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	if err := r.client.Set(ctx, sessionKeyPrefix+session.Token, payload, r.ttl).Err(); err != nil {
		return fmt.Errorf("redis set session: %w", err)
	}
	return nil
}

// Find loads the session for a token and refreshes its expiry.
func (r *SessionRepository) Find(ctx context.Context, token string) (*models.Session, error) {
	key := sessionKeyPrefix + token
	raw, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, appErrors.ErrUnauthorized
		}
		return nil, fmt.Errorf("redis get session: %w", err)
	}

	var session models.Session
	if err := json.Unmarshal(raw, &session); err != nil {
		return nil, fmt.Errorf("unmarshal session: %w", err)
	}

	if err := r.client.Expire(ctx, key, r.ttl).Err(); err != nil {
		return nil, fmt.Errorf("redis refresh session: %w", err)
	}
	return &session, nil
}

// Delete removes the session for a token. Missing tokens are not an error.
func (r *SessionRepository) Delete(ctx context.Context, token string) error {
	if err := r.client.Del(ctx, sessionKeyPrefix+token).Err(); err != nil {
		return fmt.Errorf("redis delete session: %w", err)
	}
	return nil
}
