package auth

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/villaflora/go-resto-console/internal/redisx"
)

var (
	ErrBadCode      = errors.New("invalid access code")
	ErrInvalidToken = errors.New("invalid or expired session token")
)

// Sessions is the operator session store. Login is intentionally opaque: a
// single staff access code is exchanged for a uuid token held in Redis with
// a sliding TTL. Per-operator accounts belong to a later iteration.
type Sessions struct {
	Redis      *redis.Client
	AccessCode string
	TTL        time.Duration
}

func NewSessions(rdb *redis.Client, accessCode string) *Sessions {
	return &Sessions{Redis: rdb, AccessCode: accessCode, TTL: redisx.TTLStaffSession}
}

// Login exchanges the shared access code for a session token.
func (s *Sessions) Login(ctx context.Context, code, operator string) (string, error) {
	if s.AccessCode == "" ||
		subtle.ConstantTimeCompare([]byte(code), []byte(s.AccessCode)) != 1 {
		return "", ErrBadCode
	}
	operator = strings.TrimSpace(operator)
	if operator == "" {
		operator = "staff"
	}
	token := uuid.NewString()
	key := fmt.Sprintf(redisx.KeyStaffSession, token)
	if err := s.Redis.Set(ctx, key, operator, s.TTL).Err(); err != nil {
		return "", err
	}
	return token, nil
}

// Authorize checks the token and refreshes its TTL, returning the operator
// name. This is the engine's Authorizer.
func (s *Sessions) Authorize(ctx context.Context, token string) (string, error) {
	if token == "" {
		return "", ErrInvalidToken
	}
	key := fmt.Sprintf(redisx.KeyStaffSession, token)
	operator, err := s.Redis.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrInvalidToken
	}
	if err != nil {
		return "", err
	}
	_ = s.Redis.Expire(ctx, key, s.TTL).Err()
	return operator, nil
}

func (s *Sessions) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return s.Redis.Del(ctx, fmt.Sprintf(redisx.KeyStaffSession, token)).Err()
}
