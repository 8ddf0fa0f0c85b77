// Package session holds login sessions behind an explicit store interface
// instead of ambient global state, so request handling can be wired against
// either an in-process map or Redis.
package session

import (
	"crypto/rand"
	"encoding/hex"
	"time"

	"github.com/google/uuid"
)

type Session struct {
	Token     string
	UserID    uuid.UUID
	ExpiresAt time.Time
}

// Store is the session backend. Get returns (nil, nil) for a token that is
// unknown or expired; Sweep evicts expired sessions and returns how many
// were removed.
type Store interface {
	Create(userID uuid.UUID, ttl time.Duration) (*Session, error)
	Get(token string) (*Session, error)
	Delete(token string) error
	Sweep() int
}

// NewToken returns 32 random bytes hex-encoded.
func NewToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
