package session

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newClockedStore(start time.Time) (*MemoryStore, *time.Time) {
	now := start
	s := NewMemoryStore()
	s.now = func() time.Time { return now }
	return s, &now
}

func TestMemoryStoreCreateAndGet(t *testing.T) {
	s, _ := newClockedStore(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	userID := uuid.New()

	sess, err := s.Create(userID, time.Hour)
	require.NoError(t, err)
	assert.Len(t, sess.Token, 64) // 32 random bytes, hex encoded

	got, err := s.Get(sess.Token)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, userID, got.UserID)
}

func TestMemoryStoreUnknownToken(t *testing.T) {
	s := NewMemoryStore()
	got, err := s.Get("nope")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestMemoryStoreExpiry(t *testing.T) {
	s, now := newClockedStore(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	sess, err := s.Create(uuid.New(), time.Hour)
	require.NoError(t, err)

	*now = now.Add(2 * time.Hour)
	got, err := s.Get(sess.Token)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestMemoryStoreDelete(t *testing.T) {
	s := NewMemoryStore()
	sess, err := s.Create(uuid.New(), time.Hour)
	require.NoError(t, err)

	require.NoError(t, s.Delete(sess.Token))
	got, err := s.Get(sess.Token)
	require.NoError(t, err)
	assert.Nil(t, got)

	// Deleting again is harmless.
	require.NoError(t, s.Delete(sess.Token))
}

func TestMemoryStoreSweep(t *testing.T) {
	s, now := newClockedStore(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))

	_, err := s.Create(uuid.New(), time.Minute)
	require.NoError(t, err)
	live, err := s.Create(uuid.New(), time.Hour)
	require.NoError(t, err)

	*now = now.Add(30 * time.Minute)
	assert.Equal(t, 1, s.Sweep())
	assert.Equal(t, 0, s.Sweep())

	got, err := s.Get(live.Token)
	require.NoError(t, err)
	assert.NotNil(t, got)
}

func TestNewTokenUnique(t *testing.T) {
	a, err := NewToken()
	require.NoError(t, err)
	b, err := NewToken()
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}
