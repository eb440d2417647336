package session

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	s := New()
	_, err := uuid.Parse(s.Token)
	require.NoError(t, err)
	assert.Equal(t, "casablanca", s.City)
	assert.False(t, s.Authenticated())

	assert.NotEqual(t, s.Token, New().Token)
}

func TestLifecycle(t *testing.T) {
	s := New()
	token := s.Token

	assert.True(t, s.SetCity("agadir"))
	assert.Equal(t, "agadir", s.City)

	assert.False(t, s.SetCity("paris"))
	assert.Equal(t, "agadir", s.City, "unknown city must not change the session")

	s.SetUser(42, "elJadida")
	assert.True(t, s.Authenticated())
	assert.Equal(t, int64(42), s.UserID)
	assert.Equal(t, "eljadida", s.City)

	s.SetUser(43, "")
	assert.Equal(t, "eljadida", s.City, "empty default keeps the current city")

	s.Clear()
	assert.False(t, s.Authenticated())
	assert.Equal(t, "casablanca", s.City)
	assert.Equal(t, token, s.Token)
}

func TestContext(t *testing.T) {
	_, ok := FromContext(context.Background())
	assert.False(t, ok)

	s := New()
	got, ok := FromContext(WithSession(context.Background(), s))
	require.True(t, ok)
	assert.Same(t, s, got)

	_, ok = FromContext(WithSession(context.Background(), nil))
	assert.False(t, ok)
}

func TestNilSessionNotAuthenticated(t *testing.T) {
	var s *Session
	assert.False(t, s.Authenticated())
}
