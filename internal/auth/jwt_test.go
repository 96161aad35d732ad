package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-LabReservation/internal/domain"
)

func TestIssueAndParse(t *testing.T) {
	m := NewManager("secret", "lab-reservation", time.Hour)

	token, expiresAt, err := m.Issue(&domain.User{ID: 12, Role: domain.RoleAdmin})
	require.NoError(t, err)
	assert.True(t, expiresAt.After(time.Now()))

	actor, err := m.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, domain.Actor{ID: 12, Role: domain.RoleAdmin}, actor)
}

func TestParse_Rejects(t *testing.T) {
	m := NewManager("secret", "lab-reservation", time.Hour)
	token, _, err := m.Issue(&domain.User{ID: 12, Role: domain.RoleRequester})
	require.NoError(t, err)

	t.Run("wrong secret", func(t *testing.T) {
		_, err := NewManager("other", "lab-reservation", time.Hour).Parse(token)
		assert.ErrorIs(t, err, domain.ErrUnauthenticated)
	})

	t.Run("expired", func(t *testing.T) {
		late := NewManager("secret", "lab-reservation", time.Hour)
		late.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
		_, err := late.Parse(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := m.Parse("not-a-token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("unknown role", func(t *testing.T) {
		forged, _, err := m.Issue(&domain.User{ID: 12, Role: "superuser"})
		require.NoError(t, err)
		_, err = m.Parse(forged)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}
