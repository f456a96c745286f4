package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nkalandadze/zmna-backend/internal/domain"
)

const testSecret = "test-secret-at-least-32-chars-long-ok"

func testManager() *TokenManager {
	return NewTokenManager(testSecret, "zmna-editor", 15*time.Minute)
}

func TestGenerateAndValidate(t *testing.T) {
	t.Parallel()

	m := testManager()

	token, err := m.Generate("nino")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	subject, err := m.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, "nino", subject)
}

func TestValidate_Errors(t *testing.T) {
	t.Parallel()

	m := testManager()
	good, err := m.Generate("nino")
	require.NoError(t, err)

	otherSecret := NewTokenManager("another-secret-also-32-chars-long-x", "zmna-editor", time.Minute)
	otherIssuer := NewTokenManager(testSecret, "someone-else", time.Minute)
	forged, err := otherSecret.Generate("mallory")
	require.NoError(t, err)
	wrongIssuer, err := otherIssuer.Generate("nino")
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{name: "empty", token: ""},
		{name: "garbage", token: "not-a-jwt"},
		{name: "wrong secret", token: forged},
		{name: "wrong issuer", token: wrongIssuer},
		{name: "truncated", token: good[:len(good)-5]},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			_, err := m.Validate(tc.token)
			assert.ErrorIs(t, err, domain.ErrUnauthorized)
		})
	}
}

func TestValidate_Expired(t *testing.T) {
	t.Parallel()

	m := NewTokenManager(testSecret, "zmna-editor", -time.Minute)
	token, err := m.Generate("nino")
	require.NoError(t, err)

	_, err = m.Validate(token)
	require.ErrorIs(t, err, domain.ErrUnauthorized)
	assert.True(t, IsExpired(err))
}
