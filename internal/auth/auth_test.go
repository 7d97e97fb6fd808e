package auth

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"panguard/internal/platform/secrets"
	"panguard/internal/token"
	dErrors "panguard/pkg/domain-errors"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func TestAuthenticate_BearerToken(t *testing.T) {
	tokens := token.NewService("test-key", "panguard", "panguard-api")
	a := New(tokens, nil, discardLogger())

	signed, err := tokens.Generate("client-7", "cards:validate", time.Minute)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/", nil)
	req.Header.Set("Authorization", "Bearer "+signed)

	principal, err := a.Authenticate(req)
	require.NoError(t, err)
	assert.Equal(t, "client-7", principal.ClientID)
	assert.Equal(t, "jwt", principal.Method)
}

func TestAuthenticate_InvalidBearerToken(t *testing.T) {
	tokens := token.NewService("test-key", "panguard", "panguard-api")
	a := New(tokens, nil, discardLogger())

	req := httptest.NewRequest(http.MethodPost, "/", nil)
	req.Header.Set("Authorization", "Bearer garbage")

	_, err := a.Authenticate(req)
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeUnauthorized))
}

func TestAuthenticate_APIKey(t *testing.T) {
	rawKey, err := secrets.Generate()
	require.NoError(t, err)
	hash, err := secrets.Hash(rawKey)
	require.NoError(t, err)

	tokens := token.NewService("test-key", "panguard", "panguard-api")
	a := New(tokens, []string{"acme:" + hash, "malformed-entry"}, discardLogger())

	t.Run("accepted key resolves client", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", nil)
		req.Header.Set("X-API-Key", rawKey)

		principal, err := a.Authenticate(req)
		require.NoError(t, err)
		assert.Equal(t, "acme", principal.ClientID)
		assert.Equal(t, "api_key", principal.Method)
	})

	t.Run("unknown key rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", nil)
		req.Header.Set("X-API-Key", "not-the-key")

		_, err := a.Authenticate(req)
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeUnauthorized))
	})
}

func TestAuthenticate_NoCredentials(t *testing.T) {
	tokens := token.NewService("test-key", "panguard", "panguard-api")
	a := New(tokens, nil, discardLogger())

	_, err := a.Authenticate(httptest.NewRequest(http.MethodPost, "/", nil))
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeUnauthorized))
}
