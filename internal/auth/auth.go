// Package auth resolves API client credentials. Two credential types are
// accepted: a Bearer JWT issued by this service, or a static API key checked
// against configured bcrypt hashes.
package auth

import (
	"log/slog"
	"net/http"
	"strings"

	"panguard/internal/platform/middleware"
	"panguard/internal/platform/secrets"
	"panguard/internal/token"
	dErrors "panguard/pkg/domain-errors"
)

// TokenValidator verifies Bearer tokens.
type TokenValidator interface {
	ValidateToken(tokenString string) (*token.Claims, error)
}

type apiKey struct {
	clientID string
	hash     string
}

// Authenticator implements middleware.Authenticator over both credential types.
type Authenticator struct {
	tokens TokenValidator
	keys   []apiKey
}

// New builds an Authenticator. Each entry in keyHashes is "client_id:bcrypt_hash";
// malformed entries are logged and skipped rather than failing startup.
func New(tokens TokenValidator, keyHashes []string, logger *slog.Logger) *Authenticator {
	a := &Authenticator{tokens: tokens}
	for _, entry := range keyHashes {
		clientID, hash, ok := strings.Cut(entry, ":")
		if !ok || clientID == "" || hash == "" {
			logger.Warn("skipping malformed API key entry, want client_id:bcrypt_hash")
			continue
		}
		a.keys = append(a.keys, apiKey{clientID: clientID, hash: hash})
	}
	return a
}

// Authenticate checks the Authorization header first, then X-API-Key.
func (a *Authenticator) Authenticate(r *http.Request) (middleware.Principal, error) {
	if after, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer "); ok {
		claims, err := a.tokens.ValidateToken(after)
		if err != nil {
			return middleware.Principal{}, err
		}
		return middleware.Principal{ClientID: claims.ClientID, Method: "jwt"}, nil
	}

	if key := r.Header.Get("X-API-Key"); key != "" {
		for _, candidate := range a.keys {
			if secrets.Verify(key, candidate.hash) == nil {
				return middleware.Principal{ClientID: candidate.clientID, Method: "api_key"}, nil
			}
		}
		return middleware.Principal{}, dErrors.New(dErrors.CodeUnauthorized, "unknown API key")
	}

	return middleware.Principal{}, dErrors.New(dErrors.CodeUnauthorized, "no credentials presented")
}
