package auth

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequireToken(t *testing.T) {
	issuer := NewIssuer(testSecret, "usuario", "senha")
	verifier := NewVerifier(testSecret)

	var handlerCalled bool
	var seenClaims *Claims
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		handlerCalled = true
		seenClaims, _ = ClaimsFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	var lastErr error
	responder := func(w http.ResponseWriter, _ *http.Request, err error) {
		lastErr = err
		http.Error(w, "no", http.StatusUnauthorized)
	}

	guard := RequireToken(verifier, responder)(next)

	t.Run("valid token reaches the handler with claims in context", func(t *testing.T) {
		handlerCalled, seenClaims, lastErr = false, nil, nil

		token, err := issuer.IssueToken(42, "usuario", "senha")
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodPost, "/predict", nil)
		req.Header.Set("Authorization", token)
		rec := httptest.NewRecorder()

		guard.ServeHTTP(rec, req)

		assert.True(t, handlerCalled)
		require.NotNil(t, seenClaims)
		assert.Equal(t, int64(42), seenClaims.UserID)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("missing token is rejected before the handler", func(t *testing.T) {
		handlerCalled, lastErr = false, nil

		req := httptest.NewRequest(http.MethodPost, "/predict", nil)
		rec := httptest.NewRecorder()

		guard.ServeHTTP(rec, req)

		assert.False(t, handlerCalled)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.True(t, errors.Is(lastErr, ErrMissingToken))
	})

	t.Run("default responder returns 401", func(t *testing.T) {
		plain := RequireToken(verifier, nil)(next)

		req := httptest.NewRequest(http.MethodPost, "/predict", nil)
		rec := httptest.NewRecorder()

		plain.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}
