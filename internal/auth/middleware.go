package auth

import (
	"context"
	"net/http"
)

type claimsContextKey struct{}

var defaultClaimsContextKey = claimsContextKey{}

// ErrorResponder writes authentication failures to the response writer.
type ErrorResponder func(http.ResponseWriter, *http.Request, error)

// RequireToken constructs a chi-compatible middleware that rejects any
// request without a valid access token before it reaches the handler.
// The verified claims are parked on the request context; downstream
// handlers currently treat this as a pure gate and do not consume the
// identity, but it is available via ClaimsFromContext.
func RequireToken(v *Verifier, responder ErrorResponder) func(http.Handler) http.Handler {
	if responder == nil {
		responder = defaultErrorResponder
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, err := v.Verify(r.Header.Get("Authorization"))
			if err != nil {
				responder(w, r, err)
				return
			}

			ctx := context.WithValue(r.Context(), defaultClaimsContextKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ClaimsFromContext returns the verified token claims stored on the
// request context by RequireToken.
func ClaimsFromContext(ctx context.Context) (*Claims, bool) {
	claims, ok := ctx.Value(defaultClaimsContextKey).(*Claims)
	return claims, ok
}

func defaultErrorResponder(w http.ResponseWriter, _ *http.Request, _ error) {
	http.Error(w, "unauthenticated", http.StatusUnauthorized)
}
