package server

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/guifav/iris-api/internal/auth"
)

// errNonNumericFeature is returned when a feature field is neither a
// JSON number nor a numeric string.
var errNonNumericFeature = errors.New("feature value is not numeric")

// authFailureResponder maps the three token failure kinds to distinct
// user-facing messages and metric labels. The wire status is uniformly
// 401; the distinction exists for callers and observability.
func authFailureResponder(w http.ResponseWriter, r *http.Request, err error) {
	reason, msg := "invalid", "invalid token"
	switch {
	case errors.Is(err, auth.ErrMissingToken):
		reason, msg = "missing", "token missing"
	case errors.Is(err, auth.ErrExpiredToken):
		reason, msg = "expired", "token expired"
	}

	slog.Warn("request rejected", "path", r.URL.Path, "reason", reason)
	authFailures.WithLabelValues(reason).Inc()
	writeError(w, http.StatusUnauthorized, msg)
}
