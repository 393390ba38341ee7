package server

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/guifav/iris-api/internal/auth"
	"github.com/guifav/iris-api/internal/classifier"
	"github.com/guifav/iris-api/internal/services/prediction"
)

const (
	msgInvalidCredentials = "invalid credentials"
	msgInvalidInput       = "invalid input"
	msgInvalidBody        = "invalid request body"
)

// HealthResponse is the liveness probe payload.
type HealthResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Version string `json:"version"`
}

// HandleHealth reports service liveness. No auth.
func HandleHealth(version string) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, HealthResponse{
			Status:  "healthy",
			Message: "iris classification API is running",
			Version: version,
		})
	}
}

// LoginRequest carries the credentials for token issuance.
type LoginRequest struct {
	UserID   int64  `json:"user_id"`
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse carries a freshly minted access token.
type LoginResponse struct {
	Token string `json:"token"`
}

// HandleLogin validates the credential pair and returns a signed,
// time-limited access token. Any mismatch yields the same generic 401,
// never naming which field was wrong.
func HandleLogin(issuer *auth.Issuer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req LoginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, msgInvalidBody)
			return
		}

		token, err := issuer.IssueToken(req.UserID, req.Username, req.Password)
		if err != nil {
			slog.Warn("login rejected", "user_id", req.UserID)
			loginFailures.Inc()
			writeError(w, http.StatusUnauthorized, msgInvalidCredentials)
			return
		}

		writeJSON(w, http.StatusOK, LoginResponse{Token: token})
	}
}

// featureValue accepts a JSON number or a numeric string, matching the
// loose coercion of the wire contract.
type featureValue float64

func (v *featureValue) UnmarshalJSON(data []byte) error {
	var n float64
	if err := json.Unmarshal(data, &n); err == nil {
		*v = featureValue(n)
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return errNonNumericFeature
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return errNonNumericFeature
	}
	*v = featureValue(f)
	return nil
}

// PredictRequest is the prediction input. All four measurements are
// required; pointers distinguish absent fields from zero values.
type PredictRequest struct {
	SepalLength *featureValue `json:"sepal_length"`
	SepalWidth  *featureValue `json:"sepal_width"`
	PetalLength *featureValue `json:"petal_length"`
	PetalWidth  *featureValue `json:"petal_width"`
}

func (r *PredictRequest) features() (classifier.FeatureVector, bool) {
	if r.SepalLength == nil || r.SepalWidth == nil || r.PetalLength == nil || r.PetalWidth == nil {
		return classifier.FeatureVector{}, false
	}
	return classifier.FeatureVector{
		SepalLength: float64(*r.SepalLength),
		SepalWidth:  float64(*r.SepalWidth),
		PetalLength: float64(*r.PetalLength),
		PetalWidth:  float64(*r.PetalWidth),
	}, true
}

// PredictResponse carries the integer class label.
type PredictResponse struct {
	Prediction int `json:"prediction"`
}

// HandlePredict validates the input and runs the prediction pipeline.
// Validation failures are terminal: no cache, classifier, or ledger
// work happens for a bad request.
func HandlePredict(svc *prediction.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req PredictRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, msgInvalidInput)
			return
		}

		features, ok := req.features()
		if !ok {
			writeError(w, http.StatusBadRequest, msgInvalidInput)
			return
		}

		label, cached := svc.Predict(r.Context(), features)
		slog.Info("prediction served", "class", label, "cached", cached)
		writeJSON(w, http.StatusOK, PredictResponse{Prediction: label})
	}
}

// PredictionRecord is one ledger row in API form.
type PredictionRecord struct {
	ID             int64     `json:"id"`
	SepalLength    float64   `json:"sepal_length"`
	SepalWidth     float64   `json:"sepal_width"`
	PetalLength    float64   `json:"petal_length"`
	PetalWidth     float64   `json:"petal_width"`
	PredictedClass int       `json:"predicted_class"`
	CreatedAt      time.Time `json:"created_at"`
}

// PredictionsResponse is the listing envelope for recent predictions.
type PredictionsResponse struct {
	Predictions []PredictionRecord `json:"predictions"`
}

const (
	defaultListLimit = 20
	maxListLimit     = 100
)

// HandlePredictions returns the most recent ledger rows, newest first.
func HandlePredictions(svc *prediction.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit := defaultListLimit
		if raw := r.URL.Query().Get("limit"); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil || n < 1 {
				writeError(w, http.StatusBadRequest, msgInvalidInput)
				return
			}
			limit = min(n, maxListLimit)
		}

		rows, err := svc.Recent(r.Context(), limit)
		if err != nil {
			slog.Error("failed to list predictions", "error", err)
			writeError(w, http.StatusInternalServerError, "failed to list predictions")
			return
		}

		records := make([]PredictionRecord, 0, len(rows))
		for _, row := range rows {
			records = append(records, PredictionRecord{
				ID:             row.ID,
				SepalLength:    row.SepalLength,
				SepalWidth:     row.SepalWidth,
				PetalLength:    row.PetalLength,
				PetalWidth:     row.PetalWidth,
				PredictedClass: row.PredictedClass,
				CreatedAt:      row.CreatedAt,
			})
		}
		writeJSON(w, http.StatusOK, PredictionsResponse{Predictions: records})
	}
}
