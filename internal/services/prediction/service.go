// Package prediction orchestrates the request-scoped pipeline:
// cache lookup, classification, cache store, and best-effort ledger
// persistence.
package prediction

import (
	"context"
	"log/slog"
	"strconv"

	"github.com/guifav/iris-api/internal/cache"
	"github.com/guifav/iris-api/internal/classifier"
	"github.com/guifav/iris-api/internal/db/models"
)

// Ledger is the durable, append-only log of predictions. Writes are
// advisory: the caller decides what to do with a failure.
type Ledger interface {
	Insert(ctx context.Context, p *models.Prediction) error
	ListRecent(ctx context.Context, limit int) ([]models.Prediction, error)
}

// Service runs the prediction pipeline. All dependencies are injected
// so tests can substitute fresh caches and failing ledgers.
type Service struct {
	classifier classifier.Classifier
	cache      *cache.PredictionCache
	ledger     Ledger
	logger     *slog.Logger
}

// NewService wires the pipeline components together.
func NewService(c classifier.Classifier, pc *cache.PredictionCache, ledger Ledger, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		classifier: c,
		cache:      pc,
		ledger:     ledger,
		logger:     logger,
	}
}

// Predict returns the class label for f and whether it was served from
// the cache. On a miss it classifies, caches the label, and appends a
// ledger row. The ledger write is one attempt, best-effort: its error
// is logged, counted, and discarded, never propagated to the caller.
// The already-computed label is authoritative regardless of ledger
// outcome.
func (s *Service) Predict(ctx context.Context, f classifier.FeatureVector) (int, bool) {
	if label, ok := s.cache.Get(f); ok {
		s.logger.Debug("prediction cache hit", "features", f, "class", label)
		predictionsTotal.WithLabelValues(strconv.Itoa(label), sourceCache).Inc()
		return label, true
	}

	label := s.classifier.Classify(f)
	s.cache.Put(f, label)
	s.logger.Debug("prediction cache updated", "features", f, "class", label)
	predictionsTotal.WithLabelValues(strconv.Itoa(label), sourceModel).Inc()

	record := &models.Prediction{
		SepalLength:    f.SepalLength,
		SepalWidth:     f.SepalWidth,
		PetalLength:    f.PetalLength,
		PetalWidth:     f.PetalWidth,
		PredictedClass: label,
	}
	if err := s.ledger.Insert(ctx, record); err != nil {
		// Durability of the audit trail never blocks or invalidates
		// the primary response.
		ledgerFailures.Inc()
		s.logger.Error("prediction not persisted", "error", err)
	}

	return label, false
}

// Recent returns the newest ledger rows, up to limit.
func (s *Service) Recent(ctx context.Context, limit int) ([]models.Prediction, error) {
	return s.ledger.ListRecent(ctx, limit)
}
