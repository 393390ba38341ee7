package prediction

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guifav/iris-api/internal/cache"
	"github.com/guifav/iris-api/internal/classifier"
	"github.com/guifav/iris-api/internal/db/models"
)

// countingClassifier wraps the rule model and counts invocations.
type countingClassifier struct {
	inner classifier.Classifier
	calls int
}

func (c *countingClassifier) Classify(f classifier.FeatureVector) int {
	c.calls++
	return c.inner.Classify(f)
}

// fakeLedger records writes in memory; failErr makes every write fail.
type fakeLedger struct {
	rows    []models.Prediction
	failErr error
}

func (l *fakeLedger) Insert(_ context.Context, p *models.Prediction) error {
	if l.failErr != nil {
		return l.failErr
	}
	p.ID = int64(len(l.rows) + 1)
	l.rows = append(l.rows, *p)
	return nil
}

func (l *fakeLedger) ListRecent(_ context.Context, limit int) ([]models.Prediction, error) {
	if l.failErr != nil {
		return nil, l.failErr
	}
	if limit > len(l.rows) {
		limit = len(l.rows)
	}
	out := make([]models.Prediction, 0, limit)
	for i := len(l.rows) - 1; i >= len(l.rows)-limit; i-- {
		out = append(out, l.rows[i])
	}
	return out, nil
}

func TestService_Predict(t *testing.T) {
	ctx := context.Background()
	setosa := classifier.FeatureVector{SepalLength: 5.1, SepalWidth: 3.5, PetalLength: 1.4, PetalWidth: 0.2}

	t.Run("fresh vector: one classification, one ledger row", func(t *testing.T) {
		model := &countingClassifier{inner: classifier.NewRuleModel()}
		ledger := &fakeLedger{}
		svc := NewService(model, cache.New(), ledger, nil)

		label, cached := svc.Predict(ctx, setosa)
		assert.Equal(t, 0, label)
		assert.False(t, cached)
		assert.Equal(t, 1, model.calls)
		require.Len(t, ledger.rows, 1)
		assert.Equal(t, 0, ledger.rows[0].PredictedClass)
		assert.Equal(t, 1.4, ledger.rows[0].PetalLength)
	})

	t.Run("repeat vector: cache short-circuits classifier and ledger", func(t *testing.T) {
		model := &countingClassifier{inner: classifier.NewRuleModel()}
		ledger := &fakeLedger{}
		svc := NewService(model, cache.New(), ledger, nil)

		first, cached := svc.Predict(ctx, setosa)
		assert.False(t, cached)

		for i := 0; i < 5; i++ {
			label, cached := svc.Predict(ctx, setosa)
			assert.True(t, cached)
			assert.Equal(t, first, label)
		}

		assert.Equal(t, 1, model.calls)
		assert.Len(t, ledger.rows, 1)
	})

	t.Run("distinct vectors each classify and persist", func(t *testing.T) {
		model := &countingClassifier{inner: classifier.NewRuleModel()}
		ledger := &fakeLedger{}
		svc := NewService(model, cache.New(), ledger, nil)

		label, _ := svc.Predict(ctx, setosa)
		assert.Equal(t, 0, label)
		label, _ = svc.Predict(ctx, classifier.FeatureVector{SepalLength: 6.0, SepalWidth: 2.9, PetalLength: 4.5, PetalWidth: 1.5})
		assert.Equal(t, 1, label)
		label, _ = svc.Predict(ctx, classifier.FeatureVector{SepalLength: 7.7, SepalWidth: 3.8, PetalLength: 6.7, PetalWidth: 2.2})
		assert.Equal(t, 2, label)

		assert.Equal(t, 3, model.calls)
		assert.Len(t, ledger.rows, 3)
	})

	t.Run("ledger failure never reaches the caller", func(t *testing.T) {
		model := &countingClassifier{inner: classifier.NewRuleModel()}
		ledger := &fakeLedger{failErr: errors.New("store unreachable")}
		svc := NewService(model, cache.New(), ledger, nil)

		label, cached := svc.Predict(ctx, setosa)
		assert.Equal(t, 0, label)
		assert.False(t, cached)

		// The label is cached despite the failed write.
		label, cached = svc.Predict(ctx, setosa)
		assert.Equal(t, 0, label)
		assert.True(t, cached)
		assert.Equal(t, 1, model.calls)
	})
}

func TestService_Recent(t *testing.T) {
	ctx := context.Background()
	ledger := &fakeLedger{}
	svc := NewService(classifier.NewRuleModel(), cache.New(), ledger, nil)

	svc.Predict(ctx, classifier.FeatureVector{SepalLength: 5.1, SepalWidth: 3.5, PetalLength: 1.4, PetalWidth: 0.2})
	svc.Predict(ctx, classifier.FeatureVector{SepalLength: 7.7, SepalWidth: 3.8, PetalLength: 6.7, PetalWidth: 2.2})

	rows, err := svc.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	// Newest first.
	assert.Equal(t, 2, rows[0].PredictedClass)
	assert.Equal(t, 0, rows[1].PredictedClass)
}
