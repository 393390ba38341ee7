package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/uptrace/bun"

	"github.com/guifav/iris-api/internal/db/models"
)

// BunPredictionRepository implements the prediction ledger using Bun ORM
type BunPredictionRepository struct {
	db *bun.DB
}

// NewBunPredictionRepository creates a new Bun-based prediction repository
func NewBunPredictionRepository(db *bun.DB) *BunPredictionRepository {
	return &BunPredictionRepository{db: db}
}

// Insert appends one prediction row inside its own transaction. The
// transaction is committed or rolled back before Insert returns, so a
// failed write never leaks a unit of work.
func (r *BunPredictionRepository) Insert(ctx context.Context, p *models.Prediction) error {
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}

	err := r.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		_, err := tx.NewInsert().
			Model(p).
			Exec(ctx)
		return err
	})
	if err != nil {
		return fmt.Errorf("insert prediction: %w", err)
	}
	return nil
}

// ListRecent returns the most recent predictions, newest first.
func (r *BunPredictionRepository) ListRecent(ctx context.Context, limit int) ([]models.Prediction, error) {
	var predictions []models.Prediction
	err := r.db.NewSelect().
		Model(&predictions).
		Order("created_at DESC").
		Order("id DESC").
		Limit(limit).
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("list predictions: %w", err)
	}
	return predictions, nil
}
