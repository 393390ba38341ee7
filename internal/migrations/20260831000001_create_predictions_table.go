package migrations

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"

	"github.com/guifav/iris-api/internal/db/models"
)

func init() {
	Migrations.MustRegister(up_20260831000001, down_20260831000001)
}

// up_20260831000001 creates the predictions ledger table
func up_20260831000001(ctx context.Context, db *bun.DB) error {
	fmt.Print(" [up] creating predictions table...")

	_, err := db.NewCreateTable().
		Model((*models.Prediction)(nil)).
		IfNotExists().
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to create predictions table: %w", err)
	}

	// Listing reads newest-first
	_, err = db.ExecContext(ctx, `CREATE INDEX IF NOT EXISTS idx_predictions_created_at ON predictions(created_at)`)
	if err != nil {
		return fmt.Errorf("failed to create index on created_at: %w", err)
	}

	fmt.Println(" OK")
	return nil
}

// down_20260831000001 drops the predictions table
func down_20260831000001(ctx context.Context, db *bun.DB) error {
	fmt.Print(" [down] dropping predictions table...")

	_, err := db.NewDropTable().
		Model((*models.Prediction)(nil)).
		IfExists().
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to drop predictions table: %w", err)
	}

	fmt.Println(" OK")
	return nil
}
