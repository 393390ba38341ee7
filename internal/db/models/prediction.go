package models

import (
	"time"

	"github.com/uptrace/bun"
)

// Prediction is one row of the prediction ledger: the four measurements
// a classification was computed from, the resulting class label, and the
// write timestamp. Rows are append-only; nothing in the system updates
// or deletes them.
type Prediction struct {
	bun.BaseModel `bun:"table:predictions,alias:p"`

	ID             int64     `bun:"id,pk,autoincrement"`
	SepalLength    float64   `bun:"sepal_length,notnull"`
	SepalWidth     float64   `bun:"sepal_width,notnull"`
	PetalLength    float64   `bun:"petal_length,notnull"`
	PetalWidth     float64   `bun:"petal_width,notnull"`
	PredictedClass int       `bun:"predicted_class,notnull"`
	CreatedAt      time.Time `bun:"created_at,notnull,nullzero,default:current_timestamp"`
}
