package classifier

import (
	"encoding/json"
	"fmt"
	"os"

	"gonum.org/v1/gonum/mat"
)

// featureCount is the dimensionality of a FeatureVector.
const featureCount = 4

// modelArtifact is the on-disk JSON layout of a trained linear model:
// one weight row and one intercept per class. The artifact is produced
// externally; this package only loads and evaluates it.
type modelArtifact struct {
	Weights    [][]float64 `json:"weights"`
	Intercepts []float64   `json:"intercepts"`
}

// LinearModel classifies by scoring the feature vector against
// per-class weight rows and taking the argmax. It is immutable after
// loading and safe for concurrent use.
type LinearModel struct {
	weights    *mat.Dense    // classes x featureCount
	intercepts *mat.VecDense // classes
	classes    int
}

// LoadLinearModel reads and validates a model artifact. Callers are
// expected to treat an error as fatal at startup; serving with a
// half-loaded model is worse than not serving.
func LoadLinearModel(path string) (*LinearModel, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read model artifact: %w", err)
	}

	var artifact modelArtifact
	if err := json.Unmarshal(raw, &artifact); err != nil {
		return nil, fmt.Errorf("parse model artifact %s: %w", path, err)
	}

	classes := len(artifact.Weights)
	if classes == 0 {
		return nil, fmt.Errorf("model artifact %s: no weight rows", path)
	}
	if len(artifact.Intercepts) != classes {
		return nil, fmt.Errorf("model artifact %s: %d weight rows but %d intercepts",
			path, classes, len(artifact.Intercepts))
	}

	flat := make([]float64, 0, classes*featureCount)
	for i, row := range artifact.Weights {
		if len(row) != featureCount {
			return nil, fmt.Errorf("model artifact %s: weight row %d has %d values, want %d",
				path, i, len(row), featureCount)
		}
		flat = append(flat, row...)
	}

	return &LinearModel{
		weights:    mat.NewDense(classes, featureCount, flat),
		intercepts: mat.NewVecDense(classes, artifact.Intercepts),
		classes:    classes,
	}, nil
}

// Classes returns the number of class labels the model scores.
func (m *LinearModel) Classes() int {
	return m.classes
}

// Classify scores W*x + b and returns the index of the highest score.
func (m *LinearModel) Classify(f FeatureVector) int {
	x := mat.NewVecDense(featureCount, []float64{
		f.SepalLength,
		f.SepalWidth,
		f.PetalLength,
		f.PetalWidth,
	})

	var scores mat.VecDense
	scores.MulVec(m.weights, x)
	scores.AddVec(&scores, m.intercepts)

	best := 0
	for i := 1; i < m.classes; i++ {
		if scores.AtVec(i) > scores.AtVec(best) {
			best = i
		}
	}
	return best
}
