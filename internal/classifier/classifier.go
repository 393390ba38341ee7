// Package classifier maps iris flower measurements to a discrete
// species label: 0 Setosa, 1 Versicolor, 2 Virginica.
package classifier

// FeatureVector is the ordered 4-tuple of measurements describing one
// iris specimen. It is a plain value type and doubles as the exact-match
// cache key, so it must stay comparable.
type FeatureVector struct {
	SepalLength float64
	SepalWidth  float64
	PetalLength float64
	PetalWidth  float64
}

// Classifier maps a feature vector to a class label in {0, 1, 2}.
// Implementations must be deterministic and side-effect free.
type Classifier interface {
	Classify(f FeatureVector) int
}

// RuleModel is a fixed-threshold stand-in classifier. It cascades on
// petal length and width only; sepal measurements are accepted as input
// but deliberately unused, since the rule path is a placeholder for a
// trained model that consumes all four features.
type RuleModel struct{}

// NewRuleModel returns the rule-based classifier.
func NewRuleModel() *RuleModel {
	return &RuleModel{}
}

// Classify applies the threshold cascade. Every threshold is a strict
// less-than: a petal length of exactly 2.5 falls into the next bracket.
func (m *RuleModel) Classify(f FeatureVector) int {
	switch {
	case f.PetalLength < 2.5:
		return 0 // Setosa
	case f.PetalLength < 5.0 && f.PetalWidth < 1.8:
		return 1 // Versicolor
	default:
		return 2 // Virginica
	}
}
