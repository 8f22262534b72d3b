package ranking

// Default component weights.
const (
	DefaultEmbeddingWeight  = 0.4
	DefaultSkillsWeight     = 0.4
	DefaultExperienceWeight = 0.2
)

// Weights sets how much each component contributes to the overall score.
type Weights struct {
	Embedding  float64
	Skills     float64
	Experience float64
}

// DefaultWeights returns 0.4/0.4/0.2.
func DefaultWeights() Weights {
	return Weights{
		Embedding:  DefaultEmbeddingWeight,
		Skills:     DefaultSkillsWeight,
		Experience: DefaultExperienceWeight,
	}
}

// Normalize rescales the weights to sum to 1. A negative weight or a zero
// sum yields the defaults.
func (w Weights) Normalize() Weights {
	if w.Embedding < 0 || w.Skills < 0 || w.Experience < 0 {
		return DefaultWeights()
	}
	sum := w.Embedding + w.Skills + w.Experience
	if sum <= 0 {
		return DefaultWeights()
	}
	return Weights{
		Embedding:  w.Embedding / sum,
		Skills:     w.Skills / sum,
		Experience: w.Experience / sum,
	}
}
