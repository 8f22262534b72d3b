package ranking

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCosineSimilarity(t *testing.T) {
	tests := []struct {
		name string
		a, b []float32
		want float64
	}{
		{"identical", []float32{1, 2, 3}, []float32{1, 2, 3}, 1},
		{"scaled", []float32{1, 2, 3}, []float32{2, 4, 6}, 1},
		{"orthogonal", []float32{1, 0}, []float32{0, 1}, 0},
		{"opposite clamps to zero", []float32{1, 0}, []float32{-1, 0}, 0},
		{"zero norm", []float32{0, 0}, []float32{1, 1}, 0},
		{"empty", nil, nil, 0},
		{"dimension mismatch", []float32{1, 2}, []float32{1, 2, 3}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, CosineSimilarity(tt.a, tt.b), 1e-9)
		})
	}
}

func TestCosineSimilarity_Range(t *testing.T) {
	vectors := [][]float32{
		{0.3, -0.2, 0.9},
		{-1, -1, -1},
		{5, 0.001, 2},
		{1e-20, 1e-20, 1e-20},
		{float32(math.MaxFloat32) / 4, 1, 1},
	}
	for _, a := range vectors {
		for _, b := range vectors {
			sim := CosineSimilarity(a, b)
			assert.GreaterOrEqual(t, sim, 0.0)
			assert.LessOrEqual(t, sim, 1.0)
		}
	}
}

func TestSkillMatch(t *testing.T) {
	tests := []struct {
		name      string
		job       []string
		candidate []string
		want      float64
		matched   []string
	}{
		{"half", []string{"Python", "SQL"}, []string{"python", "java"}, 0.5, []string{"Python"}},
		{"case insensitive", []string{"AWS"}, []string{"aws"}, 1, []string{"AWS"}},
		{"empty candidate", []string{"Go"}, nil, 0, []string{}},
		{"empty job", nil, []string{"Go"}, 0, []string{}},
		{"duplicates count once", []string{"Go", "go", " GO "}, []string{"go"}, 1, []string{"Go"}},
		{"blank entries ignored", []string{"", "Go", "Rust"}, []string{"  ", "rust"}, 0.5, []string{"Rust"}},
		{"order follows job", []string{"SQL", "Python", "AWS"}, []string{"aws", "sql"}, 2.0 / 3.0, []string{"SQL", "AWS"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, matched := SkillMatch(tt.job, tt.candidate)
			assert.InDelta(t, tt.want, got, 1e-9)
			assert.Equal(t, tt.matched, matched)
		})
	}
}

func TestRoundScore(t *testing.T) {
	assert.Equal(t, 78.0, RoundScore(78.00000000000001))
	assert.Equal(t, 82.46, RoundScore(82.456))
	assert.Equal(t, 0.0, RoundScore(0))
}

func TestWeights_Normalize(t *testing.T) {
	tests := []struct {
		name string
		in   Weights
		want Weights
	}{
		{"defaults unchanged", DefaultWeights(), DefaultWeights()},
		{"rescaled", Weights{2, 2, 1}, Weights{0.4, 0.4, 0.2}},
		{"all zero", Weights{}, DefaultWeights()},
		{"negative", Weights{-1, 1, 1}, DefaultWeights()},
		{"single component", Weights{0, 3, 0}, Weights{0, 1, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.in.Normalize()
			assert.InDelta(t, tt.want.Embedding, got.Embedding, 1e-9)
			assert.InDelta(t, tt.want.Skills, got.Skills, 1e-9)
			assert.InDelta(t, tt.want.Experience, got.Experience, 1e-9)
		})
	}
}
