package ranking

import (
	"math"
	"strings"
)

// CosineSimilarity returns the cosine of the angle between a and b clamped
// to [0,1]. Empty vectors, mismatched dimensions and zero norms give 0.
func CosineSimilarity(a, b []float32) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		x, y := float64(a[i]), float64(b[i])
		dot += x * y
		normA += x * x
		normB += y * y
	}
	if normA == 0 || normB == 0 {
		return 0
	}

	sim := dot / (math.Sqrt(normA) * math.Sqrt(normB))
	return clamp01(sim)
}

// SkillMatch returns the fraction of distinct job skills the candidate has,
// compared case-insensitively, and the matched job skills in job order.
func SkillMatch(jobSkills, candidateSkills []string) (float64, []string) {
	have := make(map[string]bool, len(candidateSkills))
	for _, s := range candidateSkills {
		if key := skillKey(s); key != "" {
			have[key] = true
		}
	}

	seen := make(map[string]bool, len(jobSkills))
	matched := make([]string, 0)
	for _, s := range jobSkills {
		key := skillKey(s)
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		if have[key] {
			matched = append(matched, strings.TrimSpace(s))
		}
	}

	if len(seen) == 0 {
		return 0, matched
	}
	return float64(len(matched)) / float64(len(seen)), matched
}

// RoundScore rounds a score to two decimals for reporting.
func RoundScore(v float64) float64 {
	return math.Round(v*100) / 100
}

func skillKey(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func clamp01(v float64) float64 {
	switch {
	case math.IsNaN(v), v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}
