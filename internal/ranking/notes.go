package ranking

import (
	"fmt"
	"strings"

	"github.com/jonathan/job-screening/internal/types"
)

// Notes summarizes match details in one line for reports.
func Notes(d types.MatchDetails) string {
	var parts []string

	skills := strings.Join(d.MatchingSkills, ", ")
	switch {
	case len(d.MatchingSkills) == 0:
		parts = append(parts, "No skill matches")
	case d.SkillMatch >= 70:
		parts = append(parts, fmt.Sprintf("Strong skill match (%s)", skills))
	case d.SkillMatch >= 40:
		parts = append(parts, fmt.Sprintf("Moderate skill match (%s)", skills))
	default:
		parts = append(parts, fmt.Sprintf("Weak skill match (%s)", skills))
	}

	switch {
	case d.ExperienceMatch >= 80:
		parts = append(parts, "Highly relevant experience")
	case d.ExperienceMatch > 50:
		parts = append(parts, "Relevant experience")
	default:
		parts = append(parts, "Little relevant experience")
	}

	if n := len(d.MatchingExperience); n > 0 {
		parts = append(parts, fmt.Sprintf("%d matching role(s)", n))
	}

	return strings.Join(parts, ". ")
}
