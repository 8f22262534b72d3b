package parsing

import "strings"

// skillAliases maps lowercase spellings to a canonical skill name.
var skillAliases = map[string]string{
	"golang":              "Go",
	"go lang":             "Go",
	"javascript":          "JavaScript",
	"js":                  "JavaScript",
	"typescript":          "TypeScript",
	"ts":                  "TypeScript",
	"k8s":                 "Kubernetes",
	"kubernetes":          "Kubernetes",
	"react.js":            "React",
	"reactjs":             "React",
	"vue.js":              "Vue",
	"vuejs":               "Vue",
	"node.js":             "Node.js",
	"nodejs":              "Node.js",
	"postgres":            "PostgreSQL",
	"postgresql":          "PostgreSQL",
	"amazon web services": "AWS",
	"gcp":                 "GCP",
	"google cloud":        "GCP",
	"ml":                  "Machine Learning",
}

// CanonicalSkill trims a skill name and maps known aliases to one spelling.
// Unknown skills keep their original case.
func CanonicalSkill(skill string) string {
	s := strings.Join(strings.Fields(skill), " ")
	s = strings.TrimRight(s, ".,;")
	if canonical, ok := skillAliases[strings.ToLower(s)]; ok {
		return canonical
	}
	return s
}

// NormalizeSkills canonicalizes skills, drops empty entries and removes
// case-insensitive duplicates, keeping first-seen order.
func NormalizeSkills(skills []string) []string {
	out := make([]string, 0, len(skills))
	seen := make(map[string]bool, len(skills))
	for _, skill := range skills {
		s := CanonicalSkill(skill)
		key := strings.ToLower(s)
		if s == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, s)
	}
	return out
}

// trimAll trims entries and drops empty ones.
func trimAll(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s := strings.TrimSpace(item); s != "" {
			out = append(out, s)
		}
	}
	return out
}
