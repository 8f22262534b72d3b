package parsing

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/jonathan/job-screening/internal/types"
)

const (
	maxNameRunes  = 50
	maxTitleRunes = 100
	// only the top of a document is searched for a name or title
	leadLines = 3
	// phones have more than this many characters once separators are stripped
	minPhoneLen = 8
)

type section int

const (
	sectionNone section = iota
	sectionSkills
	sectionExperience
	sectionEducation
	sectionRequirements
	sectionResponsibilities
)

type sectionKeyword struct {
	word    string
	section section
}

// Order matters: the first keyword found in a line wins.
var (
	resumeKeywords = []sectionKeyword{
		{"skills", sectionSkills},
		{"experience", sectionExperience},
		{"education", sectionEducation},
	}
	jobKeywords = []sectionKeyword{
		{"requirements", sectionRequirements},
		{"qualifications", sectionRequirements},
		{"responsibilities", sectionResponsibilities},
		{"duties", sectionResponsibilities},
		{"skills", sectionSkills},
		{"experience", sectionExperience},
		{"education", sectionEducation},
	}
)

// HeuristicJob builds a job record from raw text by section keywords.
// The result always has non-nil sequences and Description set to text.
func HeuristicJob(text string) *types.Job {
	job := types.NewEmptyJob()
	job.Description = strings.TrimSpace(text)

	lines := splitLines(text)
	job.Title = firstShortLine(lines, maxTitleRunes)

	sections := collectSections(lines, jobKeywords)
	job.RequiredSkills = append(job.RequiredSkills, sections[sectionRequirements]...)
	job.RequiredSkills = append(job.RequiredSkills, sections[sectionSkills]...)
	job.Experience = strings.Join(sections[sectionExperience], " ")
	job.Education = strings.Join(sections[sectionEducation], " ")
	job.Responsibilities = append(job.Responsibilities, sections[sectionResponsibilities]...)
	return job
}

// HeuristicCandidate builds a candidate record from raw résumé text.
func HeuristicCandidate(text string) *types.Candidate {
	c := types.NewEmptyCandidate()

	lines := splitLines(text)
	c.Name = firstShortLine(lines, maxNameRunes)
	c.Email = findEmail(text)
	c.Phone = findPhone(text)

	sections := collectSections(lines, resumeKeywords)
	c.Skills = append(c.Skills, sections[sectionSkills]...)
	for _, line := range sections[sectionExperience] {
		c.Experience = append(c.Experience, types.Experience{Description: line})
	}
	for _, line := range sections[sectionEducation] {
		c.Education = append(c.Education, types.Education{Degree: line})
	}
	return c
}

func splitLines(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	return strings.Split(text, "\n")
}

// firstShortLine returns the first of the leading non-empty lines shorter than limit runes.
func firstShortLine(lines []string, limit int) string {
	seen := 0
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		seen++
		if seen > leadLines {
			break
		}
		if utf8.RuneCountInString(line) < limit {
			return strings.TrimLeft(line, "# ")
		}
	}
	return ""
}

func findEmail(text string) string {
	for _, tok := range strings.Fields(text) {
		if !strings.Contains(tok, "@") {
			continue
		}
		tok = strings.Trim(tok, `<>()[]{},;:"'`)
		tok = strings.TrimPrefix(tok, "mailto:")
		if strings.Count(tok, "@") == 1 && !strings.HasPrefix(tok, "@") && !strings.HasSuffix(tok, "@") {
			return tok
		}
	}
	return ""
}

func findPhone(text string) string {
	for _, tok := range strings.Fields(text) {
		tok = strings.TrimRight(tok, ",;")
		if strings.Contains(tok, "@") {
			continue
		}
		stripped := strings.Map(func(r rune) rune {
			if strings.ContainsRune("+()-.", r) {
				return -1
			}
			return r
		}, tok)
		if len(stripped) <= minPhoneLen {
			continue
		}
		digits := 0
		for _, r := range stripped {
			if unicode.IsDigit(r) {
				digits++
			}
		}
		if digits*2 >= len(stripped) {
			return tok
		}
	}
	return ""
}

// collectSections runs the section state machine over lines. A line that
// names a section switches to it; pure header lines are not collected.
func collectSections(lines []string, keywords []sectionKeyword) map[section][]string {
	out := make(map[section][]string)
	current := sectionNone

	for _, raw := range lines {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}

		if s, ok := matchSection(line, keywords); ok {
			current = s
			if isHeader(line, keywords) {
				continue
			}
		}
		if current == sectionNone {
			continue
		}

		if item := stripBullet(line); item != "" {
			out[current] = append(out[current], item)
		}
	}
	return out
}

func matchSection(line string, keywords []sectionKeyword) (section, bool) {
	lower := strings.ToLower(line)
	for _, kw := range keywords {
		if strings.Contains(lower, kw.word) {
			return kw.section, true
		}
	}
	return sectionNone, false
}

// headingQualifiers are words that may sit next to a section keyword in a
// heading ("Technical Skills", "Work Experience").
var headingQualifiers = map[string]bool{
	"technical": true, "required": true, "preferred": true, "desired": true,
	"work": true, "professional": true, "relevant": true, "key": true,
	"core": true, "job": true, "and": true, "tools": true, "history": true,
	"background": true, "summary": true, "additional": true, "minimum": true,
}

// isHeader reports whether a keyword line is only a heading: it ends in a
// colon, or it holds nothing but section keywords and qualifiers once
// markup and parentheticals are dropped ("## Skills", "Work Experience (2019-2024)").
func isHeader(line string, keywords []sectionKeyword) bool {
	if strings.HasSuffix(line, ":") {
		return true
	}
	words := strings.FieldsFunc(strings.ToLower(dropParenthetical(line)), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	hasKeyword := false
	for _, w := range words {
		switch {
		case isKeyword(w, keywords):
			hasKeyword = true
		case headingQualifiers[w]:
		default:
			return false
		}
	}
	return hasKeyword
}

func isKeyword(word string, keywords []sectionKeyword) bool {
	for _, kw := range keywords {
		if word == kw.word {
			return true
		}
	}
	return false
}

// dropParenthetical removes (...) and [...] spans.
func dropParenthetical(line string) string {
	var sb strings.Builder
	depth := 0
	for _, r := range line {
		switch r {
		case '(', '[':
			depth++
		case ')', ']':
			if depth > 0 {
				depth--
			}
		default:
			if depth == 0 {
				sb.WriteRune(r)
			}
		}
	}
	return sb.String()
}

func stripBullet(line string) string {
	for _, marker := range []string{"-", "*", "•"} {
		if rest, ok := strings.CutPrefix(line, marker); ok {
			return strings.TrimSpace(rest)
		}
	}
	return line
}
