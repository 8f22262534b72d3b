// Package ingestion turns uploaded documents and pasted text into clean plain text.
package ingestion

import (
	"regexp"
	"strings"
)

var (
	excessBlankLines = regexp.MustCompile(`\n{3,}`)
	innerWhitespace  = regexp.MustCompile(`[ \t\f\v\x{00A0}\x{2007}\x{202F}]+`)
	bulletGlyphs     = []string{"\u2022", "\u25cf", "\u25aa", "\u00b7", "\uf0b7"}
)

// CleanText normalizes extracted document text while keeping its line
// structure: line endings become LF, runs of spaces collapse, bullet glyphs
// become "-", control characters are dropped and at most one blank line
// separates paragraphs.
func CleanText(content string) string {
	if content == "" {
		return ""
	}

	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")
	content = stripControl(content)

	lines := strings.Split(content, "\n")
	for i, line := range lines {
		lines[i] = cleanLine(line)
	}

	result := excessBlankLines.ReplaceAllString(strings.Join(lines, "\n"), "\n\n")
	return strings.TrimSpace(result)
}

func cleanLine(line string) string {
	trimmed := strings.TrimSpace(innerWhitespace.ReplaceAllString(line, " "))
	if trimmed == "" {
		return ""
	}

	// headings and bullets keep their marker, indentation is dropped
	if strings.HasPrefix(trimmed, "#") {
		return trimmed
	}
	for _, g := range bulletGlyphs {
		if rest, ok := strings.CutPrefix(trimmed, g); ok {
			return "- " + strings.TrimSpace(rest)
		}
	}
	return trimmed
}

func stripControl(s string) string {
	return strings.Map(func(r rune) rune {
		if r == '\n' || r == '\t' {
			return r
		}
		if r < 0x20 || r == 0x7f || r == '\ufeff' {
			return -1
		}
		return r
	}, s)
}
