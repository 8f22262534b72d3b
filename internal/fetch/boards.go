package fetch

import (
	"net/url"
	"strings"
)

// Board is a known applicant-tracking job board with its own page layout.
type Board struct {
	Name    string
	hosts   []string
	content []string
	noise   []string
}

// GenericBoard is used for hosts that match no known board.
var GenericBoard = Board{Name: "generic"}

var boards = []Board{
	{
		Name:    "greenhouse",
		hosts:   []string{"greenhouse.io"},
		content: []string{".job__description.body", ".job__description", ".job-description__content", "#content", ".job-post-container"},
		noise:   []string{".application--wrapper", ".voluntary-self-id", "#usa_self_id_section", ".post-apply"},
	},
	{
		Name:    "lever",
		hosts:   []string{"lever.co"},
		content: []string{".posting-page", ".section-wrapper.page-full-width", ".posting-description", ".content"},
		noise:   []string{".apply-section", ".lever-application-form", ".posting-apply"},
	},
	{
		Name:    "workday",
		hosts:   []string{"workday.com", "myworkdayjobs.com"},
		content: []string{"[data-automation-id='jobDescription']", ".job-description"},
		noise:   []string{"[data-automation-id='applyButton']", ".application-section"},
	},
	{
		Name:    "ashby",
		hosts:   []string{"ashbyhq.com"},
		content: []string{"._descriptionText", "[class*='description']", "main"},
	},
	{
		Name:    "linkedin",
		hosts:   []string{"linkedin.com"},
		content: []string{".show-more-less-html__markup", ".description__text", ".jobs-description"},
		noise:   []string{".sign-up-modal", ".contextual-sign-in-modal"},
	},
}

// Noise shared by every board: application forms, EEO blurbs, share widgets.
var commonNoise = []string{
	"form",
	"#application-form",
	".application-form",
	".apply-button-container",
	".voluntary-disclosure",
	".eeo-statement",
	".eeo-section",
	".legal-disclosure",
	".social-share",
	".share-buttons",
	".cookie-consent",
	".gdpr-notice",
}

// DetectBoard identifies the job board hosting urlStr.
func DetectBoard(urlStr string) Board {
	parsed, err := url.Parse(urlStr)
	if err != nil {
		return GenericBoard
	}

	host := strings.ToLower(parsed.Hostname())
	for _, b := range boards {
		for _, h := range b.hosts {
			if host == h || strings.HasSuffix(host, "."+h) {
				return b
			}
		}
	}
	return GenericBoard
}

// ContentSelectors returns the board's content selectors followed by the generic ones.
func (b Board) ContentSelectors() []string {
	out := make([]string, 0, len(b.content)+len(JobPostingSelectors()))
	out = append(out, b.content...)
	return append(out, JobPostingSelectors()...)
}

// NoiseSelectors returns elements to strip before extracting text.
func (b Board) NoiseSelectors() []string {
	out := make([]string, 0, len(commonNoise)+len(b.noise))
	out = append(out, commonNoise...)
	return append(out, b.noise...)
}
