package fetch

import (
	"net/url"
	"strings"
)

// Platform is a hosted job board that internship postings commonly live on.
type Platform string

const (
	PlatformGreenhouse Platform = "greenhouse"
	PlatformLever      Platform = "lever"
	PlatformAshby      Platform = "ashby"
	PlatformWorkday    Platform = "workday"
	PlatformUnknown    Platform = "unknown"
)

type board struct {
	platform Platform
	hosts    []string
	// slugInPath means the first path segment is the company's board name,
	// as in boards.greenhouse.io/acme/jobs/1.
	slugInPath bool
	content    []string
	noise      []string
}

var boards = []board{
	{
		platform:   PlatformGreenhouse,
		hosts:      []string{"greenhouse.io"},
		slugInPath: true,
		content:    []string{".job__description.body", ".job__description", "#content", ".job-post-container"},
		noise:      []string{".application--wrapper", ".voluntary-self-id", "#usa_self_id_section", ".post-apply"},
	},
	{
		platform:   PlatformLever,
		hosts:      []string{"lever.co"},
		slugInPath: true,
		content:    []string{".posting-page", ".section-wrapper.page-full-width", ".posting-description", ".content"},
		noise:      []string{".apply-section", ".lever-application-form", ".posting-apply"},
	},
	{
		platform:   PlatformAshby,
		hosts:      []string{"ashbyhq.com"},
		slugInPath: true,
		content:    []string{"[class*='descriptionText']", "main"},
		noise:      []string{"[class*='applicationForm']"},
	},
	{
		platform: PlatformWorkday,
		hosts:    []string{"myworkdayjobs.com", "workday.com"},
		content:  []string{"[data-automation-id='jobPostingDescription']", "[data-automation-id='jobDescription']", ".job-description"},
		noise:    []string{"[data-automation-id='applyButton']", ".application-section"},
	},
}

// commonNoise is removed from every page.
var commonNoise = []string{
	"form",
	".application-form",
	".apply-button-container",
	".eeo-statement",
	".legal-disclosure",
	".social-share",
	".cookie-consent",
	".gdpr-notice",
}

func lookupBoard(p Platform) *board {
	for i := range boards {
		if boards[i].platform == p {
			return &boards[i]
		}
	}
	return nil
}

// DetectPlatform identifies the job board hosting urlStr.
func DetectPlatform(urlStr string) Platform {
	parsed, err := url.Parse(urlStr)
	if err != nil {
		return PlatformUnknown
	}
	host := strings.ToLower(parsed.Hostname())

	for _, b := range boards {
		for _, h := range b.hosts {
			if host == h || strings.HasSuffix(host, "."+h) {
				return b.platform
			}
		}
	}
	return PlatformUnknown
}

// BoardSlug returns the company's board name from a job board URL, such as
// "acme" for https://jobs.lever.co/acme/123. It is empty for other pages.
func BoardSlug(urlStr string) string {
	b := lookupBoard(DetectPlatform(urlStr))
	if b == nil || !b.slugInPath {
		return ""
	}
	parsed, err := url.Parse(urlStr)
	if err != nil {
		return ""
	}
	segment, _, _ := strings.Cut(strings.Trim(parsed.Path, "/"), "/")
	if segment == "embed" {
		return parsed.Query().Get("for")
	}
	return segment
}

// PlatformContentSelectors returns the content selectors for a platform,
// falling back to generic page selectors.
func PlatformContentSelectors(p Platform) []string {
	if b := lookupBoard(p); b != nil {
		return b.content
	}
	return CompanyPageSelectors()
}

// PlatformNoiseSelectors returns the common noise selectors plus those of
// the platform.
func PlatformNoiseSelectors(p Platform) []string {
	noise := append([]string{}, commonNoise...)
	if b := lookupBoard(p); b != nil {
		noise = append(noise, b.noise...)
	}
	return noise
}
