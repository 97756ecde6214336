package fetch

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
)

// MaxDescriptionLength bounds the imported description, in characters.
const MaxDescriptionLength = 6000

// CompanyInfo is what a company website or job posting says about an
// employer. JobRole is only filled for job board postings.
type CompanyInfo struct {
	URL         string
	Platform    Platform
	Name        string
	JobRole     string
	Description string
}

// Company fetches urlStr and extracts a company name and description from it.
func Company(ctx context.Context, urlStr string, opts *Options) (*CompanyInfo, error) {
	result, err := URL(ctx, urlStr, opts)
	if err != nil {
		return nil, err
	}
	return ParseCompanyPage(urlStr, result.HTML)
}

// ParseCompanyPage extracts company information from the HTML of urlStr.
func ParseCompanyPage(urlStr, html string) (*CompanyInfo, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	platform := DetectPlatform(urlStr)
	info := &CompanyInfo{
		URL:      urlStr,
		Platform: platform,
		Name:     companyName(doc, urlStr),
	}
	if platform != PlatformUnknown {
		info.JobRole = strings.Join(strings.Fields(doc.Find("h1").First().Text()), " ")
	}

	text := mainText(doc, PlatformContentSelectors(platform), PlatformNoiseSelectors(platform))
	if text == "" {
		return nil, &Error{URL: urlStr, Message: "page has no readable text"}
	}
	info.Description = truncate(text, MaxDescriptionLength)
	return info, nil
}

// companyName prefers the page's og:site_name, then the job board slug, then
// the first segment of the title, then the host name.
func companyName(doc *goquery.Document, urlStr string) string {
	if name, ok := doc.Find("meta[property='og:site_name']").Attr("content"); ok && strings.TrimSpace(name) != "" {
		return strings.TrimSpace(name)
	}
	if slug := BoardSlug(urlStr); slug != "" {
		return titleCase(strings.NewReplacer("-", " ", "_", " ").Replace(slug))
	}
	if title := strings.TrimSpace(doc.Find("title").First().Text()); title != "" {
		for _, sep := range []string{" | ", " - ", " – ", " — ", ": "} {
			title, _, _ = strings.Cut(title, sep)
		}
		if title = strings.TrimSpace(title); title != "" {
			return title
		}
	}
	if parsed, err := url.Parse(urlStr); err == nil {
		host := strings.TrimPrefix(parsed.Hostname(), "www.")
		name, _, _ := strings.Cut(host, ".")
		return titleCase(name)
	}
	return ""
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		r, size := utf8.DecodeRuneInString(w)
		words[i] = strings.ToUpper(string(r)) + w[size:]
	}
	return strings.Join(words, " ")
}

// truncate cuts text to at most limit characters, preferring the last line
// break before the limit.
func truncate(text string, limit int) string {
	if utf8.RuneCountInString(text) <= limit {
		return text
	}
	runes := []rune(text)
	cut := string(runes[:limit])
	if i := strings.LastIndex(cut, "\n"); i > len(cut)/2 {
		cut = cut[:i]
	}
	return strings.TrimSpace(cut)
}
