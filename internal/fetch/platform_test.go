package fetch

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectPlatform(t *testing.T) {
	tests := []struct {
		url      string
		expected Platform
	}{
		{"https://job-boards.greenhouse.io/doordashusa/jobs/7063751", PlatformGreenhouse},
		{"https://boards.greenhouse.io/acme/jobs/123", PlatformGreenhouse},
		{"https://jobs.lever.co/acme/4b1c", PlatformLever},
		{"https://jobs.ashbyhq.com/acme/8d2e", PlatformAshby},
		{"https://acme.wd5.myworkdayjobs.com/en-US/External", PlatformWorkday},
		{"https://example.com/careers", PlatformUnknown},
		{"https://notgreenhouse.io.example.com/jobs", PlatformUnknown},
		{"https://linkedin.com/jobs/123", PlatformUnknown},
		{"::bad url", PlatformUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			assert.Equal(t, tt.expected, DetectPlatform(tt.url))
		})
	}
}

func TestBoardSlug(t *testing.T) {
	tests := []struct {
		url      string
		expected string
	}{
		{"https://boards.greenhouse.io/acme/jobs/123", "acme"},
		{"https://boards.greenhouse.io/embed/job_app?for=globex&token=1", "globex"},
		{"https://jobs.lever.co/initech/4b1c", "initech"},
		{"https://jobs.ashbyhq.com/hooli", "hooli"},
		{"https://acme.wd5.myworkdayjobs.com/en-US/External", ""},
		{"https://example.com/acme", ""},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			assert.Equal(t, tt.expected, BoardSlug(tt.url))
		})
	}
}

func TestPlatformContentSelectors(t *testing.T) {
	assert.Contains(t, PlatformContentSelectors(PlatformGreenhouse), ".job__description")
	assert.Contains(t, PlatformContentSelectors(PlatformLever), ".posting-page")
	assert.Equal(t, CompanyPageSelectors(), PlatformContentSelectors(PlatformUnknown))
}

func TestPlatformNoiseSelectors(t *testing.T) {
	greenhouse := PlatformNoiseSelectors(PlatformGreenhouse)
	assert.Contains(t, greenhouse, "form")
	assert.Contains(t, greenhouse, ".voluntary-self-id")

	unknown := PlatformNoiseSelectors(PlatformUnknown)
	assert.Equal(t, commonNoise, unknown)

	// The shared list must not be modified by appends.
	_ = PlatformNoiseSelectors(PlatformLever)
	assert.NotContains(t, PlatformNoiseSelectors(PlatformUnknown), ".posting-apply")
}
