package portal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/applyforge/applyforge/internal/dom"
	"github.com/applyforge/applyforge/internal/domain"
)

func mustDoc(t *testing.T, html, pageURL string) *dom.StaticDocument {
	t.Helper()
	doc, err := dom.NewStaticDocument(html, pageURL)
	require.NoError(t, err)
	return doc
}

func TestDetector_Detect(t *testing.T) {
	tests := []struct {
		name       string
		html       string
		pageURL    string
		portal     domain.Portal
		compatible bool
		reasons    []string
	}{
		{
			name:       "workday by hostname only",
			html:       "<body><p>loading…</p></body>",
			pageURL:    "https://acme.wd1.myworkdayjobs.com/en-US/careers/job/123",
			portal:     domain.PortalWorkday,
			compatible: true,
			reasons:    []string{"Hostname matches myworkdayjobs.com"},
		},
		{
			name:       "workday by automation attributes only",
			html:       `<body><div data-automation-id="jobPostingHeader">Engineer</div></body>`,
			pageURL:    "https://careers.example.com/job/123",
			portal:     domain.PortalWorkday,
			compatible: true,
			reasons:    []string{"Workday automation attributes found"},
		},
		{
			name:       "workday with both evidence kinds",
			html:       `<body><div data-uxi-element-id="x"></div></body>`,
			pageURL:    "https://acme.wd5.myworkdayjobs.com/careers",
			portal:     domain.PortalWorkday,
			compatible: true,
			reasons:    []string{"Hostname matches myworkdayjobs.com", "Workday automation attributes found"},
		},
		{
			name:       "greenhouse by hostname",
			html:       "<body></body>",
			pageURL:    "https://boards.greenhouse.io/acme/jobs/123",
			portal:     domain.PortalGreenhouse,
			compatible: true,
			reasons:    []string{"Hostname matches greenhouse.io"},
		},
		{
			name:       "greenhouse by embedded application form",
			html:       `<body><div id="application_form"></div></body>`,
			pageURL:    "https://acme.com/careers",
			portal:     domain.PortalGreenhouse,
			compatible: true,
			reasons:    []string{"Greenhouse application containers found"},
		},
		{
			name:       "lever by hostname",
			html:       "<body></body>",
			pageURL:    "https://jobs.lever.co/acme/abc-123",
			portal:     domain.PortalLever,
			compatible: true,
			reasons:    []string{"Hostname matches jobs.lever.co"},
		},
		{
			name:       "icims by form name",
			html:       `<body><form name="frm"></form></body>`,
			pageURL:    "https://acme.com/jobs",
			portal:     domain.PortalICIMS,
			compatible: true,
			reasons:    []string{"iCIMS containers found"},
		},
		{
			name:       "taleo by requisition container",
			html:       `<body><div id="requisitionDescriptionInterface"></div></body>`,
			pageURL:    "https://acme.taleo.net/careersection/2/jobdetail.ftl",
			portal:     domain.PortalTaleo,
			compatible: true,
			reasons:    []string{"Hostname matches taleo.net", "Taleo structures found"},
		},
		{
			name:       "unrecognized page",
			html:       "<body><h1>We are hiring</h1></body>",
			pageURL:    "https://acme.com/jobs",
			portal:     domain.PortalUnknown,
			compatible: false,
			reasons:    []string{"No supported ATS portal signatures found"},
		},
		{
			name:       "no url at all",
			html:       "<body></body>",
			pageURL:    "",
			portal:     domain.PortalUnknown,
			compatible: false,
			reasons:    []string{"No supported ATS portal signatures found"},
		},
	}

	detector := NewDetector(nil)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := mustDoc(t, tt.html, tt.pageURL)

			detection := detector.Detect(doc)

			assert.Equal(t, tt.portal, detection.Portal)
			assert.Equal(t, tt.compatible, detection.Compatible)
			assert.Equal(t, tt.reasons, detection.Reasons)
		})
	}
}

func TestDetector_Detect_PriorityOrder(t *testing.T) {
	// Workday markup on a greenhouse.io host: the higher-priority workday
	// signature wins even though the greenhouse one also matches.
	doc := mustDoc(t,
		`<body><div data-automation-id="x"></div><div id="application"></div></body>`,
		"https://boards.greenhouse.io/acme")

	detection := NewDetector(nil).Detect(doc)

	assert.Equal(t, domain.PortalWorkday, detection.Portal)
	assert.True(t, detection.Compatible)
}

func TestDetector_Detect_ReportsHostname(t *testing.T) {
	doc := mustDoc(t, "<body></body>", "https://Jobs.Lever.Co/acme")

	detection := NewDetector(nil).Detect(doc)

	assert.Equal(t, "jobs.lever.co", detection.Hostname)
	assert.Equal(t, domain.PortalLever, detection.Portal)
}
