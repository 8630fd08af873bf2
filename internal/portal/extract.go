package portal

import (
	"strings"

	"github.com/applyforge/applyforge/internal/dom"
	"github.com/applyforge/applyforge/internal/domain"
)

const (
	// minDescriptionLength rejects selector hits that are too short to be a
	// real posting body.
	minDescriptionLength = 120

	// maxDescriptionLength caps the generic body-text fallback.
	maxDescriptionLength = 12000

	// trackingSource marks every tracking payload as extension-originated.
	trackingSource = "extension"
)

// descriptionSelectors lists, per portal, where the posting body usually lives
var descriptionSelectors = map[domain.Portal][]string{
	domain.PortalWorkday: {
		`[data-automation-id="jobPostingDescription"]`,
		`[data-automation-id="jobPostingDescription"] *`,
	},
	domain.PortalGreenhouse: {
		"#content .section-wrapper",
		"#job_description",
		"#application .content",
	},
	domain.PortalLever: {
		".posting-page .section-wrapper",
		".main .section",
		`[data-qa="job-description"]`,
	},
	domain.PortalICIMS: {
		"#jobDescriptionText",
		".iCIMS_Expandable_Text",
		"#icims_content",
	},
	domain.PortalTaleo: {
		"#requisitionDescriptionInterface",
		".contentlinepanel",
		"#careerSection",
	},
}

var titleSelectors = []string{
	"h1",
	`[data-test="job-title"]`,
	`[data-automation-id="jobPostingHeader"]`,
}

var companySelectors = []string{
	`[data-test="job-company"]`,
	".company",
	`[data-automation-id="company"]`,
}

// Extractor lifts job postings out of classified pages
type Extractor struct {
	detector *Detector
}

// NewExtractor creates a job extractor sharing the given detector
func NewExtractor(detector *Detector) *Extractor {
	return &Extractor{detector: detector}
}

// Extract classifies the document fresh and returns the posting it carries
// along with the detection that informed it. Extraction never fails;
// unrecognizable pages degrade to body text and placeholder title/company.
func (x *Extractor) Extract(doc dom.Document) (domain.ExtractedJob, domain.PortalDetection) {
	detection := x.detector.Detect(doc)

	job := domain.ExtractedJob{
		Title:       firstText(doc, titleSelectors, "Unknown role"),
		Company:     firstText(doc, companySelectors, "Unknown company"),
		Description: x.description(doc, detection.Portal),
		Portal:      detection.Portal,
	}
	return job, detection
}

// TrackingPayload derives a job-tracker record from the current page
func (x *Extractor) TrackingPayload(doc dom.Document, status domain.TrackingStatus) (domain.TrackingPayload, domain.PortalDetection) {
	job, detection := x.Extract(doc)

	payload := domain.TrackingPayload{
		Company:             job.Company,
		Role:                job.Title,
		JobURL:              doc.URL(),
		Portal:              job.Portal,
		Status:              status,
		AppliedViaExtension: status == domain.StatusApplied,
		Source:              trackingSource,
	}
	return payload, detection
}

// description tries the portal's known containers before falling back to the
// whole body, truncated.
func (x *Extractor) description(doc dom.Document, portal domain.Portal) string {
	for _, selector := range descriptionSelectors[portal] {
		el, ok := doc.First(selector)
		if !ok {
			continue
		}
		content := strings.TrimSpace(el.Text())
		if len(content) > minDescriptionLength {
			return content
		}
	}

	return truncate(doc.BodyText(), maxDescriptionLength)
}

func firstText(doc dom.Document, selectors []string, fallback string) string {
	for _, selector := range selectors {
		el, ok := doc.First(selector)
		if !ok {
			continue
		}
		if text := strings.TrimSpace(el.Text()); text != "" {
			return text
		}
	}
	return fallback
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
