// Package portal classifies which applicant-tracking-system product hosts
// the current page and lifts job-posting content out of it.
package portal

import (
	"strings"

	"go.uber.org/zap"

	"github.com/applyforge/applyforge/internal/dom"
	"github.com/applyforge/applyforge/internal/domain"
)

// Signature describes how one ATS product is recognized: a hostname
// substring and a set of markup selectors, each contributing a human-readable
// evidence string.
type Signature struct {
	Portal         domain.Portal
	HostContains   string
	HostReason     string
	Selectors      []string
	SelectorReason string
}

// signatures is evaluated in priority order; the first signature producing at
// least one reason wins.
var signatures = []Signature{
	{
		Portal:         domain.PortalWorkday,
		HostContains:   "myworkdayjobs.com",
		HostReason:     "Hostname matches myworkdayjobs.com",
		Selectors:      []string{"[data-automation-id]", "[data-uxi-element-id]"},
		SelectorReason: "Workday automation attributes found",
	},
	{
		Portal:         domain.PortalGreenhouse,
		HostContains:   "greenhouse.io",
		HostReason:     "Hostname matches greenhouse.io",
		Selectors:      []string{"#application", "#application_form", ".application__content"},
		SelectorReason: "Greenhouse application containers found",
	},
	{
		Portal:         domain.PortalLever,
		HostContains:   "jobs.lever.co",
		HostReason:     "Hostname matches jobs.lever.co",
		Selectors:      []string{".application-page", "#lever-jobs-container", `form[data-qa="application-form"]`},
		SelectorReason: "Lever application elements found",
	},
	{
		Portal:         domain.PortalICIMS,
		HostContains:   "icims.com",
		HostReason:     "Hostname matches icims.com",
		Selectors:      []string{"#icims_content", ".iCIMS_JobPage", `form[name="frm"]`},
		SelectorReason: "iCIMS containers found",
	},
	{
		Portal:         domain.PortalTaleo,
		HostContains:   "taleo.net",
		HostReason:     "Hostname matches taleo.net",
		Selectors:      []string{"#requisitionDescriptionInterface", "#careerSection", `form[name="oracle"]`},
		SelectorReason: "Taleo structures found",
	},
}

// Detector classifies documents against the signature table
type Detector struct {
	logger *zap.Logger
}

// NewDetector creates a portal detector
func NewDetector(logger *zap.Logger) *Detector {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Detector{logger: logger}
}

// Detect classifies the document. It reads the current DOM state on every
// call, performs no writes, and never fails: a page with no recognizable
// signature reports the unknown portal as incompatible.
func (d *Detector) Detect(doc dom.Document) domain.PortalDetection {
	hostname := strings.ToLower(doc.Hostname())

	for _, sig := range signatures {
		var reasons []string
		if sig.HostContains != "" && strings.Contains(hostname, sig.HostContains) {
			reasons = append(reasons, sig.HostReason)
		}
		if hasAnySelector(doc, sig.Selectors) {
			reasons = append(reasons, sig.SelectorReason)
		}
		if len(reasons) > 0 {
			d.logger.Debug("portal detected",
				zap.String("portal", string(sig.Portal)),
				zap.String("hostname", hostname),
				zap.Strings("reasons", reasons))
			return domain.PortalDetection{
				Portal:     sig.Portal,
				Compatible: true,
				Reasons:    reasons,
				Hostname:   hostname,
			}
		}
	}

	return domain.PortalDetection{
		Portal:     domain.PortalUnknown,
		Compatible: false,
		Reasons:    []string{"No supported ATS portal signatures found"},
		Hostname:   hostname,
	}
}

func hasAnySelector(doc dom.Document, selectors []string) bool {
	for _, selector := range selectors {
		if _, ok := doc.First(selector); ok {
			return true
		}
	}
	return false
}
