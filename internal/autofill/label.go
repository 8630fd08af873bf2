package autofill

import (
	"regexp"
	"strings"

	"github.com/applyforge/applyforge/internal/dom"
)

var nonAlphanumeric = regexp.MustCompile(`[^a-z0-9]+`)

// Normalize lowercases text, collapses every run of non-alphanumeric
// characters to a single space, and trims. Labels and aliases go through the
// same normalization so matching is purely lexical.
func Normalize(s string) string {
	return strings.TrimSpace(nonAlphanumeric.ReplaceAllString(strings.ToLower(s), " "))
}

// ResolveLabel synthesizes a normalized label for a control from, in order:
// its explicitly associated label element, a wrapping ancestor label, its
// aria-label, placeholder, name, and id. Returns "" when no source has text.
func ResolveLabel(doc dom.Document, el dom.Element) string {
	var explicit string
	if id := el.Attr("id"); id != "" {
		selector := `label[for="` + dom.EscapeIdentifier(id) + `"]`
		if label, ok := doc.First(selector); ok {
			explicit = label.Text()
		}
	}

	parts := []string{
		explicit,
		el.ClosestLabelText(),
		el.Attr("aria-label"),
		el.Attr("placeholder"),
		el.Attr("name"),
		el.Attr("id"),
	}

	return Normalize(strings.Join(parts, " "))
}
