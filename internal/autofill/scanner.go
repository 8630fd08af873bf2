package autofill

import (
	"strings"

	"github.com/applyforge/applyforge/internal/dom"
)

// controlSelector enumerates every control kind the engine considers
const controlSelector = "input, textarea, select"

// excludedInputTypes are never autofilled. This is a safety invariant, not a
// heuristic: these controls are filtered before any matching happens.
var excludedInputTypes = map[string]bool{
	"password": true,
	"hidden":   true,
	"submit":   true,
	"button":   true,
	"file":     true,
}

// Eligible reports whether a control may be considered for autofill
func Eligible(el dom.Element) bool {
	switch el.Tag() {
	case "input":
		if excludedInputTypes[strings.ToLower(el.Attr("type"))] {
			return false
		}
	case "textarea", "select":
	default:
		return false
	}
	return !el.HasAttr("disabled") && !el.HasAttr("readonly")
}

// Scan returns every eligible form control in document order
func (e *Engine) Scan(doc dom.Document) []dom.Element {
	var controls []dom.Element
	for _, el := range doc.Query(controlSelector) {
		if Eligible(el) {
			controls = append(controls, el)
		}
	}
	return controls
}
