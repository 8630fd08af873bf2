// Package dom wraps the ambient browser globals (document, CSS escaping,
// clipboard) behind a capability interface so the matching and scoring logic
// runs unchanged against a live browser page or a parsed HTML snapshot.
package dom

import (
	"context"
	"strings"
)

// Document is a read-and-write view over one page
type Document interface {
	// URL returns the full page URL, "" when unknown
	URL() string

	// Hostname returns the lowercased hostname of the page
	Hostname() string

	// Query returns every element matching the CSS selector, in document order
	Query(selector string) []Element

	// First returns the first element matching the CSS selector
	First(selector string) (Element, bool)

	// BodyText returns the visible text of the document body
	BodyText() string
}

// Element is one form control or other node of a Document
type Element interface {
	// Tag returns the lowercased tag name
	Tag() string

	// Attr returns the attribute value, "" when absent
	Attr(name string) string

	// HasAttr reports whether the attribute is present, regardless of value
	HasAttr(name string) bool

	// Text returns the text content of the element
	Text() string

	// ClosestLabelText returns the text of the nearest ancestor label, "" when none
	ClosestLabelText() string

	// Options returns the options of a select element
	Options() []Option

	// SetValue writes a value into a text-like control
	SetValue(value string) error

	// SetChecked marks a radio or checkbox control as checked
	SetChecked() error

	// SelectOption selects the option with the given value
	SelectOption(value string) error

	// Dispatch fires a bubbling DOM event of the given type on the element
	Dispatch(event string) error
}

// Option is one choice of a select control
type Option struct {
	Value string
	Text  string
}

// Clipboard writes text to the system clipboard. Failures are reported but
// callers treat the write as best-effort.
type Clipboard interface {
	WriteText(ctx context.Context, text string) error
}

var identifierEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`, `'`, `\'`)

// EscapeIdentifier makes a raw id or name attribute safe for interpolation
// into a quoted CSS attribute selector. Without a CSS.escape equivalent the
// fallback is literal backslash-escaping of quote and backslash characters.
func EscapeIdentifier(value string) string {
	return identifierEscaper.Replace(value)
}
