package dom

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// DispatchedEvent records one DOM event fired against a static document
type DispatchedEvent struct {
	Target string
	Type   string
}

// StaticDocument is a Document backed by a parsed HTML snapshot. Mutations
// are applied to the parsed tree and dispatched events are recorded instead
// of fired, which makes the engine observable without a browser.
type StaticDocument struct {
	doc      *goquery.Document
	pageURL  string
	hostname string
	events   []DispatchedEvent
}

// NewStaticDocument parses HTML into a StaticDocument. pageURL may be "" for
// fixtures that have no meaningful location.
func NewStaticDocument(html, pageURL string) (*StaticDocument, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("parsing document: %w", err)
	}

	hostname := ""
	if pageURL != "" {
		if u, err := url.Parse(pageURL); err == nil {
			hostname = strings.ToLower(u.Hostname())
		}
	}

	return &StaticDocument{
		doc:      doc,
		pageURL:  pageURL,
		hostname: hostname,
	}, nil
}

// URL returns the page URL the snapshot was taken from
func (d *StaticDocument) URL() string {
	return d.pageURL
}

// Hostname returns the lowercased hostname of the snapshot URL
func (d *StaticDocument) Hostname() string {
	return d.hostname
}

// Query returns matching elements in document order
func (d *StaticDocument) Query(selector string) []Element {
	var elements []Element
	d.doc.Find(selector).Each(func(_ int, s *goquery.Selection) {
		elements = append(elements, &staticElement{doc: d, sel: s})
	})
	return elements
}

// First returns the first matching element
func (d *StaticDocument) First(selector string) (Element, bool) {
	s := d.doc.Find(selector).First()
	if s.Length() == 0 {
		return nil, false
	}
	return &staticElement{doc: d, sel: s}, true
}

// BodyText returns the text content of the body
func (d *StaticDocument) BodyText() string {
	return d.doc.Find("body").Text()
}

// Events returns the DOM events dispatched against this document so far
func (d *StaticDocument) Events() []DispatchedEvent {
	return d.events
}

type staticElement struct {
	doc *StaticDocument
	sel *goquery.Selection
}

func (e *staticElement) Tag() string {
	return goquery.NodeName(e.sel)
}

func (e *staticElement) Attr(name string) string {
	return e.sel.AttrOr(name, "")
}

func (e *staticElement) HasAttr(name string) bool {
	_, ok := e.sel.Attr(name)
	return ok
}

func (e *staticElement) Text() string {
	return e.sel.Text()
}

func (e *staticElement) ClosestLabelText() string {
	return e.sel.Closest("label").Text()
}

func (e *staticElement) Options() []Option {
	var options []Option
	e.sel.Find("option").Each(func(_ int, o *goquery.Selection) {
		value, ok := o.Attr("value")
		if !ok {
			// option without a value attribute takes its text as value
			value = strings.TrimSpace(o.Text())
		}
		options = append(options, Option{Value: value, Text: o.Text()})
	})
	return options
}

func (e *staticElement) SetValue(value string) error {
	if e.Tag() == "textarea" {
		e.sel.SetText(value)
		return nil
	}
	e.sel.SetAttr("value", value)
	return nil
}

func (e *staticElement) SetChecked() error {
	e.sel.SetAttr("checked", "checked")
	return nil
}

func (e *staticElement) SelectOption(value string) error {
	var found bool
	e.sel.Find("option").Each(func(_ int, o *goquery.Selection) {
		optValue, ok := o.Attr("value")
		if !ok {
			optValue = strings.TrimSpace(o.Text())
		}
		if optValue == value {
			o.SetAttr("selected", "selected")
			found = true
		} else {
			o.RemoveAttr("selected")
		}
	})
	if !found {
		return fmt.Errorf("no option with value %q", value)
	}
	e.sel.SetAttr("value", value)
	return nil
}

func (e *staticElement) Dispatch(event string) error {
	e.doc.events = append(e.doc.events, DispatchedEvent{
		Target: e.describe(),
		Type:   event,
	})
	return nil
}

// describe builds a short identity for the event log, preferring id then name
func (e *staticElement) describe() string {
	if id := e.Attr("id"); id != "" {
		return "#" + id
	}
	if name := e.Attr("name"); name != "" {
		return fmt.Sprintf("%s[name=%s]", e.Tag(), name)
	}
	return e.Tag()
}
