package dom

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/playwright-community/playwright-go"
)

// LiveDocument is a Document backed by a playwright page. Reads and writes
// run inside the page's script context so the site's own listeners observe
// every mutation.
type LiveDocument struct {
	page playwright.Page
}

// NewLiveDocument wraps a playwright page
func NewLiveDocument(page playwright.Page) *LiveDocument {
	return &LiveDocument{page: page}
}

// URL returns the current page URL
func (d *LiveDocument) URL() string {
	return d.page.URL()
}

// Hostname returns the lowercased hostname of the current page
func (d *LiveDocument) Hostname() string {
	u, err := url.Parse(d.page.URL())
	if err != nil {
		return ""
	}
	return strings.ToLower(u.Hostname())
}

// Query returns matching elements in document order
func (d *LiveDocument) Query(selector string) []Element {
	handles, err := d.page.QuerySelectorAll(selector)
	if err != nil {
		return nil
	}
	elements := make([]Element, 0, len(handles))
	for _, handle := range handles {
		elements = append(elements, &liveElement{handle: handle})
	}
	return elements
}

// First returns the first matching element
func (d *LiveDocument) First(selector string) (Element, bool) {
	handle, err := d.page.QuerySelector(selector)
	if err != nil || handle == nil {
		return nil, false
	}
	return &liveElement{handle: handle}, true
}

// BodyText returns the visible text of the document body
func (d *LiveDocument) BodyText() string {
	result, err := d.page.Evaluate(`() => document.body ? document.body.innerText : ''`)
	if err != nil {
		return ""
	}
	return asString(result)
}

type liveElement struct {
	handle playwright.ElementHandle
}

func (e *liveElement) Tag() string {
	result, err := e.handle.Evaluate(`el => el.tagName.toLowerCase()`)
	if err != nil {
		return ""
	}
	return asString(result)
}

func (e *liveElement) Attr(name string) string {
	value, err := e.handle.GetAttribute(name)
	if err != nil {
		return ""
	}
	return value
}

func (e *liveElement) HasAttr(name string) bool {
	result, err := e.handle.Evaluate(`(el, name) => el.hasAttribute(name)`, name)
	if err != nil {
		return false
	}
	return asBool(result)
}

func (e *liveElement) Text() string {
	text, err := e.handle.TextContent()
	if err != nil {
		return ""
	}
	return text
}

func (e *liveElement) ClosestLabelText() string {
	result, err := e.handle.Evaluate(`el => {
		const label = el.closest('label');
		return label ? (label.textContent || '') : '';
	}`)
	if err != nil {
		return ""
	}
	return asString(result)
}

func (e *liveElement) Options() []Option {
	result, err := e.handle.Evaluate(`el => Array.from(el.options || []).map(o => ({ value: o.value, text: o.text }))`)
	if err != nil {
		return nil
	}
	raw, ok := result.([]interface{})
	if !ok {
		return nil
	}
	options := make([]Option, 0, len(raw))
	for _, item := range raw {
		entry, ok := item.(map[string]interface{})
		if !ok {
			continue
		}
		options = append(options, Option{
			Value: asString(entry["value"]),
			Text:  asString(entry["text"]),
		})
	}
	return options
}

func (e *liveElement) SetValue(value string) error {
	_, err := e.handle.Evaluate(`(el, value) => { el.value = value; }`, value)
	if err != nil {
		return fmt.Errorf("setting value: %w", err)
	}
	return nil
}

func (e *liveElement) SetChecked() error {
	_, err := e.handle.Evaluate(`el => { el.checked = true; }`)
	if err != nil {
		return fmt.Errorf("checking control: %w", err)
	}
	return nil
}

func (e *liveElement) SelectOption(value string) error {
	result, err := e.handle.Evaluate(`(el, value) => { el.value = value; return el.value === value; }`, value)
	if err != nil {
		return fmt.Errorf("selecting option: %w", err)
	}
	if !asBool(result) {
		return fmt.Errorf("no option with value %q", value)
	}
	return nil
}

func (e *liveElement) Dispatch(event string) error {
	_, err := e.handle.Evaluate(`(el, type) => el.dispatchEvent(new Event(type, { bubbles: true }))`, event)
	if err != nil {
		return fmt.Errorf("dispatching %s: %w", event, err)
	}
	return nil
}

// PageClipboard writes through navigator.clipboard in the page context
type PageClipboard struct {
	page playwright.Page
}

// NewPageClipboard creates a clipboard backed by the page's navigator
func NewPageClipboard(page playwright.Page) *PageClipboard {
	return &PageClipboard{page: page}
}

// WriteText copies text to the clipboard of the hosting browser
func (c *PageClipboard) WriteText(ctx context.Context, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := c.page.Evaluate(`text => navigator.clipboard.writeText(text)`, text)
	if err != nil {
		return fmt.Errorf("clipboard write: %w", err)
	}
	return nil
}

func asString(value interface{}) string {
	s, _ := value.(string)
	return s
}

func asBool(value interface{}) bool {
	b, _ := value.(bool)
	return b
}
