package dom

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStaticDocument_Hostname(t *testing.T) {
	tests := []struct {
		name     string
		pageURL  string
		expected string
	}{
		{"plain host", "https://jobs.lever.co/acme/123", "jobs.lever.co"},
		{"uppercase host lowered", "https://ACME.WD1.MyWorkdayJobs.com/careers", "acme.wd1.myworkdayjobs.com"},
		{"host with port", "http://localhost:8080/p", "localhost"},
		{"empty url", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := NewStaticDocument("<body></body>", tt.pageURL)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, doc.Hostname())
			assert.Equal(t, tt.pageURL, doc.URL())
		})
	}
}

func TestStaticDocument_QueryOrderAndFirst(t *testing.T) {
	html := `<body>
		<input id="one" type="text">
		<textarea id="two"></textarea>
		<select id="three"></select>
	</body>`
	doc, err := NewStaticDocument(html, "")
	require.NoError(t, err)

	elements := doc.Query("input, textarea, select")
	require.Len(t, elements, 3)
	assert.Equal(t, "one", elements[0].Attr("id"))
	assert.Equal(t, "two", elements[1].Attr("id"))
	assert.Equal(t, "three", elements[2].Attr("id"))

	first, ok := doc.First("textarea")
	require.True(t, ok)
	assert.Equal(t, "two", first.Attr("id"))

	_, ok = doc.First(".does-not-exist")
	assert.False(t, ok)
}

func TestStaticElement_Attributes(t *testing.T) {
	html := `<body><input id="a" type="text" disabled aria-label="Given name"></body>`
	doc, err := NewStaticDocument(html, "")
	require.NoError(t, err)

	el, ok := doc.First("#a")
	require.True(t, ok)

	assert.Equal(t, "input", el.Tag())
	assert.Equal(t, "Given name", el.Attr("aria-label"))
	assert.Equal(t, "", el.Attr("missing"))
	assert.True(t, el.HasAttr("disabled"))
	assert.False(t, el.HasAttr("readonly"))
}

func TestStaticElement_ClosestLabelText(t *testing.T) {
	html := `<body>
		<label>Phone number <input id="wrapped"></label>
		<input id="bare">
	</body>`
	doc, err := NewStaticDocument(html, "")
	require.NoError(t, err)

	wrapped, ok := doc.First("#wrapped")
	require.True(t, ok)
	assert.Contains(t, wrapped.ClosestLabelText(), "Phone number")

	bare, ok := doc.First("#bare")
	require.True(t, ok)
	assert.Equal(t, "", bare.ClosestLabelText())
}

func TestStaticElement_Options(t *testing.T) {
	html := `<body><select id="s">
		<option value="us">United States</option>
		<option>Canada</option>
	</select></body>`
	doc, err := NewStaticDocument(html, "")
	require.NoError(t, err)

	el, ok := doc.First("#s")
	require.True(t, ok)

	options := el.Options()
	require.Len(t, options, 2)
	assert.Equal(t, Option{Value: "us", Text: "United States"}, options[0])
	// an option without a value attribute falls back to its text
	assert.Equal(t, "Canada", options[1].Value)
}

func TestStaticElement_SetValue(t *testing.T) {
	html := `<body><input id="i"><textarea id="t">old</textarea></body>`
	doc, err := NewStaticDocument(html, "")
	require.NoError(t, err)

	input, ok := doc.First("#i")
	require.True(t, ok)
	require.NoError(t, input.SetValue("hello"))
	assert.Equal(t, "hello", input.Attr("value"))

	area, ok := doc.First("#t")
	require.True(t, ok)
	require.NoError(t, area.SetValue("replaced"))
	assert.Equal(t, "replaced", area.Text())
}

func TestStaticElement_SelectOption(t *testing.T) {
	html := `<body><select id="s">
		<option value="a" selected>A</option>
		<option value="b">B</option>
	</select></body>`
	doc, err := NewStaticDocument(html, "")
	require.NoError(t, err)

	el, ok := doc.First("#s")
	require.True(t, ok)

	require.NoError(t, el.SelectOption("b"))
	assert.Equal(t, "b", el.Attr("value"))

	selected := doc.Query("option[selected]")
	require.Len(t, selected, 1, "previous selection must be cleared")
	assert.Equal(t, "b", selected[0].Attr("value"))

	err = el.SelectOption("z")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"z"`)
}

func TestStaticDocument_RecordsDispatchedEvents(t *testing.T) {
	html := `<body><input id="a"><input name="b"><input></body>`
	doc, err := NewStaticDocument(html, "")
	require.NoError(t, err)

	elements := doc.Query("input")
	require.Len(t, elements, 3)

	require.NoError(t, elements[0].Dispatch("input"))
	require.NoError(t, elements[1].Dispatch("change"))
	require.NoError(t, elements[2].Dispatch("change"))

	assert.Equal(t, []DispatchedEvent{
		{Target: "#a", Type: "input"},
		{Target: "input[name=b]", Type: "change"},
		{Target: "input", Type: "change"},
	}, doc.Events())
}

func TestStaticDocument_BodyText(t *testing.T) {
	doc, err := NewStaticDocument("<body><h1>Role</h1><p>Build things.</p></body>", "")
	require.NoError(t, err)
	assert.Contains(t, doc.BodyText(), "Role")
	assert.Contains(t, doc.BodyText(), "Build things.")
}

func TestEscapeIdentifier(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"plain", "plain"},
		{`with"quote`, `with\"quote`},
		{`with'single`, `with\'single`},
		{`back\slash`, `back\\slash`},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, EscapeIdentifier(tt.input))
	}
}

func TestMemoryClipboard(t *testing.T) {
	clipboard := NewMemoryClipboard()
	ctx := context.Background()

	require.NoError(t, clipboard.WriteText(ctx, "first"))
	require.NoError(t, clipboard.WriteText(ctx, "second"))
	assert.Equal(t, []string{"first", "second"}, clipboard.Texts())

	failure := errors.New("denied")
	clipboard.FailWith(failure)
	assert.ErrorIs(t, clipboard.WriteText(ctx, "third"), failure)
	assert.Equal(t, []string{"first", "second"}, clipboard.Texts())
}
