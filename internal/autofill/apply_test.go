package autofill

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/applyforge/applyforge/internal/dom"
	"github.com/applyforge/applyforge/internal/domain"
)

func TestEngine_Apply_WritesTextControl(t *testing.T) {
	html := `<body><label for="city">City</label><input id="city" type="text"></body>`
	doc := mustStaticDoc(t, html)
	engine := NewEngine(Config{}, zap.NewNop())
	clipboard := dom.NewMemoryClipboard()

	previews := engine.Preview(doc, domain.CandidateProfile{City: "Seattle"})
	require.Len(t, previews, 1)

	results := engine.Apply(context.Background(), doc, clipboard, previews)

	require.Len(t, results, 1)
	assert.True(t, results[0].Success)
	assert.Empty(t, results[0].Reason)

	input, ok := doc.First("#city")
	require.True(t, ok)
	assert.Equal(t, "Seattle", input.Attr("value"))

	assert.Equal(t, []dom.DispatchedEvent{
		{Target: "#city", Type: "input"},
		{Target: "#city", Type: "change"},
	}, doc.Events())
	assert.Empty(t, clipboard.Texts())
}

func TestEngine_Apply_WritesTextarea(t *testing.T) {
	html := `<body><label for="resume">Resume</label><textarea id="resume"></textarea></body>`
	doc := mustStaticDoc(t, html)
	engine := NewEngine(Config{}, zap.NewNop())

	row := domain.FieldPreview{
		Key:          "resumeText:0",
		Label:        "resume",
		Value:        "Ten years of Go.",
		Enabled:      true,
		Kind:         domain.KindTextarea,
		SourceKey:    domain.KeyResumeText,
		SelectorHint: "#resume",
	}

	results := engine.Apply(context.Background(), doc, nil, []domain.FieldPreview{row})

	require.Len(t, results, 1)
	assert.True(t, results[0].Success)

	area, ok := doc.First("#resume")
	require.True(t, ok)
	assert.Equal(t, "Ten years of Go.", area.Text())
}

func TestEngine_Apply_SelectsMatchingOption(t *testing.T) {
	html := `<body>
		<label for="loc">Location</label>
		<select id="loc">
			<option value="">Choose…</option>
			<option value="OR">Oregon</option>
			<option value="WA">Washington</option>
		</select>
	</body>`
	doc := mustStaticDoc(t, html)
	engine := NewEngine(Config{}, zap.NewNop())

	row := domain.FieldPreview{
		Key:          "city:0",
		Label:        "location loc",
		Value:        "Washington",
		Enabled:      true,
		Kind:         domain.KindSelect,
		SourceKey:    domain.KeyCity,
		SelectorHint: "#loc",
	}

	results := engine.Apply(context.Background(), doc, nil, []domain.FieldPreview{row})

	require.Len(t, results, 1)
	assert.True(t, results[0].Success)

	sel, ok := doc.First("#loc")
	require.True(t, ok)
	assert.Equal(t, "WA", sel.Attr("value"))

	selected, ok := doc.First("option[selected]")
	require.True(t, ok)
	assert.Equal(t, "WA", selected.Attr("value"))

	assert.Equal(t, []dom.DispatchedEvent{{Target: "#loc", Type: "change"}}, doc.Events())
}

func TestEngine_Apply_SelectWithoutMatchFallsBack(t *testing.T) {
	html := `<body>
		<label for="loc">Location</label>
		<select id="loc"><option value="OR">Oregon</option></select>
	</body>`
	doc := mustStaticDoc(t, html)
	engine := NewEngine(Config{}, zap.NewNop())
	clipboard := dom.NewMemoryClipboard()

	row := domain.FieldPreview{
		Key:          "city:0",
		Label:        "location loc",
		Value:        "Mars",
		Enabled:      true,
		Kind:         domain.KindSelect,
		SourceKey:    domain.KeyCity,
		SelectorHint: "#loc",
	}

	results := engine.Apply(context.Background(), doc, clipboard, []domain.FieldPreview{row})

	require.Len(t, results, 1)
	assert.False(t, results[0].Success)
	assert.Equal(t, "no matching option; value copied to clipboard", results[0].Reason)
	assert.Equal(t, []string{"Mars"}, clipboard.Texts())
}

func TestEngine_Apply_ChecksRadioByValue(t *testing.T) {
	html := `<body>
		<label><input type="radio" name="relocate" value="yes">Yes</label>
		<label><input type="radio" name="relocate" value="no">No</label>
	</body>`
	doc := mustStaticDoc(t, html)
	engine := NewEngine(Config{}, zap.NewNop())

	row := domain.FieldPreview{
		Key:          "city:0",
		Label:        "yes relocate",
		Value:        "Yes",
		Enabled:      true,
		Kind:         domain.KindRadio,
		SourceKey:    domain.KeyCity,
		SelectorHint: `[name="relocate"]`,
	}

	results := engine.Apply(context.Background(), doc, nil, []domain.FieldPreview{row})

	require.Len(t, results, 1)
	assert.True(t, results[0].Success)

	checked, ok := doc.First("input[checked]")
	require.True(t, ok)
	assert.Equal(t, "yes", checked.Attr("value"))
}

func TestEngine_Apply_DisabledRowsAreNeverWritten(t *testing.T) {
	html := `<body><label for="city">City</label><input id="city" type="text"></body>`
	doc := mustStaticDoc(t, html)
	engine := NewEngine(Config{}, zap.NewNop())
	clipboard := dom.NewMemoryClipboard()

	previews := engine.Preview(doc, domain.CandidateProfile{City: "Seattle"})
	require.Len(t, previews, 1)
	previews[0].Enabled = false

	results := engine.Apply(context.Background(), doc, clipboard, previews)

	require.Len(t, results, 1, "one result per preview row, disabled included")
	assert.False(t, results[0].Success)
	assert.Equal(t, ReasonDisabled, results[0].Reason)

	input, ok := doc.First("#city")
	require.True(t, ok)
	assert.Empty(t, input.Attr("value"), "disabled row must not touch the page")
	assert.Empty(t, doc.Events())
	assert.Empty(t, clipboard.Texts(), "disabled row must not reach the clipboard")
}

func TestEngine_Apply_MissingControlFallsBackToClipboard(t *testing.T) {
	doc := mustStaticDoc(t, "<body></body>")
	engine := NewEngine(Config{}, zap.NewNop())
	clipboard := dom.NewMemoryClipboard()

	row := domain.FieldPreview{
		Key:          "email:0",
		Label:        "work email zzz",
		Value:        "ada@example.com",
		Enabled:      true,
		Kind:         domain.KindText,
		SourceKey:    domain.KeyEmail,
		SelectorHint: "#ghost",
	}

	results := engine.Apply(context.Background(), doc, clipboard, []domain.FieldPreview{row})

	require.Len(t, results, 1)
	assert.False(t, results[0].Success)
	assert.Equal(t, "no matching control; value copied to clipboard", results[0].Reason)
	assert.Equal(t, []string{"ada@example.com"}, clipboard.Texts())
}

func TestEngine_Apply_ClipboardFailureKeepsRowUnsuccessful(t *testing.T) {
	doc := mustStaticDoc(t, "<body></body>")
	engine := NewEngine(Config{}, zap.NewNop())
	clipboard := dom.NewMemoryClipboard()
	clipboard.FailWith(errors.New("permission denied"))

	row := domain.FieldPreview{
		Key:          "email:0",
		Label:        "work email zzz",
		Value:        "ada@example.com",
		Enabled:      true,
		SourceKey:    domain.KeyEmail,
		SelectorHint: "#ghost",
	}

	results := engine.Apply(context.Background(), doc, clipboard, []domain.FieldPreview{row})

	require.Len(t, results, 1)
	assert.False(t, results[0].Success)
	assert.Equal(t, "no matching control; clipboard write failed", results[0].Reason)
	assert.Empty(t, clipboard.Texts())
}

func TestEngine_Apply_NilClipboard(t *testing.T) {
	doc := mustStaticDoc(t, "<body></body>")
	engine := NewEngine(Config{}, zap.NewNop())

	row := domain.FieldPreview{
		Key:          "email:0",
		Label:        "work email zzz",
		Value:        "ada@example.com",
		Enabled:      true,
		SourceKey:    domain.KeyEmail,
		SelectorHint: "#ghost",
	}

	results := engine.Apply(context.Background(), doc, nil, []domain.FieldPreview{row})

	require.Len(t, results, 1)
	assert.False(t, results[0].Success)
	assert.Equal(t, "no matching control", results[0].Reason)
}

func TestEngine_Apply_OneResultPerRowInOrder(t *testing.T) {
	html := `<body>
		<label for="fname">First Name</label><input id="fname" type="text">
		<label for="email">Email Address</label><input id="email" type="email">
	</body>`
	doc := mustStaticDoc(t, html)
	engine := NewEngine(Config{}, zap.NewNop())
	clipboard := dom.NewMemoryClipboard()

	previews := engine.Preview(doc, testProfile())
	require.Len(t, previews, 2)
	previews[1].Enabled = false

	results := engine.Apply(context.Background(), doc, clipboard, previews)

	require.Len(t, results, len(previews))
	assert.Equal(t, previews[0].Label, results[0].Label)
	assert.True(t, results[0].Success)
	assert.Equal(t, previews[1].Label, results[1].Label)
	assert.False(t, results[1].Success)
	assert.Equal(t, ReasonDisabled, results[1].Reason)
}
