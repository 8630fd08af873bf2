package autofill

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/applyforge/applyforge/internal/dom"
	"github.com/applyforge/applyforge/internal/domain"
)

// ReasonDisabled marks a result row that was skipped because the user
// disabled it in the preview.
const ReasonDisabled = "row disabled"

// Apply writes each enabled preview row into its matching control and reports
// one result per row. Disabled rows are never written and never reach the
// clipboard. A row whose control cannot be found or whose write strategy
// fails degrades to a clipboard copy exactly once and reports success=false.
// Apply never submits a form. clipboard may be nil when no fallback channel
// exists.
func (e *Engine) Apply(ctx context.Context, doc dom.Document, clipboard dom.Clipboard, previews []domain.FieldPreview) []domain.ApplyResult {
	controls := e.Scan(doc)
	results := make([]domain.ApplyResult, 0, len(previews))

	for _, row := range previews {
		if !row.Enabled {
			results = append(results, domain.ApplyResult{
				Label:  row.Label,
				Reason: ReasonDisabled,
			})
			continue
		}

		target, ok := locate(doc, controls, row)
		if !ok {
			results = append(results, e.fallback(ctx, clipboard, row, "no matching control"))
			continue
		}

		if reason, ok := e.write(doc, target, row.Value); !ok {
			results = append(results, e.fallback(ctx, clipboard, row, reason))
			continue
		}

		results = append(results, domain.ApplyResult{Label: row.Label, Success: true})
	}

	return results
}

// locate matches a preview row back to a live control: id hint first, then
// name hint, then containment of the row's label in the control's resolved
// label.
func locate(doc dom.Document, controls []dom.Element, row domain.FieldPreview) (dom.Element, bool) {
	for _, control := range controls {
		if strings.HasPrefix(row.SelectorHint, "#") {
			if id := control.Attr("id"); id != "" && "#"+id == row.SelectorHint {
				return control, true
			}
		}
		if name := control.Attr("name"); name != "" && row.SelectorHint == `[name="`+name+`"]` {
			return control, true
		}
		if row.Label != "" && strings.Contains(ResolveLabel(doc, control), row.Label) {
			return control, true
		}
	}
	return nil, false
}

// write picks the strategy from the live control's kind and returns a
// diagnostic reason when it fails.
func (e *Engine) write(doc dom.Document, target dom.Element, value string) (string, bool) {
	switch {
	case target.Tag() == "select":
		return writeSelect(target, value)
	case target.Tag() == "input" && strings.EqualFold(target.Attr("type"), "radio"):
		return writeRadio(doc, target, value)
	default:
		return writeText(target, value)
	}
}

// writeText sets the value directly and signals input and change so reactive
// listeners observe the update.
func writeText(target dom.Element, value string) (string, bool) {
	if err := target.SetValue(value); err != nil {
		return "write failed: " + err.Error(), false
	}
	target.Dispatch("input")
	target.Dispatch("change")
	return "", true
}

// writeSelect selects the option whose normalized value or visible text
// equals the normalized target value.
func writeSelect(target dom.Element, value string) (string, bool) {
	want := Normalize(value)
	for _, opt := range target.Options() {
		if Normalize(opt.Value) != want && Normalize(opt.Text) != want {
			continue
		}
		if err := target.SelectOption(opt.Value); err != nil {
			return "selecting option failed: " + err.Error(), false
		}
		target.Dispatch("change")
		return "", true
	}
	return "no matching option", false
}

// writeRadio checks the member of the radio group whose normalized value
// matches or whose resolved label contains the normalized target text.
func writeRadio(doc dom.Document, target dom.Element, value string) (string, bool) {
	name := target.Attr("name")
	if name == "" {
		return "radio group has no name", false
	}

	want := Normalize(value)
	selector := `input[type="radio"][name="` + dom.EscapeIdentifier(name) + `"]`

	for _, radio := range doc.Query(selector) {
		if Normalize(radio.Attr("value")) != want && !strings.Contains(ResolveLabel(doc, radio), want) {
			continue
		}
		if err := radio.SetChecked(); err != nil {
			return "checking radio failed: " + err.Error(), false
		}
		radio.Dispatch("input")
		radio.Dispatch("change")
		return "", true
	}
	return "no matching radio option", false
}

// fallback copies the intended value to the clipboard. Clipboard failures are
// best-effort: they surface in the diagnostic reason but the row stays
// success=false either way.
func (e *Engine) fallback(ctx context.Context, clipboard dom.Clipboard, row domain.FieldPreview, reason string) domain.ApplyResult {
	if clipboard == nil {
		return domain.ApplyResult{Label: row.Label, Reason: reason}
	}
	if err := clipboard.WriteText(ctx, row.Value); err != nil {
		e.logger.Debug("clipboard fallback failed",
			zap.String("label", row.Label),
			zap.Error(err))
		return domain.ApplyResult{Label: row.Label, Reason: reason + "; clipboard write failed"}
	}
	return domain.ApplyResult{Label: row.Label, Reason: reason + "; value copied to clipboard"}
}
