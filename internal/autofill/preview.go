package autofill

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/applyforge/applyforge/internal/dom"
	"github.com/applyforge/applyforge/internal/domain"
)

// Preview builds the proposed field-to-value mapping for the document. It is
// a pure read pass: controls that are ineligible, unlabeled, below the
// confidence threshold, or whose attribute has no profile value are skipped.
func (e *Engine) Preview(doc dom.Document, profile domain.CandidateProfile) []domain.FieldPreview {
	previews := []domain.FieldPreview{}

	for _, control := range e.Scan(doc) {
		label := ResolveLabel(doc, control)
		if label == "" {
			continue
		}

		key, confidence := Match(label)
		if confidence < e.cfg.MinConfidence {
			continue
		}

		value := profile.Value(key)
		if value == "" {
			continue
		}

		previews = append(previews, domain.FieldPreview{
			Key:          fmt.Sprintf("%s:%d", key, len(previews)),
			Label:        label,
			Value:        value,
			Enabled:      true,
			Kind:         fieldKind(control),
			SourceKey:    key,
			SelectorHint: selectorHint(control),
			Confidence:   confidence,
		})
	}

	e.logger.Debug("built autofill preview",
		zap.Int("rows", len(previews)),
		zap.String("hostname", doc.Hostname()))

	return previews
}

func fieldKind(el dom.Element) domain.FieldKind {
	switch el.Tag() {
	case "textarea":
		return domain.KindTextarea
	case "select":
		return domain.KindSelect
	}
	if strings.EqualFold(el.Attr("type"), "radio") {
		return domain.KindRadio
	}
	return domain.KindText
}

// selectorHint prefers the most stable handle available for relocating the
// control later: id, then name, then aria-label, then the bare tag.
func selectorHint(el dom.Element) string {
	if id := el.Attr("id"); id != "" {
		return "#" + id
	}
	if name := el.Attr("name"); name != "" {
		return `[name="` + name + `"]`
	}
	if aria := el.Attr("aria-label"); aria != "" {
		return `[aria-label="` + aria + `"]`
	}
	return el.Tag()
}
