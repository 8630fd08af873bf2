package protocol

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/applyforge/applyforge/internal/autofill"
	"github.com/applyforge/applyforge/internal/dom"
	"github.com/applyforge/applyforge/internal/domain"
	"github.com/applyforge/applyforge/internal/observability"
	"github.com/applyforge/applyforge/internal/portal"
)

// Handler dispatches protocol requests to the engine components
type Handler struct {
	detector  *portal.Detector
	extractor *portal.Extractor
	engine    *autofill.Engine
	metrics   *observability.Metrics
	logger    *zap.Logger
}

// NewHandler creates a protocol handler. metrics may be nil.
func NewHandler(
	detector *portal.Detector,
	extractor *portal.Extractor,
	engine *autofill.Engine,
	metrics *observability.Metrics,
	logger *zap.Logger,
) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		detector:  detector,
		extractor: extractor,
		engine:    engine,
		metrics:   metrics,
		logger:    logger,
	}
}

// Handle processes one request against the session's document. The switch is
// exhaustive over the closed message set; unknown types are a bad request,
// never a silent no-op. Per-row autofill failures are results, not errors.
// clipboard receives the fallback copies during APPLY_AUTOFILL; it may be nil.
func (h *Handler) Handle(ctx context.Context, sess *Session, doc dom.Document, clipboard dom.Clipboard, req Request) (Response, error) {
	start := time.Now()

	var resp Response
	switch req.Type {
	case MessagePortalCompat:
		detection := h.detector.Detect(doc)
		sess.Remember(detection)
		h.metrics.ObserveDetection(string(detection.Portal))
		resp = Response{Detection: &detection}

	case MessageExtractJob:
		job, detection := h.extractor.Extract(doc)
		sess.Remember(detection)
		h.metrics.ObserveDetection(string(detection.Portal))
		resp = Response{Job: &job}

	case MessagePreviewAutofill:
		if req.Profile == nil {
			return Response{}, domain.ErrBadRequest("profile is required for PREVIEW_AUTOFILL")
		}
		preview := h.engine.Preview(doc, *req.Profile)
		h.metrics.ObservePreview(len(preview))
		resp = Response{Preview: preview}

	case MessageApplyAutofill:
		if req.Preview == nil {
			return Response{}, domain.ErrBadRequest("preview is required for APPLY_AUTOFILL")
		}
		results := h.engine.Apply(ctx, doc, clipboard, req.Preview)
		for _, result := range results {
			h.metrics.ObserveApply(applyOutcome(result))
		}
		submitted := false
		resp = Response{Results: results, Submitted: &submitted}

	case MessageTrackingPayload:
		status := req.Status
		if status != domain.StatusApplied {
			status = domain.StatusSaved
		}
		payload, detection := h.extractor.TrackingPayload(doc, status)
		sess.Remember(detection)
		resp = Response{Tracking: &payload}

	default:
		return Response{}, domain.ErrBadRequest(fmt.Sprintf("unknown message type: %q", req.Type))
	}

	h.metrics.ObserveMessage(string(req.Type), time.Since(start).Seconds())
	h.logger.Debug("handled message",
		zap.String("type", string(req.Type)),
		zap.String("session_id", sess.ID.String()),
		zap.Duration("duration", time.Since(start)))

	return resp, nil
}

func applyOutcome(result domain.ApplyResult) string {
	switch {
	case result.Success:
		return observability.ApplyOutcomeApplied
	case result.Reason == autofill.ReasonDisabled:
		return observability.ApplyOutcomeSkipped
	default:
		return observability.ApplyOutcomeFallback
	}
}
