package handlers

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/applyforge/applyforge/internal/dom"
	"github.com/applyforge/applyforge/internal/domain"
	"github.com/applyforge/applyforge/internal/protocol"
	"github.com/applyforge/applyforge/pkg/httputil"
)

// InspectHandler runs engine messages against an HTML snapshot instead of a
// live page. Useful for clients that already hold the page markup and for
// exercising the engine without a browser.
type InspectHandler struct {
	protocol *protocol.Handler
	logger   *zap.Logger
}

// NewInspectHandler creates a new inspect handler
func NewInspectHandler(proto *protocol.Handler, logger *zap.Logger) *InspectHandler {
	return &InspectHandler{protocol: proto, logger: logger}
}

// InspectRequest carries a page snapshot and the message to run against it
type InspectRequest struct {
	URL     string           `json:"url,omitempty"`
	HTML    string           `json:"html"`
	Request protocol.Request `json:"request"`
}

// InspectResponse wraps the engine response plus any clipboard fallbacks,
// which in snapshot mode have nowhere else to go
type InspectResponse struct {
	Response  protocol.Response `json:"response"`
	Clipboard []string          `json:"clipboard,omitempty"`
}

// Inspect parses the snapshot and dispatches the request
func (h *InspectHandler) Inspect(w http.ResponseWriter, r *http.Request) {
	var req InspectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.JSONError(w, http.StatusBadRequest, domain.ErrCodeBadRequest, "Invalid request body", nil)
		return
	}
	if req.HTML == "" {
		httputil.JSONError(w, http.StatusBadRequest, domain.ErrCodeValidation, "html is required", nil)
		return
	}

	doc, err := dom.NewStaticDocument(req.HTML, req.URL)
	if err != nil {
		httputil.JSONError(w, http.StatusBadRequest, domain.ErrCodeValidation, "Unparseable html", nil)
		return
	}

	clipboard := dom.NewMemoryClipboard()
	resp, err := h.protocol.Handle(r.Context(), protocol.NewSession(), doc, clipboard, req.Request)
	if err != nil {
		httputil.ErrorFromDomain(w, err)
		return
	}

	httputil.JSON(w, http.StatusOK, InspectResponse{
		Response:  resp,
		Clipboard: clipboard.Texts(),
	})
}
