package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/applyforge/applyforge/internal/browser"
	"github.com/applyforge/applyforge/internal/domain"
	"github.com/applyforge/applyforge/internal/protocol"
	"github.com/applyforge/applyforge/pkg/httputil"
)

// SessionHandler manages browser sessions and routes engine messages to them
type SessionHandler struct {
	manager  *browser.Manager
	protocol *protocol.Handler
	logger   *zap.Logger
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(manager *browser.Manager, proto *protocol.Handler, logger *zap.Logger) *SessionHandler {
	return &SessionHandler{
		manager:  manager,
		protocol: proto,
		logger:   logger,
	}
}

// CreateSessionRequest asks for a new session on a job page
type CreateSessionRequest struct {
	URL string `json:"url"`
}

// SessionResponse is the API representation of a session
type SessionResponse struct {
	SessionID string                  `json:"session_id"`
	URL       string                  `json:"url"`
	Detection *domain.PortalDetection `json:"detection,omitempty"`
}

// Create opens a browser page on the requested URL and classifies it
func (h *SessionHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.JSONError(w, http.StatusBadRequest, domain.ErrCodeBadRequest, "Invalid request body", nil)
		return
	}
	if req.URL == "" {
		httputil.JSONError(w, http.StatusBadRequest, domain.ErrCodeValidation, "url is required", nil)
		return
	}

	sess, err := h.manager.Open(r.Context(), req.URL)
	if err != nil {
		h.logger.Warn("failed to open session", zap.String("url", req.URL), zap.Error(err))
		httputil.ErrorFromDomain(w, err)
		return
	}

	// Classify immediately so the UI can show compatibility up front
	resp, err := h.protocol.Handle(r.Context(), sess.Proto, sess.Doc, sess.Clipboard, protocol.Request{
		Type: protocol.MessagePortalCompat,
	})
	if err != nil {
		httputil.ErrorFromDomain(w, err)
		return
	}

	httputil.JSON(w, http.StatusCreated, SessionResponse{
		SessionID: sess.Proto.ID.String(),
		URL:       sess.URL(),
		Detection: resp.Detection,
	})
}

// Get returns session state, including the cached last detection. The cache
// is informational only; clients needing a current answer send
// GET_PORTAL_COMPAT instead.
func (h *SessionHandler) Get(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}

	resp := SessionResponse{
		SessionID: sess.Proto.ID.String(),
		URL:       sess.URL(),
	}
	if detection, ok := sess.Proto.LastDetection(); ok {
		resp.Detection = &detection
	}

	httputil.JSON(w, http.StatusOK, resp)
}

// Message dispatches one protocol request against the session's live page
func (h *SessionHandler) Message(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}

	var req protocol.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.JSONError(w, http.StatusBadRequest, domain.ErrCodeBadRequest, "Invalid request body", nil)
		return
	}

	resp, err := h.protocol.Handle(r.Context(), sess.Proto, sess.Doc, sess.Clipboard, req)
	if err != nil {
		httputil.ErrorFromDomain(w, err)
		return
	}

	httputil.JSON(w, http.StatusOK, resp)
}

// Delete closes the session's page
func (h *SessionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.sessionID(w, r)
	if !ok {
		return
	}

	if err := h.manager.CloseSession(id); err != nil {
		httputil.ErrorFromDomain(w, err)
		return
	}

	httputil.JSON(w, http.StatusOK, map[string]any{"closed": true})
}

func (h *SessionHandler) sessionID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httputil.JSONError(w, http.StatusBadRequest, domain.ErrCodeValidation, "Invalid session id", nil)
		return uuid.Nil, false
	}
	return id, true
}

func (h *SessionHandler) session(w http.ResponseWriter, r *http.Request) (*browser.Session, bool) {
	id, ok := h.sessionID(w, r)
	if !ok {
		return nil, false
	}
	sess, err := h.manager.Get(id)
	if err != nil {
		httputil.ErrorFromDomain(w, err)
		return nil, false
	}
	return sess, true
}
