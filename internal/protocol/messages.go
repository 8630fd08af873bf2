// Package protocol defines the request/response contract between the engine
// and the extension runtime. The message type is a closed set dispatched
// exhaustively; every request produces exactly one response.
package protocol

import (
	"github.com/applyforge/applyforge/internal/domain"
)

// MessageType tags a request with its operation
type MessageType string

const (
	MessagePortalCompat    MessageType = "GET_PORTAL_COMPAT"
	MessageExtractJob      MessageType = "EXTRACT_JOB"
	MessagePreviewAutofill MessageType = "PREVIEW_AUTOFILL"
	MessageApplyAutofill   MessageType = "APPLY_AUTOFILL"
	MessageTrackingPayload MessageType = "GET_JOB_TRACKING_PAYLOAD"
)

// Request is one message from the extension runtime. Only the payload field
// matching the type is consulted.
type Request struct {
	Type MessageType `json:"type"`

	// Profile accompanies PREVIEW_AUTOFILL
	Profile *domain.CandidateProfile `json:"profile,omitempty"`

	// Preview accompanies APPLY_AUTOFILL, as edited by the user
	Preview []domain.FieldPreview `json:"preview,omitempty"`

	// Status accompanies GET_JOB_TRACKING_PAYLOAD
	Status domain.TrackingStatus `json:"status,omitempty"`
}

// Response carries the result variant matching the request type
type Response struct {
	Detection *domain.PortalDetection `json:"detection,omitempty"`
	Job       *domain.ExtractedJob    `json:"job,omitempty"`
	Preview   []domain.FieldPreview   `json:"preview,omitempty"`
	Results   []domain.ApplyResult    `json:"results,omitempty"`
	Tracking  *domain.TrackingPayload `json:"tracking,omitempty"`

	// Submitted accompanies APPLY_AUTOFILL responses and is always false:
	// the engine never automates submission.
	Submitted *bool `json:"submitted,omitempty"`
}
