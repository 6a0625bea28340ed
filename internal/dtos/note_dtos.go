package dtos

import (
	"strings"

	"github.com/google/uuid"

	"github.com/integration-ia/ceus-crm-backend/internal/utils"
)

// NotePayload attaches free text to exactly one of a property or a
// client.
type NotePayload struct {
	PropertyID *uuid.UUID `json:"property_id,omitempty"`
	ClientID   *uuid.UUID `json:"client_id,omitempty"`
	Body       string     `json:"body" validate:"required"`
}

func (p *NotePayload) Validate() utils.FieldErrors {
	p.Body = strings.TrimSpace(p.Body)
	errs := utils.FieldErrors{}

	if p.Body == "" {
		errs["body"] = "body is required"
	}
	if (p.PropertyID == nil) == (p.ClientID == nil) {
		errs["property_id"] = "exactly one of property_id or client_id must be set"
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

type NoteUpdatePayload struct {
	Body string `json:"body" validate:"required"`
}
