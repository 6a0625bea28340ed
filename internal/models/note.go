package models

import (
	"time"

	"github.com/google/uuid"
)

// Note is free-text attached to a property or a client (one of the two
// references is set).
type Note struct {
	ID             uuid.UUID  `json:"id"`
	OrganizationID uuid.UUID  `json:"organization_id"`
	PropertyID     *uuid.UUID `json:"property_id,omitempty"`
	ClientID       *uuid.UUID `json:"client_id,omitempty"`
	AuthorID       uuid.UUID  `json:"author_id"`
	Body           string     `json:"body"`
	CreatedAt      time.Time  `json:"created_at"`
}
