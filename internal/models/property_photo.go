package models

import (
	"time"

	"github.com/google/uuid"
)

// PropertyPhoto records photo metadata once the object-storage upload
// has been confirmed. At most one photo per property carries IsCover
// (enforced at validation time).
type PropertyPhoto struct {
	ID         uuid.UUID `json:"id"`
	PropertyID uuid.UUID `json:"property_id"`
	RemoteID   string    `json:"remote_id"`
	Filename   string    `json:"filename"`
	IsCover    bool      `json:"is_cover"`
	UploadedAt time.Time `json:"uploaded_at"`
}
