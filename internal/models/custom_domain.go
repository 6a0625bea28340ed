package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

type DomainStatus string

const (
	DomainStatusPending   DomainStatus = "PENDING"
	DomainStatusVerifying DomainStatus = "VERIFYING"
	DomainStatusActive    DomainStatus = "ACTIVE"
	DomainStatusConflict  DomainStatus = "CONFLICT"
	DomainStatusError     DomainStatus = "ERROR"
)

func ParseDomainStatus(s string) (DomainStatus, error) {
	switch DomainStatus(s) {
	case DomainStatusPending, DomainStatusVerifying, DomainStatusActive,
		DomainStatusConflict, DomainStatusError:
		return DomainStatus(s), nil
	default:
		return "", fmt.Errorf("invalid domain status: %q", s)
	}
}

// CustomDomain tracks one organization's custom web domain and the
// provider's last observed DNS/certificate state.
type CustomDomain struct {
	ID             uuid.UUID    `json:"id"`
	OrganizationID uuid.UUID    `json:"organization_id"`
	Domain         string       `json:"domain"`
	Status         DomainStatus `json:"status"`
	LastCheckedAt  *time.Time   `json:"last_checked_at,omitempty"`
	CreatedAt      time.Time    `json:"created_at"`
}
