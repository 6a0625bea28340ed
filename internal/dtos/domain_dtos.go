package dtos

import (
	"github.com/integration-ia/ceus-crm-backend/internal/models"
)

// DomainRegisterRequest adds a custom web domain for the caller's
// organization.
type DomainRegisterRequest struct {
	Domain string `json:"domain" validate:"required,fqdn"`
}

type DomainResponse struct {
	Domain *models.CustomDomain `json:"domain"`
}

type DomainListResponse struct {
	Domains []*models.CustomDomain `json:"domains"`
}
