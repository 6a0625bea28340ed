package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/integration-ia/ceus-crm-backend/internal/dtos"
	"github.com/integration-ia/ceus-crm-backend/internal/services"
	"github.com/integration-ia/ceus-crm-backend/internal/utils"
)

type DomainController struct {
	domainService *services.DomainService
}

func NewDomainController(ds *services.DomainService) *DomainController {
	return &DomainController{domainService: ds}
}

// ----------------------------------------------------------------
// POST /api/v1/domains
// ----------------------------------------------------------------
func (c *DomainController) RegisterDomainHandler(w http.ResponseWriter, r *http.Request) {
	_, orgID, ok := authContext(w, r)
	if !ok {
		return
	}

	var req dtos.DomainRegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(
			w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid JSON payload", nil, err,
		)
		return
	}
	if err := validate.Struct(req); err != nil {
		utils.RespondErrorWithCode(
			w, http.StatusBadRequest, utils.ErrCodeValidation, "domain must be a fully qualified domain name", nil, err,
		)
		return
	}

	domain, err := c.domainService.RegisterDomain(r.Context(), orgID, req.Domain)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, dtos.DomainResponse{Domain: domain})
}

// ----------------------------------------------------------------
// GET /api/v1/domains
// ----------------------------------------------------------------
func (c *DomainController) ListDomainsHandler(w http.ResponseWriter, r *http.Request) {
	_, orgID, ok := authContext(w, r)
	if !ok {
		return
	}

	domains, err := c.domainService.ListDomains(r.Context(), orgID)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dtos.DomainListResponse{Domains: domains})
}

// ----------------------------------------------------------------
// POST /api/v1/domains/{id}/verify
// ----------------------------------------------------------------
func (c *DomainController) VerifyDomainHandler(w http.ResponseWriter, r *http.Request) {
	_, orgID, ok := authContext(w, r)
	if !ok {
		return
	}
	domainID, ok := pathID(w, r)
	if !ok {
		return
	}

	domain, err := c.domainService.VerifyDomain(r.Context(), orgID, domainID)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dtos.DomainResponse{Domain: domain})
}

// ----------------------------------------------------------------
// DELETE /api/v1/domains/{id}
// ----------------------------------------------------------------
func (c *DomainController) RemoveDomainHandler(w http.ResponseWriter, r *http.Request) {
	_, orgID, ok := authContext(w, r)
	if !ok {
		return
	}
	domainID, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := c.domainService.RemoveDomain(r.Context(), orgID, domainID); err != nil {
		utils.HandleAppError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
