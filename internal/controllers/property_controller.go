package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/integration-ia/ceus-crm-backend/internal/dtos"
	"github.com/integration-ia/ceus-crm-backend/internal/services"
	"github.com/integration-ia/ceus-crm-backend/internal/utils"
)

type PropertyController struct {
	propertyService *services.PropertyService
	mediaService    *services.MediaService
}

func NewPropertyController(ps *services.PropertyService, ms *services.MediaService) *PropertyController {
	return &PropertyController{propertyService: ps, mediaService: ms}
}

// ----------------------------------------------------------------
// POST /api/v1/properties
// ----------------------------------------------------------------
func (c *PropertyController) CreatePropertyHandler(w http.ResponseWriter, r *http.Request) {
	userID, orgID, ok := authContext(w, r)
	if !ok {
		return
	}

	var payload dtos.PropertyPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondErrorWithCode(
			w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid JSON payload", nil, err,
		)
		return
	}

	resp, err := c.propertyService.CreateProperty(r.Context(), orgID, userID, &payload)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, resp)
}

// ----------------------------------------------------------------
// PUT /api/v1/properties/{id}
// ----------------------------------------------------------------
func (c *PropertyController) UpdatePropertyHandler(w http.ResponseWriter, r *http.Request) {
	_, orgID, ok := authContext(w, r)
	if !ok {
		return
	}
	propertyID, ok := pathID(w, r)
	if !ok {
		return
	}

	var payload dtos.PropertyPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondErrorWithCode(
			w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid JSON payload", nil, err,
		)
		return
	}

	resp, err := c.propertyService.UpdateProperty(r.Context(), orgID, propertyID, &payload)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, resp)
}

// ----------------------------------------------------------------
// GET /api/v1/properties
// ----------------------------------------------------------------
func (c *PropertyController) ListPropertiesHandler(w http.ResponseWriter, r *http.Request) {
	_, orgID, ok := authContext(w, r)
	if !ok {
		return
	}

	props, err := c.propertyService.ListProperties(r.Context(), orgID)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, props)
}

// ----------------------------------------------------------------
// GET /api/v1/properties/{id}
// ----------------------------------------------------------------
func (c *PropertyController) GetPropertyHandler(w http.ResponseWriter, r *http.Request) {
	_, orgID, ok := authContext(w, r)
	if !ok {
		return
	}
	propertyID, ok := pathID(w, r)
	if !ok {
		return
	}

	resp, err := c.propertyService.GetProperty(r.Context(), orgID, propertyID)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, resp)
}

// ----------------------------------------------------------------
// DELETE /api/v1/properties/{id}
// ----------------------------------------------------------------
func (c *PropertyController) DeletePropertyHandler(w http.ResponseWriter, r *http.Request) {
	_, orgID, ok := authContext(w, r)
	if !ok {
		return
	}
	propertyID, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := c.propertyService.DeleteProperty(r.Context(), orgID, propertyID); err != nil {
		utils.HandleAppError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ----------------------------------------------------------------
// POST /api/v1/properties/media/upload-urls
// ----------------------------------------------------------------
func (c *PropertyController) GenerateUploadURLsHandler(w http.ResponseWriter, r *http.Request) {
	_, orgID, ok := authContext(w, r)
	if !ok {
		return
	}

	var req dtos.UploadURLsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(
			w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid JSON payload", nil, err,
		)
		return
	}
	if err := validate.Struct(req); err != nil {
		utils.RespondErrorWithCode(
			w, http.StatusBadRequest, utils.ErrCodeValidation, "count must be between 1 and 20", nil, err,
		)
		return
	}

	resp, err := c.mediaService.GenerateUploadURLs(r.Context(), orgID, req.Count)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, resp)
}
