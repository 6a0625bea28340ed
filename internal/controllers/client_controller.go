package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/integration-ia/ceus-crm-backend/internal/dtos"
	"github.com/integration-ia/ceus-crm-backend/internal/services"
	"github.com/integration-ia/ceus-crm-backend/internal/utils"
)

type ClientController struct {
	clientService *services.ClientService
}

func NewClientController(cs *services.ClientService) *ClientController {
	return &ClientController{clientService: cs}
}

// ----------------------------------------------------------------
// POST /api/v1/clients
// ----------------------------------------------------------------
func (c *ClientController) CreateClientHandler(w http.ResponseWriter, r *http.Request) {
	_, orgID, ok := authContext(w, r)
	if !ok {
		return
	}

	var payload dtos.ClientPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondErrorWithCode(
			w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid JSON payload", nil, err,
		)
		return
	}
	if err := validate.Struct(payload); err != nil {
		utils.RespondErrorWithCode(
			w, http.StatusBadRequest, utils.ErrCodeValidation, "One or more fields are invalid", nil, err,
		)
		return
	}

	client, err := c.clientService.CreateClient(r.Context(), orgID, &payload)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, dtos.ClientResponse{Client: client})
}

// ----------------------------------------------------------------
// GET /api/v1/clients
// ----------------------------------------------------------------
func (c *ClientController) ListClientsHandler(w http.ResponseWriter, r *http.Request) {
	_, orgID, ok := authContext(w, r)
	if !ok {
		return
	}

	clients, err := c.clientService.ListClients(r.Context(), orgID)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, clients)
}

// ----------------------------------------------------------------
// GET /api/v1/clients/{id}
// ----------------------------------------------------------------
func (c *ClientController) GetClientHandler(w http.ResponseWriter, r *http.Request) {
	_, orgID, ok := authContext(w, r)
	if !ok {
		return
	}
	clientID, ok := pathID(w, r)
	if !ok {
		return
	}

	client, err := c.clientService.GetClient(r.Context(), orgID, clientID)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dtos.ClientResponse{Client: client})
}

// ----------------------------------------------------------------
// PUT /api/v1/clients/{id}
// ----------------------------------------------------------------
func (c *ClientController) UpdateClientHandler(w http.ResponseWriter, r *http.Request) {
	_, orgID, ok := authContext(w, r)
	if !ok {
		return
	}
	clientID, ok := pathID(w, r)
	if !ok {
		return
	}

	var payload dtos.ClientPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondErrorWithCode(
			w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid JSON payload", nil, err,
		)
		return
	}
	if err := validate.Struct(payload); err != nil {
		utils.RespondErrorWithCode(
			w, http.StatusBadRequest, utils.ErrCodeValidation, "One or more fields are invalid", nil, err,
		)
		return
	}

	client, err := c.clientService.UpdateClient(r.Context(), orgID, clientID, &payload)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dtos.ClientResponse{Client: client})
}

// ----------------------------------------------------------------
// DELETE /api/v1/clients/{id}
// ----------------------------------------------------------------
func (c *ClientController) DeleteClientHandler(w http.ResponseWriter, r *http.Request) {
	_, orgID, ok := authContext(w, r)
	if !ok {
		return
	}
	clientID, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := c.clientService.DeleteClient(r.Context(), orgID, clientID); err != nil {
		utils.HandleAppError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
