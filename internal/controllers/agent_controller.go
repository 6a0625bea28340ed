package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/integration-ia/ceus-crm-backend/internal/dtos"
	"github.com/integration-ia/ceus-crm-backend/internal/services"
	"github.com/integration-ia/ceus-crm-backend/internal/utils"
)

type AgentController struct {
	agentService *services.AgentService
}

func NewAgentController(as *services.AgentService) *AgentController {
	return &AgentController{agentService: as}
}

// ----------------------------------------------------------------
// POST /api/v1/agents
// ----------------------------------------------------------------
func (c *AgentController) CreateAgentHandler(w http.ResponseWriter, r *http.Request) {
	_, orgID, ok := authContext(w, r)
	if !ok {
		return
	}

	var payload dtos.AgentPayload
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

	agent, err := c.agentService.CreateAgent(r.Context(), orgID, &payload)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, agent)
}

// ----------------------------------------------------------------
// GET /api/v1/agents
// ----------------------------------------------------------------
func (c *AgentController) ListAgentsHandler(w http.ResponseWriter, r *http.Request) {
	_, orgID, ok := authContext(w, r)
	if !ok {
		return
	}

	agents, err := c.agentService.ListAgents(r.Context(), orgID)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, agents)
}

// ----------------------------------------------------------------
// GET /api/v1/agents/{id}
// ----------------------------------------------------------------
func (c *AgentController) GetAgentHandler(w http.ResponseWriter, r *http.Request) {
	_, orgID, ok := authContext(w, r)
	if !ok {
		return
	}
	agentID, ok := pathID(w, r)
	if !ok {
		return
	}

	agent, err := c.agentService.GetAgent(r.Context(), orgID, agentID)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, agent)
}

// ----------------------------------------------------------------
// PUT /api/v1/agents/{id}
// ----------------------------------------------------------------
func (c *AgentController) UpdateAgentHandler(w http.ResponseWriter, r *http.Request) {
	_, orgID, ok := authContext(w, r)
	if !ok {
		return
	}
	agentID, ok := pathID(w, r)
	if !ok {
		return
	}

	var payload dtos.AgentPayload
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

	agent, err := c.agentService.UpdateAgent(r.Context(), orgID, agentID, &payload)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, agent)
}

// ----------------------------------------------------------------
// DELETE /api/v1/agents/{id}
// ----------------------------------------------------------------
func (c *AgentController) DeleteAgentHandler(w http.ResponseWriter, r *http.Request) {
	_, orgID, ok := authContext(w, r)
	if !ok {
		return
	}
	agentID, ok := pathID(w, r)
	if !ok {
		return
	}

	var req dtos.AgentDeleteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(
			w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid JSON payload", nil, err,
		)
		return
	}
	if err := validate.Struct(req); err != nil {
		utils.RespondErrorWithCode(
			w, http.StatusBadRequest, utils.ErrCodeValidation, "reassign_to_agent_id is required", nil, err,
		)
		return
	}

	moved, err := c.agentService.DeleteAgent(r.Context(), orgID, agentID, req.ReassignToAgentID)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dtos.AgentDeleteResponse{ReassignedListings: moved})
}
