package dtos

import (
	"github.com/google/uuid"
)

// AgentPayload creates or updates an organization member.
type AgentPayload struct {
	FirstName string `json:"first_name" validate:"required"`
	LastName  string `json:"last_name" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	Role      string `json:"role" validate:"required,oneof=ADMIN AGENT"`
}

// AgentDeleteRequest names the agent receiving the departing agent's
// listings.
type AgentDeleteRequest struct {
	ReassignToAgentID uuid.UUID `json:"reassign_to_agent_id" validate:"required"`
}

type AgentDeleteResponse struct {
	ReassignedListings int64 `json:"reassigned_listings"`
}
