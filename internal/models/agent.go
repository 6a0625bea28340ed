package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

type AgentRole string

const (
	AgentRoleAdmin AgentRole = "ADMIN"
	AgentRoleAgent AgentRole = "AGENT"
)

func ParseAgentRole(s string) (AgentRole, error) {
	switch AgentRole(s) {
	case AgentRoleAdmin, AgentRoleAgent:
		return AgentRole(s), nil
	default:
		return "", fmt.Errorf("invalid agent role: %q", s)
	}
}

// Agent is a CRM user. Properties reference an agent-in-charge; deleting
// an agent reassigns their listings, never cascades.
type Agent struct {
	ID             uuid.UUID `json:"id"`
	OrganizationID uuid.UUID `json:"organization_id"`
	FirstName      string    `json:"first_name"`
	LastName       string    `json:"last_name"`
	Email          string    `json:"email"`
	Role           AgentRole `json:"role"`
	CreatedAt      time.Time `json:"created_at"`
}
