package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/integration-ia/ceus-crm-backend/internal/dtos"
	"github.com/integration-ia/ceus-crm-backend/internal/models"
	"github.com/integration-ia/ceus-crm-backend/internal/repositories"
	"github.com/integration-ia/ceus-crm-backend/internal/utils"
)

// AgentService manages organization members. Deleting an agent never
// cascades to their listings; those move to another agent first.
type AgentService struct {
	store repositories.TxRunner
}

func NewAgentService(store repositories.TxRunner) *AgentService {
	return &AgentService{store: store}
}

func (s *AgentService) CreateAgent(ctx context.Context, orgID uuid.UUID, payload *dtos.AgentPayload) (*models.Agent, error) {
	role, err := models.ParseAgentRole(payload.Role)
	if err != nil {
		return nil, utils.NewValidationError(utils.FieldErrors{"role": "unknown role"})
	}

	agent := &models.Agent{
		ID:             uuid.New(),
		OrganizationID: orgID,
		FirstName:      payload.FirstName,
		LastName:       payload.LastName,
		Email:          payload.Email,
		Role:           role,
	}
	if err := s.store.Repos().Agents.Create(ctx, agent); err != nil {
		if repositories.IsUniqueViolation(err) {
			return nil, utils.ErrDuplicate
		}
		return nil, err
	}
	return agent, nil
}

func (s *AgentService) GetAgent(ctx context.Context, orgID, agentID uuid.UUID) (*models.Agent, error) {
	agent, err := s.store.Repos().Agents.GetByID(ctx, agentID)
	if err != nil {
		return nil, err
	}
	if agent == nil || agent.OrganizationID != orgID {
		return nil, utils.ErrNotFound
	}
	return agent, nil
}

func (s *AgentService) ListAgents(ctx context.Context, orgID uuid.UUID) ([]*models.Agent, error) {
	return s.store.Repos().Agents.ListByOrganizationID(ctx, orgID)
}

func (s *AgentService) UpdateAgent(ctx context.Context, orgID, agentID uuid.UUID, payload *dtos.AgentPayload) (*models.Agent, error) {
	agent, err := s.GetAgent(ctx, orgID, agentID)
	if err != nil {
		return nil, err
	}
	role, err := models.ParseAgentRole(payload.Role)
	if err != nil {
		return nil, utils.NewValidationError(utils.FieldErrors{"role": "unknown role"})
	}

	agent.FirstName = payload.FirstName
	agent.LastName = payload.LastName
	agent.Email = payload.Email
	agent.Role = role
	if err := s.store.Repos().Agents.Update(ctx, agent); err != nil {
		return nil, err
	}
	return agent, nil
}

// DeleteAgent reassigns the agent's listings to another agent in the
// same organization, then removes the agent, atomically.
func (s *AgentService) DeleteAgent(ctx context.Context, orgID, agentID, reassignTo uuid.UUID) (int64, error) {
	if agentID == reassignTo {
		return 0, utils.NewValidationError(utils.FieldErrors{
			"reassign_to_agent_id": "cannot reassign listings to the agent being deleted",
		})
	}
	if _, err := s.GetAgent(ctx, orgID, agentID); err != nil {
		return 0, err
	}
	if _, err := s.GetAgent(ctx, orgID, reassignTo); err != nil {
		return 0, err
	}

	var moved int64
	err := s.store.WithTx(ctx, func(r *repositories.Repos) error {
		n, err := r.Properties.ReassignAgent(ctx, agentID, reassignTo)
		if err != nil {
			return err
		}
		moved = n
		return r.Agents.Delete(ctx, agentID)
	})
	if err != nil {
		return 0, err
	}
	return moved, nil
}
