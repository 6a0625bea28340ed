package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/integration-ia/ceus-crm-backend/internal/dtos"
	"github.com/integration-ia/ceus-crm-backend/internal/models"
	"github.com/integration-ia/ceus-crm-backend/internal/utils"
)

func agentPayload(email string) *dtos.AgentPayload {
	return &dtos.AgentPayload{
		FirstName: "Carlos",
		LastName:  "Ruiz",
		Email:     email,
		Role:      "AGENT",
	}
}

func TestCreateAgent(t *testing.T) {
	ctx := context.Background()
	svc := NewAgentService(newFakeStore())

	agent, err := svc.CreateAgent(ctx, uuid.New(), agentPayload("carlos@example.com"))
	require.NoError(t, err)
	assert.Equal(t, models.AgentRoleAgent, agent.Role)
}

func TestCreateAgentUnknownRole(t *testing.T) {
	ctx := context.Background()
	svc := NewAgentService(newFakeStore())

	payload := agentPayload("carlos@example.com")
	payload.Role = "SUPERVISOR"

	_, err := svc.CreateAgent(ctx, uuid.New(), payload)
	var valErr *utils.ValidationError
	require.ErrorAs(t, err, &valErr)
	assert.Contains(t, valErr.Fields, "role")
}

func TestDeleteAgentReassignsListings(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	svc := NewAgentService(store)

	orgID := uuid.New()
	leaving, err := svc.CreateAgent(ctx, orgID, agentPayload("leaving@example.com"))
	require.NoError(t, err)
	staying, err := svc.CreateAgent(ctx, orgID, agentPayload("staying@example.com"))
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		p := seedProperty(t, store, orgID)
		p.AgentID = leaving.ID
		require.NoError(t, store.properties().Update(ctx, p))
	}
	keep := seedProperty(t, store, orgID)
	keep.AgentID = staying.ID
	require.NoError(t, store.properties().Update(ctx, keep))

	moved, err := svc.DeleteAgent(ctx, orgID, leaving.ID, staying.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), moved)

	_, err = svc.GetAgent(ctx, orgID, leaving.ID)
	require.ErrorIs(t, err, utils.ErrNotFound)

	props, err := store.properties().ListByOrganizationID(ctx, orgID)
	require.NoError(t, err)
	for _, p := range props {
		assert.Equal(t, staying.ID, p.AgentID)
	}
}

func TestDeleteAgentCannotReassignToSelf(t *testing.T) {
	ctx := context.Background()
	svc := NewAgentService(newFakeStore())

	orgID := uuid.New()
	agent, err := svc.CreateAgent(ctx, orgID, agentPayload("solo@example.com"))
	require.NoError(t, err)

	_, err = svc.DeleteAgent(ctx, orgID, agent.ID, agent.ID)
	var valErr *utils.ValidationError
	require.ErrorAs(t, err, &valErr)
}

func TestDeleteAgentTargetMustBeInSameOrganization(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	svc := NewAgentService(store)

	orgID := uuid.New()
	leaving, err := svc.CreateAgent(ctx, orgID, agentPayload("leaving@example.com"))
	require.NoError(t, err)
	outsider, err := svc.CreateAgent(ctx, uuid.New(), agentPayload("outsider@example.com"))
	require.NoError(t, err)

	_, err = svc.DeleteAgent(ctx, orgID, leaving.ID, outsider.ID)
	require.ErrorIs(t, err, utils.ErrNotFound)
}

func TestUpdateAgentRole(t *testing.T) {
	ctx := context.Background()
	svc := NewAgentService(newFakeStore())

	orgID := uuid.New()
	agent, err := svc.CreateAgent(ctx, orgID, agentPayload("carlos@example.com"))
	require.NoError(t, err)

	payload := agentPayload("carlos@example.com")
	payload.Role = "ADMIN"
	updated, err := svc.UpdateAgent(ctx, orgID, agent.ID, payload)
	require.NoError(t, err)
	assert.Equal(t, models.AgentRoleAdmin, updated.Role)
}
