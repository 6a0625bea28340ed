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

func seedProperty(t *testing.T, store *fakeStore, orgID uuid.UUID) *models.Property {
	t.Helper()
	p := &models.Property{
		ID:             uuid.New(),
		OrganizationID: orgID,
		Title:          "Piso céntrico",
	}
	require.NoError(t, store.properties().Create(context.Background(), p))
	return p
}

func TestCreateNoteOnProperty(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	svc := NewNoteService(store)

	orgID := uuid.New()
	prop := seedProperty(t, store, orgID)

	note, err := svc.CreateNote(ctx, orgID, uuid.New(), &dtos.NotePayload{
		PropertyID: &prop.ID,
		Body:       "Llamar al propietario el lunes",
	})
	require.NoError(t, err)

	notes, err := svc.ListNotesByProperty(ctx, orgID, prop.ID)
	require.NoError(t, err)
	require.Len(t, notes, 1)
	assert.Equal(t, note.ID, notes[0].ID)
}

func TestCreateNoteRequiresExactlyOneTarget(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	svc := NewNoteService(store)

	orgID := uuid.New()
	prop := seedProperty(t, store, orgID)
	client, err := newClientService(store).CreateClient(ctx, orgID, buyerPayload())
	require.NoError(t, err)

	var valErr *utils.ValidationError

	// Neither target.
	_, err = svc.CreateNote(ctx, orgID, uuid.New(), &dtos.NotePayload{Body: "x"})
	require.ErrorAs(t, err, &valErr)

	// Both targets.
	_, err = svc.CreateNote(ctx, orgID, uuid.New(), &dtos.NotePayload{
		PropertyID: &prop.ID,
		ClientID:   &client.ID,
		Body:       "x",
	})
	require.ErrorAs(t, err, &valErr)
}

func TestCreateNoteOnForeignPropertyRejected(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	svc := NewNoteService(store)

	prop := seedProperty(t, store, uuid.New())

	_, err := svc.CreateNote(ctx, uuid.New(), uuid.New(), &dtos.NotePayload{
		PropertyID: &prop.ID,
		Body:       "no debería guardarse",
	})
	require.ErrorIs(t, err, utils.ErrNotFound)
}

func TestUpdateAndDeleteNote(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	svc := NewNoteService(store)

	orgID := uuid.New()
	prop := seedProperty(t, store, orgID)
	note, err := svc.CreateNote(ctx, orgID, uuid.New(), &dtos.NotePayload{
		PropertyID: &prop.ID,
		Body:       "borrador",
	})
	require.NoError(t, err)

	updated, err := svc.UpdateNote(ctx, orgID, note.ID, "versión final")
	require.NoError(t, err)
	assert.Equal(t, "versión final", updated.Body)

	// Another organization cannot touch it.
	_, err = svc.UpdateNote(ctx, uuid.New(), note.ID, "intruso")
	require.ErrorIs(t, err, utils.ErrNotFound)

	require.NoError(t, svc.DeleteNote(ctx, orgID, note.ID))
	notes, err := svc.ListNotesByProperty(ctx, orgID, prop.ID)
	require.NoError(t, err)
	assert.Empty(t, notes)
}
