package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/integration-ia/ceus-crm-backend/internal/dtos"
	"github.com/integration-ia/ceus-crm-backend/internal/models"
	"github.com/integration-ia/ceus-crm-backend/internal/repositories"
	"github.com/integration-ia/ceus-crm-backend/internal/utils"
)

// NoteService attaches free-text notes to properties and clients.
type NoteService struct {
	store repositories.TxRunner
}

func NewNoteService(store repositories.TxRunner) *NoteService {
	return &NoteService{store: store}
}

func (s *NoteService) CreateNote(ctx context.Context, orgID, authorID uuid.UUID, payload *dtos.NotePayload) (*models.Note, error) {
	if fields := payload.Validate(); fields != nil {
		return nil, utils.NewValidationError(fields)
	}

	r := s.store.Repos()
	if payload.PropertyID != nil {
		prop, err := r.Properties.GetByID(ctx, *payload.PropertyID)
		if err != nil {
			return nil, err
		}
		if prop == nil || prop.OrganizationID != orgID {
			return nil, utils.ErrNotFound
		}
	}
	if payload.ClientID != nil {
		client, err := r.Clients.GetByID(ctx, *payload.ClientID)
		if err != nil {
			return nil, err
		}
		if client == nil || client.OrganizationID != orgID {
			return nil, utils.ErrNotFound
		}
	}

	note := &models.Note{
		ID:             uuid.New(),
		OrganizationID: orgID,
		PropertyID:     payload.PropertyID,
		ClientID:       payload.ClientID,
		AuthorID:       authorID,
		Body:           payload.Body,
	}
	if err := r.Notes.Create(ctx, note); err != nil {
		return nil, err
	}
	return note, nil
}

func (s *NoteService) ListNotesByProperty(ctx context.Context, orgID, propertyID uuid.UUID) ([]*models.Note, error) {
	prop, err := s.store.Repos().Properties.GetByID(ctx, propertyID)
	if err != nil {
		return nil, err
	}
	if prop == nil || prop.OrganizationID != orgID {
		return nil, utils.ErrNotFound
	}
	return s.store.Repos().Notes.ListByPropertyID(ctx, propertyID)
}

func (s *NoteService) ListNotesByClient(ctx context.Context, orgID, clientID uuid.UUID) ([]*models.Note, error) {
	client, err := s.store.Repos().Clients.GetByID(ctx, clientID)
	if err != nil {
		return nil, err
	}
	if client == nil || client.OrganizationID != orgID {
		return nil, utils.ErrNotFound
	}
	return s.store.Repos().Notes.ListByClientID(ctx, clientID)
}

func (s *NoteService) UpdateNote(ctx context.Context, orgID, noteID uuid.UUID, body string) (*models.Note, error) {
	note, err := s.getVisible(ctx, orgID, noteID)
	if err != nil {
		return nil, err
	}
	note.Body = body
	if err := s.store.Repos().Notes.Update(ctx, note); err != nil {
		return nil, err
	}
	return note, nil
}

func (s *NoteService) DeleteNote(ctx context.Context, orgID, noteID uuid.UUID) error {
	if _, err := s.getVisible(ctx, orgID, noteID); err != nil {
		return err
	}
	return s.store.Repos().Notes.Delete(ctx, noteID)
}

func (s *NoteService) getVisible(ctx context.Context, orgID, noteID uuid.UUID) (*models.Note, error) {
	note, err := s.store.Repos().Notes.GetByID(ctx, noteID)
	if err != nil {
		return nil, err
	}
	if note == nil || note.OrganizationID != orgID {
		return nil, utils.ErrNotFound
	}
	return note, nil
}
