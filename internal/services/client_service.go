package services

import (
	"context"

	"github.com/google/uuid"
	twilio "github.com/twilio/twilio-go"

	"github.com/integration-ia/ceus-crm-backend/internal/dtos"
	"github.com/integration-ia/ceus-crm-backend/internal/models"
	"github.com/integration-ia/ceus-crm-backend/internal/repositories"
	"github.com/integration-ia/ceus-crm-backend/internal/utils"
)

// ClientService owns client CRUD and the organization-wide contact
// uniqueness rule. Phone/email deliverability checks run behind flags
// so local development works without Twilio/SendGrid credentials.
type ClientService struct {
	store repositories.TxRunner

	twilioClient   *twilio.RestClient
	sendgridAPIKey string
	validatePhones bool
	validateEmails bool
}

func NewClientService(
	store repositories.TxRunner,
	twilioClient *twilio.RestClient,
	sendgridAPIKey string,
	validatePhones, validateEmails bool,
) *ClientService {
	return &ClientService{
		store:          store,
		twilioClient:   twilioClient,
		sendgridAPIKey: sendgridAPIKey,
		validatePhones: validatePhones,
		validateEmails: validateEmails,
	}
}

func (s *ClientService) CreateClient(ctx context.Context, orgID uuid.UUID, payload *dtos.ClientPayload) (*models.Client, error) {
	if fields := payload.Validate(); fields != nil {
		return nil, utils.NewValidationError(fields)
	}
	if err := s.verifyContacts(ctx, payload); err != nil {
		return nil, err
	}

	client := &models.Client{
		ID:             uuid.New(),
		OrganizationID: orgID,
		FirstName:      payload.FirstName,
		LastName:       payload.LastName,
		Type:           models.ClientType(payload.Type),
		ReceivesEmail:  payload.ReceivesEmail,
	}
	for _, ph := range payload.Phones {
		client.Phones = append(client.Phones, models.ClientPhone{
			Number: ph.Number, Type: models.PhoneType(ph.Type), WhatsApp: ph.WhatsApp,
		})
	}
	for _, e := range payload.Emails {
		client.Emails = append(client.Emails, models.ClientEmail{Address: e.Address})
	}

	err := s.store.WithTx(ctx, func(r *repositories.Repos) error {
		matches, err := r.Clients.FindByContact(ctx, orgID,
			payload.ContactNumbers(), payload.ContactEmails(), nil)
		if err != nil {
			return err
		}
		if len(matches) > 0 {
			return utils.ErrDuplicateContact
		}
		if err := r.Clients.Create(ctx, client); err != nil {
			if repositories.IsUniqueViolation(err) {
				return utils.ErrDuplicateContact
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return client, nil
}

func (s *ClientService) GetClient(ctx context.Context, orgID, clientID uuid.UUID) (*models.Client, error) {
	client, err := s.store.Repos().Clients.GetByID(ctx, clientID)
	if err != nil {
		return nil, err
	}
	if client == nil || client.OrganizationID != orgID {
		return nil, utils.ErrNotFound
	}
	return client, nil
}

func (s *ClientService) ListClients(ctx context.Context, orgID uuid.UUID) ([]*models.Client, error) {
	return s.store.Repos().Clients.ListByOrganizationID(ctx, orgID)
}

// UpdateClient replaces the scalar fields and reconciles the contact
// slots: submitted phones upsert their (client, type) slot, submitted
// emails replace the previous set.
func (s *ClientService) UpdateClient(ctx context.Context, orgID, clientID uuid.UUID, payload *dtos.ClientPayload) (*models.Client, error) {
	if fields := payload.Validate(); fields != nil {
		return nil, utils.NewValidationError(fields)
	}
	if err := s.verifyContacts(ctx, payload); err != nil {
		return nil, err
	}

	existing, err := s.GetClient(ctx, orgID, clientID)
	if err != nil {
		return nil, err
	}

	err = s.store.WithTx(ctx, func(r *repositories.Repos) error {
		matches, err := r.Clients.FindByContact(ctx, orgID,
			payload.ContactNumbers(), payload.ContactEmails(), &clientID)
		if err != nil {
			return err
		}
		if len(matches) > 0 {
			return utils.ErrDuplicateContact
		}

		existing.FirstName = payload.FirstName
		existing.LastName = payload.LastName
		existing.Type = models.ClientType(payload.Type)
		existing.ReceivesEmail = payload.ReceivesEmail
		if err := r.Clients.Update(ctx, existing); err != nil {
			return err
		}

		submitted := map[models.PhoneType]bool{}
		for _, ph := range payload.Phones {
			submitted[models.PhoneType(ph.Type)] = true
			if err := r.Clients.UpsertPhone(ctx, &models.ClientPhone{
				ClientID: clientID,
				Number:   ph.Number,
				Type:     models.PhoneType(ph.Type),
				WhatsApp: ph.WhatsApp,
			}); err != nil {
				return err
			}
		}
		for _, prev := range existing.Phones {
			if !submitted[prev.Type] {
				if err := r.Clients.DeletePhone(ctx, clientID, prev.Type); err != nil {
					return err
				}
			}
		}

		keep := map[string]bool{}
		for _, e := range payload.Emails {
			keep[e.Address] = true
		}
		for _, prev := range existing.Emails {
			if !keep[prev.Address] {
				if err := r.Clients.DeleteEmail(ctx, prev.ID); err != nil {
					return err
				}
			}
		}
		have := map[string]bool{}
		for _, prev := range existing.Emails {
			have[prev.Address] = true
		}
		for _, e := range payload.Emails {
			if !have[e.Address] {
				if err := r.Clients.AddEmail(ctx, &models.ClientEmail{
					ClientID: clientID, Address: e.Address,
				}); err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.GetClient(ctx, orgID, clientID)
}

func (s *ClientService) DeleteClient(ctx context.Context, orgID, clientID uuid.UUID) error {
	if _, err := s.GetClient(ctx, orgID, clientID); err != nil {
		return err
	}
	return s.store.Repos().Clients.Delete(ctx, clientID)
}

// verifyContacts runs the optional deliverability checks on every
// submitted phone and email.
func (s *ClientService) verifyContacts(ctx context.Context, payload *dtos.ClientPayload) error {
	for _, ph := range payload.Phones {
		ok, err := utils.ValidatePhoneNumber(ctx, ph.Number, s.validatePhones, s.twilioClient)
		if err != nil {
			return err
		}
		if !ok {
			return utils.NewValidationError(utils.FieldErrors{"phones": "phone number is not valid"})
		}
	}
	for _, e := range payload.Emails {
		ok, err := utils.ValidateEmail(ctx, s.sendgridAPIKey, e.Address, s.validateEmails)
		if err != nil {
			return err
		}
		if !ok {
			return utils.NewValidationError(utils.FieldErrors{"emails": "email address is not valid"})
		}
	}
	return nil
}
