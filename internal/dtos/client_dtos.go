package dtos

import (
	"strings"

	"github.com/google/uuid"

	"github.com/integration-ia/ceus-crm-backend/internal/models"
	"github.com/integration-ia/ceus-crm-backend/internal/utils"
)

// PhonePayload is one phone slot. Type must be MOBILE or HOME; a client
// holds at most one of each.
type PhonePayload struct {
	Number   string `json:"number" validate:"required"`
	Type     string `json:"type" validate:"required,oneof=MOBILE HOME"`
	WhatsApp bool   `json:"whatsapp"`
}

type EmailPayload struct {
	Address string `json:"address" validate:"required,email"`
}

// ClientPayload is the create/update submission for a client record.
type ClientPayload struct {
	FirstName     string         `json:"first_name" validate:"required"`
	LastName      string         `json:"last_name" validate:"required"`
	Type          string         `json:"type" validate:"required,oneof=BUYER OWNER RENTER"`
	ReceivesEmail bool           `json:"receives_email"`
	Phones        []PhonePayload `json:"phones,omitempty" validate:"omitempty,max=2,dive"`
	Emails        []EmailPayload `json:"emails,omitempty" validate:"omitempty,dive"`
}

// Validate applies the rules the struct tags cannot express: trimmed
// names, distinct phone types, no repeated email addresses.
func (p *ClientPayload) Validate() utils.FieldErrors {
	p.FirstName = strings.TrimSpace(p.FirstName)
	p.LastName = strings.TrimSpace(p.LastName)
	errs := utils.FieldErrors{}

	if p.FirstName == "" {
		errs["first_name"] = "first name is required"
	}
	if p.LastName == "" {
		errs["last_name"] = "last name is required"
	}
	if _, err := models.ParseClientType(p.Type); err != nil {
		errs["type"] = "unknown client type"
	}

	seenTypes := map[string]bool{}
	for i := range p.Phones {
		p.Phones[i].Number = strings.TrimSpace(p.Phones[i].Number)
		if _, err := models.ParsePhoneType(p.Phones[i].Type); err != nil {
			errs["phones"] = "phone type must be MOBILE or HOME"
			continue
		}
		if seenTypes[p.Phones[i].Type] {
			errs["phones"] = "at most one phone per type"
		}
		seenTypes[p.Phones[i].Type] = true
	}

	seenEmails := map[string]bool{}
	for i := range p.Emails {
		p.Emails[i].Address = strings.TrimSpace(strings.ToLower(p.Emails[i].Address))
		if seenEmails[p.Emails[i].Address] {
			errs["emails"] = "duplicate email address in submission"
		}
		seenEmails[p.Emails[i].Address] = true
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

// ContactNumbers returns the non-empty phone numbers in the payload.
func (p *ClientPayload) ContactNumbers() []string {
	out := make([]string, 0, len(p.Phones))
	for _, ph := range p.Phones {
		if ph.Number != "" {
			out = append(out, ph.Number)
		}
	}
	return out
}

// ContactEmails returns the non-empty email addresses in the payload.
func (p *ClientPayload) ContactEmails() []string {
	out := make([]string, 0, len(p.Emails))
	for _, e := range p.Emails {
		if e.Address != "" {
			out = append(out, e.Address)
		}
	}
	return out
}

type ClientResponse struct {
	Client *models.Client `json:"client"`
}

type IDResponse struct {
	ID uuid.UUID `json:"id"`
}
