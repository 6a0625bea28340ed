package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

type ClientType string

const (
	ClientTypeBuyer  ClientType = "BUYER"
	ClientTypeOwner  ClientType = "OWNER"
	ClientTypeRenter ClientType = "RENTER"
)

func ParseClientType(s string) (ClientType, error) {
	switch ClientType(s) {
	case ClientTypeBuyer, ClientTypeOwner, ClientTypeRenter:
		return ClientType(s), nil
	default:
		return "", fmt.Errorf("invalid client type: %q", s)
	}
}

type PhoneType string

const (
	PhoneTypeMobile PhoneType = "MOBILE"
	PhoneTypeHome   PhoneType = "HOME"
)

func ParsePhoneType(s string) (PhoneType, error) {
	switch PhoneType(s) {
	case PhoneTypeMobile, PhoneTypeHome:
		return PhoneType(s), nil
	default:
		return "", fmt.Errorf("invalid phone type: %q", s)
	}
}

// Client is a person record scoped to one organization. Within an
// organization no two clients may share a phone number or email.
type Client struct {
	ID             uuid.UUID  `json:"id"`
	OrganizationID uuid.UUID  `json:"organization_id"`
	FirstName      string     `json:"first_name"`
	LastName       string     `json:"last_name"`
	Type           ClientType `json:"type"`
	ReceivesEmail  bool       `json:"receives_email"`
	CreatedAt      time.Time  `json:"created_at"`

	// Populated by the repository on reads.
	Phones []ClientPhone `json:"phones,omitempty"`
	Emails []ClientEmail `json:"emails,omitempty"`
}

// ClientPhone is keyed (client_id, type): at most one active MOBILE and
// one active HOME number per client.
type ClientPhone struct {
	ID       uuid.UUID `json:"id"`
	ClientID uuid.UUID `json:"client_id"`
	Number   string    `json:"number"`
	Type     PhoneType `json:"type"`
	WhatsApp bool      `json:"whatsapp"`
}

type ClientEmail struct {
	ID       uuid.UUID `json:"id"`
	ClientID uuid.UUID `json:"client_id"`
	Address  string    `json:"address"`
}
