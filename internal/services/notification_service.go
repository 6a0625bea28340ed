package services

import (
	"context"
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"github.com/integration-ia/ceus-crm-backend/internal/models"
	"github.com/integration-ia/ceus-crm-backend/internal/utils"
)

// Notifier announces a freshly created listing to the marketplace
// operator. Callers treat failures as non-fatal.
type Notifier interface {
	NotifyNewListing(ctx context.Context, p *models.Property) error
}

type sendgridNotifier struct {
	client    *sendgrid.Client
	fromEmail string
}

func NewSendgridNotifier(client *sendgrid.Client, fromEmail string) Notifier {
	return &sendgridNotifier{client: client, fromEmail: fromEmail}
}

const newListingEmailHTML = `
<h2>New listing shared with the marketplace</h2>
<p><strong>%s</strong> (%s)</p>
<p>Code: %s</p>
<p>Address: %s</p>
`

func (n *sendgridNotifier) NotifyNewListing(ctx context.Context, p *models.Property) error {
	from := mail.NewEmail(utils.OrganizationName+" Listings", n.fromEmail)
	to := mail.NewEmail("Marketplace", utils.MarketplaceNotificationEmail)

	subject := fmt.Sprintf("[New Listing] %s (%s)", p.Title, p.SequenceCode)
	plainTextContent := fmt.Sprintf(
		"A new listing was shared with the marketplace.\n\nTitle: %s\nCode: %s\nAddress: %s",
		p.Title, p.SequenceCode, p.Address,
	)
	htmlContent := fmt.Sprintf(newListingEmailHTML, p.Title, p.ListingType, p.SequenceCode, p.Address)

	msg := mail.NewSingleEmail(from, subject, to, plainTextContent, htmlContent)
	resp, err := n.client.Send(msg)
	if err != nil {
		return err
	}
	if resp.StatusCode >= 300 {
		return fmt.Errorf("sendgrid send failed: status %d", resp.StatusCode)
	}
	return nil
}
