package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"

	"github.com/integration-ia/ceus-crm-backend/internal/models"
)

/* ───────────── public interface ───────────── */

type ClientRepository interface {
	Create(ctx context.Context, c *models.Client) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Client, error)
	ListByOrganizationID(ctx context.Context, orgID uuid.UUID) ([]*models.Client, error)
	Update(ctx context.Context, c *models.Client) error
	Delete(ctx context.Context, id uuid.UUID) error

	// FindByContact returns clients in the organization holding any of
	// the given phone numbers or email addresses. Empty inputs are
	// skipped. excludeID, when non-nil, drops that client from the
	// result (update path checking everyone but itself).
	FindByContact(ctx context.Context, orgID uuid.UUID, numbers, emails []string, excludeID *uuid.UUID) ([]*models.Client, error)

	// UpsertPhone writes the (client_id, type) phone slot.
	UpsertPhone(ctx context.Context, p *models.ClientPhone) error
	DeletePhone(ctx context.Context, clientID uuid.UUID, phoneType models.PhoneType) error

	AddEmail(ctx context.Context, e *models.ClientEmail) error
	DeleteEmail(ctx context.Context, id uuid.UUID) error
}

/* ───────────── implementation ───────────── */

type clientRepo struct {
	db DB
}

func NewClientRepository(db DB) ClientRepository {
	return &clientRepo{db: db}
}

/* ---------- create ---------- */

func (r *clientRepo) Create(ctx context.Context, c *models.Client) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO clients (
			id, organization_id, first_name, last_name, type, receives_email, created_at
		) VALUES ($1,$2,$3,$4,$5,$6, NOW())
	`, c.ID, c.OrganizationID, c.FirstName, c.LastName, c.Type, c.ReceivesEmail)
	if err != nil {
		return err
	}

	for i := range c.Phones {
		c.Phones[i].ClientID = c.ID
		if err := r.UpsertPhone(ctx, &c.Phones[i]); err != nil {
			return err
		}
	}
	for i := range c.Emails {
		c.Emails[i].ClientID = c.ID
		if err := r.AddEmail(ctx, &c.Emails[i]); err != nil {
			return err
		}
	}
	return nil
}

/* ---------- reads ---------- */

func (r *clientRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Client, error) {
	row := r.db.QueryRow(ctx, baseSelectClient()+" WHERE id=$1", id)
	c, err := scanClient(row)
	if err != nil || c == nil {
		return c, err
	}
	if err := r.loadContacts(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (r *clientRepo) ListByOrganizationID(ctx context.Context, orgID uuid.UUID) ([]*models.Client, error) {
	rows, err := r.db.Query(ctx, baseSelectClient()+" WHERE organization_id=$1 ORDER BY created_at", orgID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out, err := scanClients(rows)
	if err != nil {
		return nil, err
	}
	for _, c := range out {
		if err := r.loadContacts(ctx, c); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (r *clientRepo) FindByContact(
	ctx context.Context,
	orgID uuid.UUID,
	numbers, emails []string,
	excludeID *uuid.UUID,
) ([]*models.Client, error) {
	nums := dropEmpty(numbers)
	addrs := dropEmpty(emails)
	if len(nums) == 0 && len(addrs) == 0 {
		return nil, nil
	}

	sql := baseSelectClient() + `
		WHERE organization_id=$1
		  AND (
			id IN (SELECT client_id FROM client_phones WHERE number = ANY($2))
			OR id IN (SELECT client_id FROM client_emails WHERE address = ANY($3))
		  )`
	args := []any{orgID, nums, addrs}
	if excludeID != nil {
		sql += ` AND id <> $4`
		args = append(args, *excludeID)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanClients(rows)
}

/* ---------- update / delete ---------- */

func (r *clientRepo) Update(ctx context.Context, c *models.Client) error {
	_, err := r.db.Exec(ctx, `
		UPDATE clients SET first_name=$1, last_name=$2, type=$3, receives_email=$4
		WHERE id=$5
	`, c.FirstName, c.LastName, c.Type, c.ReceivesEmail, c.ID)
	return err
}

func (r *clientRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM client_phones WHERE client_id=$1`, id); err != nil {
		return err
	}
	if _, err := r.db.Exec(ctx, `DELETE FROM client_emails WHERE client_id=$1`, id); err != nil {
		return err
	}
	_, err := r.db.Exec(ctx, `DELETE FROM clients WHERE id=$1`, id)
	return err
}

/* ---------- contacts ---------- */

func (r *clientRepo) UpsertPhone(ctx context.Context, p *models.ClientPhone) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	_, err := r.db.Exec(ctx, `
		INSERT INTO client_phones (id, client_id, number, type, whatsapp)
		VALUES ($1,$2,$3,$4,$5)
		ON CONFLICT (client_id, type)
		DO UPDATE SET number=EXCLUDED.number, whatsapp=EXCLUDED.whatsapp
	`, p.ID, p.ClientID, p.Number, p.Type, p.WhatsApp)
	return err
}

func (r *clientRepo) DeletePhone(ctx context.Context, clientID uuid.UUID, phoneType models.PhoneType) error {
	_, err := r.db.Exec(ctx, `DELETE FROM client_phones WHERE client_id=$1 AND type=$2`, clientID, phoneType)
	return err
}

func (r *clientRepo) AddEmail(ctx context.Context, e *models.ClientEmail) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	_, err := r.db.Exec(ctx, `
		INSERT INTO client_emails (id, client_id, address)
		VALUES ($1,$2,$3)
	`, e.ID, e.ClientID, e.Address)
	return err
}

func (r *clientRepo) DeleteEmail(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.Exec(ctx, `DELETE FROM client_emails WHERE id=$1`, id)
	return err
}

func (r *clientRepo) loadContacts(ctx context.Context, c *models.Client) error {
	phoneRows, err := r.db.Query(ctx, `
		SELECT id, client_id, number, type, whatsapp
		FROM client_phones WHERE client_id=$1 ORDER BY type
	`, c.ID)
	if err != nil {
		return err
	}
	defer phoneRows.Close()
	for phoneRows.Next() {
		var p models.ClientPhone
		if err := phoneRows.Scan(&p.ID, &p.ClientID, &p.Number, &p.Type, &p.WhatsApp); err != nil {
			return err
		}
		c.Phones = append(c.Phones, p)
	}
	if err := phoneRows.Err(); err != nil {
		return err
	}

	emailRows, err := r.db.Query(ctx, `
		SELECT id, client_id, address
		FROM client_emails WHERE client_id=$1 ORDER BY address
	`, c.ID)
	if err != nil {
		return err
	}
	defer emailRows.Close()
	for emailRows.Next() {
		var e models.ClientEmail
		if err := emailRows.Scan(&e.ID, &e.ClientID, &e.Address); err != nil {
			return err
		}
		c.Emails = append(c.Emails, e)
	}
	return emailRows.Err()
}

/* ───────────── internals ───────────── */

func baseSelectClient() string {
	return `
		SELECT id, organization_id, first_name, last_name, type, receives_email, created_at
		FROM clients`
}

func scanClient(row pgx.Row) (*models.Client, error) {
	var c models.Client
	if err := row.Scan(
		&c.ID, &c.OrganizationID, &c.FirstName, &c.LastName,
		&c.Type, &c.ReceivesEmail, &c.CreatedAt,
	); err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

func scanClients(rows pgx.Rows) ([]*models.Client, error) {
	var out []*models.Client
	for rows.Next() {
		c, err := scanClient(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func dropEmpty(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}
