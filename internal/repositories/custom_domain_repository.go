package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"

	"github.com/integration-ia/ceus-crm-backend/internal/models"
)

/* ───────────── public interface ───────────── */

type CustomDomainRepository interface {
	Create(ctx context.Context, d *models.CustomDomain) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.CustomDomain, error)
	GetByDomain(ctx context.Context, domain string) (*models.CustomDomain, error)
	ListByOrganizationID(ctx context.Context, orgID uuid.UUID) ([]*models.CustomDomain, error)

	// ListNonActive returns every domain still waiting on verification,
	// oldest check first. The periodic sweep walks this list.
	ListNonActive(ctx context.Context) ([]*models.CustomDomain, error)

	UpdateStatus(ctx context.Context, id uuid.UUID, status models.DomainStatus) error
	Delete(ctx context.Context, id uuid.UUID) error
}

/* ───────────── implementation ───────────── */

type customDomainRepo struct {
	db DB
}

func NewCustomDomainRepository(db DB) CustomDomainRepository {
	return &customDomainRepo{db: db}
}

func (r *customDomainRepo) Create(ctx context.Context, d *models.CustomDomain) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO custom_domains (
			id, organization_id, domain, status, last_checked_at, created_at
		) VALUES ($1,$2,$3,$4,$5, NOW())
	`, d.ID, d.OrganizationID, d.Domain, d.Status, d.LastCheckedAt)
	return err
}

func (r *customDomainRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.CustomDomain, error) {
	row := r.db.QueryRow(ctx, baseSelectCustomDomain()+" WHERE id=$1", id)
	return scanCustomDomain(row)
}

func (r *customDomainRepo) GetByDomain(ctx context.Context, domain string) (*models.CustomDomain, error) {
	row := r.db.QueryRow(ctx, baseSelectCustomDomain()+" WHERE domain=$1", domain)
	return scanCustomDomain(row)
}

func (r *customDomainRepo) ListByOrganizationID(ctx context.Context, orgID uuid.UUID) ([]*models.CustomDomain, error) {
	rows, err := r.db.Query(ctx, baseSelectCustomDomain()+" WHERE organization_id=$1 ORDER BY created_at", orgID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanCustomDomains(rows)
}

func (r *customDomainRepo) ListNonActive(ctx context.Context) ([]*models.CustomDomain, error) {
	rows, err := r.db.Query(ctx, baseSelectCustomDomain()+`
		WHERE status <> $1
		ORDER BY last_checked_at NULLS FIRST
	`, models.DomainStatusActive)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanCustomDomains(rows)
}

func (r *customDomainRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status models.DomainStatus) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE custom_domains SET status=$1, last_checked_at=NOW() WHERE id=$2
	`, status, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *customDomainRepo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.Exec(ctx, `DELETE FROM custom_domains WHERE id=$1`, id)
	return err
}

/* ───────────── internals ───────────── */

func baseSelectCustomDomain() string {
	return `
		SELECT id, organization_id, domain, status, last_checked_at, created_at
		FROM custom_domains`
}

func scanCustomDomain(row pgx.Row) (*models.CustomDomain, error) {
	var d models.CustomDomain
	if err := row.Scan(
		&d.ID, &d.OrganizationID, &d.Domain, &d.Status, &d.LastCheckedAt, &d.CreatedAt,
	); err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &d, nil
}

func scanCustomDomains(rows pgx.Rows) ([]*models.CustomDomain, error) {
	var out []*models.CustomDomain
	for rows.Next() {
		d, err := scanCustomDomain(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}
