package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"

	"github.com/integration-ia/ceus-crm-backend/internal/models"
)

type OrganizationRepository interface {
	Create(ctx context.Context, o *models.Organization) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Organization, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type organizationRepo struct {
	db DB
}

func NewOrganizationRepository(db DB) OrganizationRepository {
	return &organizationRepo{db: db}
}

func (r *organizationRepo) Create(ctx context.Context, o *models.Organization) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO organizations (id, name, created_at)
		VALUES ($1, $2, NOW())
	`, o.ID, o.Name)
	return err
}

func (r *organizationRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Organization, error) {
	row := r.db.QueryRow(ctx, `
		SELECT id, name, created_at FROM organizations WHERE id=$1
	`, id)

	var o models.Organization
	if err := row.Scan(&o.ID, &o.Name, &o.CreatedAt); err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &o, nil
}

func (r *organizationRepo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.Exec(ctx, `DELETE FROM organizations WHERE id=$1`, id)
	return err
}
