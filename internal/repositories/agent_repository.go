package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"

	"github.com/integration-ia/ceus-crm-backend/internal/models"
)

/* ───────────── public interface ───────────── */

type AgentRepository interface {
	Create(ctx context.Context, a *models.Agent) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Agent, error)
	ListByOrganizationID(ctx context.Context, orgID uuid.UUID) ([]*models.Agent, error)
	Update(ctx context.Context, a *models.Agent) error
	Delete(ctx context.Context, id uuid.UUID) error
}

/* ───────────── implementation ───────────── */

type agentRepo struct {
	db DB
}

func NewAgentRepository(db DB) AgentRepository {
	return &agentRepo{db: db}
}

func (r *agentRepo) Create(ctx context.Context, a *models.Agent) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO agents (
			id, organization_id, first_name, last_name, email, role, created_at
		) VALUES ($1,$2,$3,$4,$5,$6, NOW())
	`, a.ID, a.OrganizationID, a.FirstName, a.LastName, a.Email, a.Role)
	return err
}

func (r *agentRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Agent, error) {
	row := r.db.QueryRow(ctx, baseSelectAgent()+" WHERE id=$1", id)
	return scanAgent(row)
}

func (r *agentRepo) ListByOrganizationID(ctx context.Context, orgID uuid.UUID) ([]*models.Agent, error) {
	rows, err := r.db.Query(ctx, baseSelectAgent()+" WHERE organization_id=$1 ORDER BY created_at", orgID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.Agent
	for rows.Next() {
		a, err := scanAgent(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *agentRepo) Update(ctx context.Context, a *models.Agent) error {
	_, err := r.db.Exec(ctx, `
		UPDATE agents SET first_name=$1, last_name=$2, email=$3, role=$4
		WHERE id=$5
	`, a.FirstName, a.LastName, a.Email, a.Role, a.ID)
	return err
}

func (r *agentRepo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.Exec(ctx, `DELETE FROM agents WHERE id=$1`, id)
	return err
}

/* ───────────── internals ───────────── */

func baseSelectAgent() string {
	return `
		SELECT id, organization_id, first_name, last_name, email, role, created_at
		FROM agents`
}

func scanAgent(row pgx.Row) (*models.Agent, error) {
	var a models.Agent
	if err := row.Scan(
		&a.ID, &a.OrganizationID, &a.FirstName, &a.LastName,
		&a.Email, &a.Role, &a.CreatedAt,
	); err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &a, nil
}
