package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"

	"github.com/integration-ia/ceus-crm-backend/internal/models"
)

/* ───────────── public interface ───────────── */

type PropertyRepository interface {
	Create(ctx context.Context, p *models.Property) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Property, error)
	GetBySlug(ctx context.Context, slug string) (*models.Property, error)
	SlugExists(ctx context.Context, slug string) (bool, error)
	ListByOrganizationID(ctx context.Context, orgID uuid.UUID) ([]*models.Property, error)
	ListByAgentID(ctx context.Context, agentID uuid.UUID) ([]*models.Property, error)
	Update(ctx context.Context, p *models.Property) error
	ReassignAgent(ctx context.Context, fromAgentID, toAgentID uuid.UUID) (int64, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

/* ───────────── implementation ───────────── */

type propertyRepo struct {
	db DB
}

func NewPropertyRepository(db DB) PropertyRepository {
	return &propertyRepo{db: db}
}

// Create inserts the row; sequence_code comes from the DB sequence and
// is scanned back into p.
func (r *propertyRepo) Create(ctx context.Context, p *models.Property) error {
	row := r.db.QueryRow(ctx, `
		INSERT INTO properties (
			id, organization_id, agent_id, owner_id,
			title, slug, listing_type,
			sale_price_cents, rent_price_cents, tax_cents, fee_percent,
			address, city, latitude, longitude,
			bedrooms, bathrooms, parking_spaces, floor, area_m2,
			construction_year, description,
			sequence_code, created_at
		) VALUES (
			$1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20,$21,$22,
			'PROP-' || lpad(nextval('property_seq')::text, 6, '0'), NOW()
		)
		RETURNING sequence_code, created_at
	`,
		p.ID, p.OrganizationID, p.AgentID, p.OwnerID,
		p.Title, p.Slug, p.ListingType,
		p.SalePriceCents, p.RentPriceCents, p.TaxCents, p.FeePercent,
		p.Address, p.City, p.Latitude, p.Longitude,
		p.Bedrooms, p.Bathrooms, p.ParkingSpaces, p.Floor, p.AreaM2,
		p.ConstructionYear, p.Description,
	)
	return row.Scan(&p.SequenceCode, &p.CreatedAt)
}

func (r *propertyRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Property, error) {
	row := r.db.QueryRow(ctx, baseSelectProperty()+" WHERE id=$1", id)
	return scanProperty(row)
}

func (r *propertyRepo) GetBySlug(ctx context.Context, slug string) (*models.Property, error) {
	row := r.db.QueryRow(ctx, baseSelectProperty()+" WHERE slug=$1", slug)
	return scanProperty(row)
}

// SlugExists checks slug uniqueness globally, not per organization.
func (r *propertyRepo) SlugExists(ctx context.Context, slug string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM properties WHERE slug=$1)`, slug,
	).Scan(&exists)
	return exists, err
}

func (r *propertyRepo) ListByOrganizationID(ctx context.Context, orgID uuid.UUID) ([]*models.Property, error) {
	rows, err := r.db.Query(ctx, baseSelectProperty()+" WHERE organization_id=$1 ORDER BY created_at DESC", orgID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanProperties(rows)
}

func (r *propertyRepo) ListByAgentID(ctx context.Context, agentID uuid.UUID) ([]*models.Property, error) {
	rows, err := r.db.Query(ctx, baseSelectProperty()+" WHERE agent_id=$1 ORDER BY created_at DESC", agentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanProperties(rows)
}

// Update overwrites the scalar fields and the slug. Owner linkage is
// included because owner resolution runs in the same transaction.
func (r *propertyRepo) Update(ctx context.Context, p *models.Property) error {
	_, err := r.db.Exec(ctx, `
		UPDATE properties SET
			agent_id=$1, owner_id=$2, title=$3, slug=$4, listing_type=$5,
			sale_price_cents=$6, rent_price_cents=$7, tax_cents=$8, fee_percent=$9,
			address=$10, city=$11, latitude=$12, longitude=$13,
			bedrooms=$14, bathrooms=$15, parking_spaces=$16, floor=$17, area_m2=$18,
			construction_year=$19, description=$20
		WHERE id=$21
	`,
		p.AgentID, p.OwnerID, p.Title, p.Slug, p.ListingType,
		p.SalePriceCents, p.RentPriceCents, p.TaxCents, p.FeePercent,
		p.Address, p.City, p.Latitude, p.Longitude,
		p.Bedrooms, p.Bathrooms, p.ParkingSpaces, p.Floor, p.AreaM2,
		p.ConstructionYear, p.Description, p.ID,
	)
	return err
}

// ReassignAgent moves every listing of fromAgentID to toAgentID and
// returns how many rows moved.
func (r *propertyRepo) ReassignAgent(ctx context.Context, fromAgentID, toAgentID uuid.UUID) (int64, error) {
	tag, err := r.db.Exec(ctx,
		`UPDATE properties SET agent_id=$1 WHERE agent_id=$2`, toAgentID, fromAgentID)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func (r *propertyRepo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.Exec(ctx, `DELETE FROM properties WHERE id=$1`, id)
	return err
}

/* ───────────── internals ───────────── */

func baseSelectProperty() string {
	return `
		SELECT
			id, organization_id, agent_id, owner_id,
			title, slug, listing_type,
			sale_price_cents, rent_price_cents, tax_cents, fee_percent,
			address, city, latitude, longitude,
			bedrooms, bathrooms, parking_spaces, floor, area_m2,
			construction_year, description,
			sequence_code, created_at
		FROM properties`
}

func scanProperty(row pgx.Row) (*models.Property, error) {
	var p models.Property
	err := row.Scan(
		&p.ID, &p.OrganizationID, &p.AgentID, &p.OwnerID,
		&p.Title, &p.Slug, &p.ListingType,
		&p.SalePriceCents, &p.RentPriceCents, &p.TaxCents, &p.FeePercent,
		&p.Address, &p.City, &p.Latitude, &p.Longitude,
		&p.Bedrooms, &p.Bathrooms, &p.ParkingSpaces, &p.Floor, &p.AreaM2,
		&p.ConstructionYear, &p.Description,
		&p.SequenceCode, &p.CreatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func scanProperties(rows pgx.Rows) ([]*models.Property, error) {
	var out []*models.Property
	for rows.Next() {
		p, err := scanProperty(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
