package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"

	"github.com/integration-ia/ceus-crm-backend/internal/models"
)

/* ───────────── public interface ───────────── */

type PropertyVideoRepository interface {
	Create(ctx context.Context, v *models.PropertyVideo) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.PropertyVideo, error)
	ListByPropertyID(ctx context.Context, propID uuid.UUID) ([]*models.PropertyVideo, error)
	Update(ctx context.Context, v *models.PropertyVideo) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteByPropertyID(ctx context.Context, propID uuid.UUID) error
}

/* ───────────── implementation ───────────── */

type propertyVideoRepo struct {
	db DB
}

func NewPropertyVideoRepository(db DB) PropertyVideoRepository {
	return &propertyVideoRepo{db: db}
}

func (r *propertyVideoRepo) Create(ctx context.Context, v *models.PropertyVideo) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO property_videos (id, property_id, url, platform)
		VALUES ($1,$2,$3,$4)
	`, v.ID, v.PropertyID, v.URL, v.Platform)
	return err
}

func (r *propertyVideoRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.PropertyVideo, error) {
	row := r.db.QueryRow(ctx, baseSelectVideo()+" WHERE id=$1", id)
	return scanVideo(row)
}

func (r *propertyVideoRepo) ListByPropertyID(ctx context.Context, propID uuid.UUID) ([]*models.PropertyVideo, error) {
	rows, err := r.db.Query(ctx, baseSelectVideo()+" WHERE property_id=$1 ORDER BY url", propID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.PropertyVideo
	for rows.Next() {
		v, err := scanVideo(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

func (r *propertyVideoRepo) Update(ctx context.Context, v *models.PropertyVideo) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE property_videos SET url=$1, platform=$2 WHERE id=$3
	`, v.URL, v.Platform, v.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *propertyVideoRepo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.Exec(ctx, `DELETE FROM property_videos WHERE id=$1`, id)
	return err
}

func (r *propertyVideoRepo) DeleteByPropertyID(ctx context.Context, propID uuid.UUID) error {
	_, err := r.db.Exec(ctx, `DELETE FROM property_videos WHERE property_id=$1`, propID)
	return err
}

/* ───────────── internals ───────────── */

func baseSelectVideo() string {
	return `
		SELECT id, property_id, url, platform
		FROM property_videos`
}

func scanVideo(row pgx.Row) (*models.PropertyVideo, error) {
	var v models.PropertyVideo
	if err := row.Scan(&v.ID, &v.PropertyID, &v.URL, &v.Platform); err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &v, nil
}
