package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"

	"github.com/integration-ia/ceus-crm-backend/internal/models"
)

/* ───────────── public interface ───────────── */

type PropertyPhotoRepository interface {
	Create(ctx context.Context, ph *models.PropertyPhoto) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.PropertyPhoto, error)
	ListByPropertyID(ctx context.Context, propID uuid.UUID) ([]*models.PropertyPhoto, error)
	UpdateFlags(ctx context.Context, id uuid.UUID, isCover bool) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteByPropertyID(ctx context.Context, propID uuid.UUID) error
}

/* ───────────── implementation ───────────── */

type propertyPhotoRepo struct {
	db DB
}

func NewPropertyPhotoRepository(db DB) PropertyPhotoRepository {
	return &propertyPhotoRepo{db: db}
}

func (r *propertyPhotoRepo) Create(ctx context.Context, ph *models.PropertyPhoto) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO property_photos (
			id, property_id, remote_id, filename, is_cover, uploaded_at
		) VALUES ($1,$2,$3,$4,$5, NOW())
	`, ph.ID, ph.PropertyID, ph.RemoteID, ph.Filename, ph.IsCover)
	return err
}

func (r *propertyPhotoRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.PropertyPhoto, error) {
	row := r.db.QueryRow(ctx, baseSelectPhoto()+" WHERE id=$1", id)
	return scanPhoto(row)
}

func (r *propertyPhotoRepo) ListByPropertyID(ctx context.Context, propID uuid.UUID) ([]*models.PropertyPhoto, error) {
	rows, err := r.db.Query(ctx, baseSelectPhoto()+" WHERE property_id=$1 ORDER BY uploaded_at", propID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.PropertyPhoto
	for rows.Next() {
		ph, err := scanPhoto(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, ph)
	}
	return out, rows.Err()
}

func (r *propertyPhotoRepo) UpdateFlags(ctx context.Context, id uuid.UUID, isCover bool) error {
	tag, err := r.db.Exec(ctx, `UPDATE property_photos SET is_cover=$1 WHERE id=$2`, isCover, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *propertyPhotoRepo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.Exec(ctx, `DELETE FROM property_photos WHERE id=$1`, id)
	return err
}

func (r *propertyPhotoRepo) DeleteByPropertyID(ctx context.Context, propID uuid.UUID) error {
	_, err := r.db.Exec(ctx, `DELETE FROM property_photos WHERE property_id=$1`, propID)
	return err
}

/* ───────────── internals ───────────── */

func baseSelectPhoto() string {
	return `
		SELECT id, property_id, remote_id, filename, is_cover, uploaded_at
		FROM property_photos`
}

func scanPhoto(row pgx.Row) (*models.PropertyPhoto, error) {
	var ph models.PropertyPhoto
	if err := row.Scan(
		&ph.ID, &ph.PropertyID, &ph.RemoteID, &ph.Filename, &ph.IsCover, &ph.UploadedAt,
	); err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &ph, nil
}
