package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"

	"github.com/integration-ia/ceus-crm-backend/internal/models"
)

/* ───────────── public interface ───────────── */

type NoteRepository interface {
	Create(ctx context.Context, n *models.Note) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Note, error)
	ListByPropertyID(ctx context.Context, propID uuid.UUID) ([]*models.Note, error)
	ListByClientID(ctx context.Context, clientID uuid.UUID) ([]*models.Note, error)
	Update(ctx context.Context, n *models.Note) error
	Delete(ctx context.Context, id uuid.UUID) error
}

/* ───────────── implementation ───────────── */

type noteRepo struct {
	db DB
}

func NewNoteRepository(db DB) NoteRepository {
	return &noteRepo{db: db}
}

func (r *noteRepo) Create(ctx context.Context, n *models.Note) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO notes (
			id, organization_id, property_id, client_id, author_id, body, created_at
		) VALUES ($1,$2,$3,$4,$5,$6, NOW())
	`, n.ID, n.OrganizationID, n.PropertyID, n.ClientID, n.AuthorID, n.Body)
	return err
}

func (r *noteRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Note, error) {
	row := r.db.QueryRow(ctx, baseSelectNote()+" WHERE id=$1", id)
	return scanNote(row)
}

func (r *noteRepo) ListByPropertyID(ctx context.Context, propID uuid.UUID) ([]*models.Note, error) {
	rows, err := r.db.Query(ctx, baseSelectNote()+" WHERE property_id=$1 ORDER BY created_at DESC", propID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanNotes(rows)
}

func (r *noteRepo) ListByClientID(ctx context.Context, clientID uuid.UUID) ([]*models.Note, error) {
	rows, err := r.db.Query(ctx, baseSelectNote()+" WHERE client_id=$1 ORDER BY created_at DESC", clientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanNotes(rows)
}

func (r *noteRepo) Update(ctx context.Context, n *models.Note) error {
	tag, err := r.db.Exec(ctx, `UPDATE notes SET body=$1 WHERE id=$2`, n.Body, n.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *noteRepo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.Exec(ctx, `DELETE FROM notes WHERE id=$1`, id)
	return err
}

/* ───────────── internals ───────────── */

func baseSelectNote() string {
	return `
		SELECT id, organization_id, property_id, client_id, author_id, body, created_at
		FROM notes`
}

func scanNote(row pgx.Row) (*models.Note, error) {
	var n models.Note
	if err := row.Scan(
		&n.ID, &n.OrganizationID, &n.PropertyID, &n.ClientID,
		&n.AuthorID, &n.Body, &n.CreatedAt,
	); err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &n, nil
}

func scanNotes(rows pgx.Rows) ([]*models.Note, error) {
	var out []*models.Note
	for rows.Next() {
		n, err := scanNote(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, rows.Err()
}
