package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
)

/* ───────────── DB handle ───────────── */

// DB is the query surface repositories are written against. Both
// *pgxpool.Pool and pgx.Tx satisfy it, so the same repository code runs
// pooled or inside a transaction.
type DB interface {
	Exec(ctx context.Context, sql string, arguments ...interface{}) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
}

// IsUniqueViolation reports whether err is a Postgres unique-index
// violation (SQLSTATE 23505). The unique indexes on slug and client
// contact columns are the authoritative guard behind the application
// level pre-checks.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

/* ───────────── repository bundle ───────────── */

// Repos bundles every repository bound to one DB handle.
type Repos struct {
	Organizations OrganizationRepository
	Agents        AgentRepository
	Clients       ClientRepository
	Properties    PropertyRepository
	Photos        PropertyPhotoRepository
	Videos        PropertyVideoRepository
	Notes         NoteRepository
	Domains       CustomDomainRepository
}

// NewRepos constructs the bundle over db (pool or transaction).
func NewRepos(db DB) *Repos {
	return &Repos{
		Organizations: NewOrganizationRepository(db),
		Agents:        NewAgentRepository(db),
		Clients:       NewClientRepository(db),
		Properties:    NewPropertyRepository(db),
		Photos:        NewPropertyPhotoRepository(db),
		Videos:        NewPropertyVideoRepository(db),
		Notes:         NewNoteRepository(db),
		Domains:       NewCustomDomainRepository(db),
	}
}

/* ───────────── store / transactions ───────────── */

// TxRunner is what services depend on: pool-bound repositories for
// plain reads/writes, and WithTx for multi-statement atomicity.
type TxRunner interface {
	Repos() *Repos
	WithTx(ctx context.Context, fn func(r *Repos) error) error
}

// Store is the production TxRunner over a pgx pool.
type Store struct {
	pool  *pgxpool.Pool
	repos *Repos
}

func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool, repos: NewRepos(pool)}
}

func (s *Store) Repos() *Repos {
	return s.repos
}

// WithTx runs fn with repositories bound to a single transaction,
// committing on nil and rolling back on error or panic.
func (s *Store) WithTx(ctx context.Context, fn func(r *Repos) error) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback(ctx)
			panic(p)
		}
	}()

	if err := fn(NewRepos(tx)); err != nil {
		_ = tx.Rollback(ctx)
		return err
	}
	return tx.Commit(ctx)
}
