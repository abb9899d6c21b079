package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/aussiebroadwan/accounts/internal/account/domain"
	"github.com/aussiebroadwan/accounts/internal/account/store"
	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"
)

const uniqueViolation = "23505"

// dbtx is satisfied by both *sql.DB and *sql.Tx.
type dbtx interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type Store struct {
	db *sql.DB
}

// NewStore connects to postgres using a pgx connection string.
func NewStore(ctx context.Context, dsn string) (*Store, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return NewFromDB(db), nil
}

// NewFromDB wraps an existing handle. The Store takes ownership of db.
func NewFromDB(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Close() error { return s.db.Close() }

func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *Store) Tx(ctx context.Context) (store.Tx, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	return &txStore{tx: tx}, nil
}

func (s *Store) WithTx(ctx context.Context, fn func(tx store.Tx) error) error {
	tx, err := s.Tx(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit()
}

func (s *Store) Accounts() store.Accounts { return &accountsRepo{db: s.db} }

type txStore struct {
	tx *sql.Tx
}

func (t *txStore) Commit() error                  { return t.tx.Commit() }
func (t *txStore) Rollback() error                { return t.tx.Rollback() }
func (t *txStore) Close() error                   { return nil }
func (t *txStore) Ping(ctx context.Context) error { return nil }
func (t *txStore) ApplyMigrations() error         { return nil }
func (t *txStore) Accounts() store.Accounts       { return &accountsRepo{db: t.tx} }

func (t *txStore) Tx(ctx context.Context) (store.Tx, error) {
	return nil, sql.ErrTxDone
}

func (t *txStore) WithTx(ctx context.Context, fn func(tx store.Tx) error) error {
	return sql.ErrTxDone
}

func mapNotFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return store.ErrNotFound
	}
	return err
}

func mapUnique(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != uniqueViolation {
		return err
	}
	switch pgErr.ConstraintName {
	case "accounts_login_key":
		return store.ErrLoginTaken
	case "accounts_email_key":
		return store.ErrEmailTaken
	default:
		return store.ErrAlreadyExists
	}
}

type accountRow struct {
	ID             string
	Login          string
	Email          string
	Verified       bool
	PasswordDigest string
	LinkHash       sql.NullString
	LinkCreatedAt  sql.NullTime
	CreatedAt      sql.NullTime
	UpdatedAt      sql.NullTime
}

func (r *accountRow) dest() []any {
	return []any{
		&r.ID, &r.Login, &r.Email, &r.Verified, &r.PasswordDigest,
		&r.LinkHash, &r.LinkCreatedAt, &r.CreatedAt, &r.UpdatedAt,
	}
}

func mapAccount(row accountRow) domain.Account {
	a := domain.Account{
		ID:             row.ID,
		Login:          row.Login,
		Email:          row.Email,
		Verified:       row.Verified,
		PasswordDigest: row.PasswordDigest,
		CreatedAt:      row.CreatedAt.Time.UTC(),
		UpdatedAt:      row.UpdatedAt.Time.UTC(),
	}
	if row.LinkHash.Valid {
		a.Link = &domain.VerificationLink{
			AddressHash: row.LinkHash.String,
			CreatedAt:   row.LinkCreatedAt.Time.UTC(),
		}
	}
	return a
}
