package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/aussiebroadwan/accounts/internal/account/domain"
	"github.com/aussiebroadwan/accounts/internal/account/store"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// dbtx is satisfied by both *sql.DB and *sql.Tx.
type dbtx interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type Store struct {
	db  *sql.DB
	dsn string
}

// NewStore opens the sqlite database at path, creating it when missing.
func NewStore(path string) (*Store, error) {
	dsn := "file:" + path + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}

	// sqlite serialises writers anyway; one connection avoids SQLITE_BUSY.
	db.SetMaxOpenConns(1)

	if err := db.PingContext(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Store{db: db, dsn: dsn}, nil
}

func (s *Store) Close() error { return s.db.Close() }

// Ping verifies the database connection is still alive.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Tx starts a read/write transaction and returns a Tx-scoped Store.
func (s *Store) Tx(ctx context.Context) (store.Tx, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	return newTx(tx), nil
}

// WithTx executes fn within a transaction, automatically handling commit/rollback.
func (s *Store) WithTx(ctx context.Context, fn func(tx store.Tx) error) error {
	tx, err := s.Tx(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback() // safe to call even after commit
	}()

	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit()
}

func (s *Store) Accounts() store.Accounts { return &accountsRepo{db: s.db} }

func mapNotFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return store.ErrNotFound
	}
	return err
}

// mapUnique turns a unique index violation into the matching store sentinel.
func mapUnique(err error) error {
	var serr *sqlite.Error
	if !errors.As(err, &serr) {
		return err
	}
	if code := serr.Code(); code != sqlite3.SQLITE_CONSTRAINT_UNIQUE && code != sqlite3.SQLITE_CONSTRAINT {
		return err
	}
	msg := serr.Error()
	if !strings.Contains(msg, "UNIQUE") {
		return err
	}
	switch {
	case strings.Contains(msg, "accounts.login"):
		return store.ErrLoginTaken
	case strings.Contains(msg, "accounts.email"):
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
	CreatedAt      time.Time
	UpdatedAt      time.Time
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
		CreatedAt:      row.CreatedAt.UTC(),
		UpdatedAt:      row.UpdatedAt.UTC(),
	}
	if row.LinkHash.Valid {
		a.Link = &domain.VerificationLink{
			AddressHash: row.LinkHash.String,
			CreatedAt:   row.LinkCreatedAt.Time.UTC(),
		}
	}
	return a
}

// ts normalises times so lexical comparison in sqlite matches time order.
func ts(t time.Time) time.Time {
	return t.UTC().Truncate(time.Microsecond)
}
