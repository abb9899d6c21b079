package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aussiebroadwan/accounts/internal/account/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")

	// ErrLoginTaken and ErrEmailTaken are returned by CreateAccount when a
	// unique index rejects the insert. Both match ErrAlreadyExists.
	ErrLoginTaken = fmt.Errorf("%w: login", ErrAlreadyExists)
	ErrEmailTaken = fmt.Errorf("%w: email", ErrAlreadyExists)
)

// Store is the root data access interface. Concrete drivers (sqlite, postgres)
// implement this. Sub-repositories are exposed as methods so a Tx-scoped store
// hands out the same repos bound to the transaction.
type Store interface {
	Accounts() Accounts

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes fn within a transaction. If fn returns an error the
	// transaction is rolled back, otherwise it is committed.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Accounts interface {
	// CountByLogin returns the number of accounts using login.
	CountByLogin(ctx context.Context, login string) (int64, error)

	// CountByEmail returns the number of accounts using email.
	CountByEmail(ctx context.Context, email string) (int64, error)

	// GetByLogin returns ErrNotFound when no account has login.
	GetByLogin(ctx context.Context, login string) (domain.Account, error)

	// GetByLinkHash returns the unverified account holding the link whose
	// fingerprint is hash and which was created at or after notBefore.
	GetByLinkHash(ctx context.Context, hash string, notBefore time.Time) (domain.Account, error)

	// CreateAccount inserts a (id is provided by app via ULID). Unique
	// violations come back as ErrLoginTaken or ErrEmailTaken.
	CreateAccount(ctx context.Context, a domain.Account) error

	// MarkVerified sets verified and clears the link, but only while the link
	// identified by hash is still attached. Otherwise returns ErrNotFound.
	MarkVerified(ctx context.Context, id, hash string, now time.Time) error

	// DeleteExpiredLinks clears links created before cutoff and reports how
	// many accounts were touched.
	DeleteExpiredLinks(ctx context.Context, cutoff time.Time) (int64, error)
}
