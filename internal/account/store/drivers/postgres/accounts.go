package postgres

import (
	"context"
	"time"

	"github.com/aussiebroadwan/accounts/internal/account/domain"
	"github.com/aussiebroadwan/accounts/internal/account/store"
)

const accountColumns = `id, login, email, verified, password_digest, link_hash, link_created_at, created_at, updated_at`

const (
	countByLogin = `SELECT COUNT(*) FROM accounts WHERE login = $1`
	countByEmail = `SELECT COUNT(*) FROM accounts WHERE email = $1`

	getByLogin = `SELECT ` + accountColumns + ` FROM accounts WHERE login = $1`

	getByLinkHash = `SELECT ` + accountColumns + ` FROM accounts
WHERE link_hash = $1 AND verified = FALSE AND link_created_at >= $2`

	createAccount = `INSERT INTO accounts (` + accountColumns + `)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	markVerified = `UPDATE accounts
SET verified = TRUE, link_hash = NULL, link_created_at = NULL, updated_at = $1
WHERE id = $2 AND link_hash = $3 AND verified = FALSE`

	deleteExpiredLinks = `UPDATE accounts
SET link_hash = NULL, link_created_at = NULL, updated_at = now()
WHERE link_hash IS NOT NULL AND link_created_at < $1`
)

type accountsRepo struct {
	db dbtx
}

func (r *accountsRepo) CountByLogin(ctx context.Context, login string) (int64, error) {
	var n int64
	err := r.db.QueryRowContext(ctx, countByLogin, login).Scan(&n)
	return n, err
}

func (r *accountsRepo) CountByEmail(ctx context.Context, email string) (int64, error) {
	var n int64
	err := r.db.QueryRowContext(ctx, countByEmail, email).Scan(&n)
	return n, err
}

func (r *accountsRepo) GetByLogin(ctx context.Context, login string) (domain.Account, error) {
	var row accountRow
	if err := r.db.QueryRowContext(ctx, getByLogin, login).Scan(row.dest()...); err != nil {
		return domain.Account{}, mapNotFound(err)
	}
	return mapAccount(row), nil
}

func (r *accountsRepo) GetByLinkHash(ctx context.Context, hash string, notBefore time.Time) (domain.Account, error) {
	var row accountRow
	if err := r.db.QueryRowContext(ctx, getByLinkHash, hash, notBefore.UTC()).Scan(row.dest()...); err != nil {
		return domain.Account{}, mapNotFound(err)
	}
	return mapAccount(row), nil
}

func (r *accountsRepo) CreateAccount(ctx context.Context, a domain.Account) error {
	var (
		linkHash      any
		linkCreatedAt any
	)
	if a.Link != nil {
		linkHash = a.Link.AddressHash
		linkCreatedAt = a.Link.CreatedAt.UTC()
	}

	_, err := r.db.ExecContext(ctx, createAccount,
		a.ID, a.Login, a.Email, a.Verified, a.PasswordDigest,
		linkHash, linkCreatedAt, a.CreatedAt.UTC(), a.UpdatedAt.UTC(),
	)
	return mapUnique(err)
}

func (r *accountsRepo) MarkVerified(ctx context.Context, id, hash string, now time.Time) error {
	res, err := r.db.ExecContext(ctx, markVerified, now.UTC(), id, hash)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (r *accountsRepo) DeleteExpiredLinks(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx, deleteExpiredLinks, cutoff.UTC())
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
