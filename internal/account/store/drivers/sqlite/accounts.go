package sqlite

import (
	"context"
	"time"

	"github.com/aussiebroadwan/accounts/internal/account/domain"
	"github.com/aussiebroadwan/accounts/internal/account/store"
)

const accountColumns = `id, login, email, verified, password_digest, link_hash, link_created_at, created_at, updated_at`

const (
	countByLogin = `SELECT COUNT(*) FROM accounts WHERE login = ?`
	countByEmail = `SELECT COUNT(*) FROM accounts WHERE email = ?`

	getByLogin = `SELECT ` + accountColumns + ` FROM accounts WHERE login = ?`

	getByLinkHash = `SELECT ` + accountColumns + ` FROM accounts
WHERE link_hash = ? AND verified = 0 AND link_created_at >= ?`

	createAccount = `INSERT INTO accounts (` + accountColumns + `)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`

	markVerified = `UPDATE accounts
SET verified = 1, link_hash = NULL, link_created_at = NULL, updated_at = ?
WHERE id = ? AND link_hash = ? AND verified = 0`

	deleteExpiredLinks = `UPDATE accounts
SET link_hash = NULL, link_created_at = NULL, updated_at = ?
WHERE link_hash IS NOT NULL AND link_created_at < ?`
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
	if err := r.db.QueryRowContext(ctx, getByLinkHash, hash, ts(notBefore)).Scan(row.dest()...); err != nil {
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
		linkCreatedAt = ts(a.Link.CreatedAt)
	}

	_, err := r.db.ExecContext(ctx, createAccount,
		a.ID, a.Login, a.Email, a.Verified, a.PasswordDigest,
		linkHash, linkCreatedAt, ts(a.CreatedAt), ts(a.UpdatedAt),
	)
	return mapUnique(err)
}

func (r *accountsRepo) MarkVerified(ctx context.Context, id, hash string, now time.Time) error {
	res, err := r.db.ExecContext(ctx, markVerified, ts(now), id, hash)
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
	res, err := r.db.ExecContext(ctx, deleteExpiredLinks, ts(time.Now()), ts(cutoff))
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
