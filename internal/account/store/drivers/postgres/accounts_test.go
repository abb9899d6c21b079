package postgres

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/aussiebroadwan/accounts/internal/account/domain"
	"github.com/aussiebroadwan/accounts/internal/account/store"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"
)

func newStoreWithMock(t *testing.T) (*Store, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, mock.ExpectationsWereMet())
		_ = db.Close()
	})
	return NewFromDB(db), mock
}

var columns = []string{"id", "login", "email", "verified", "password_digest", "link_hash", "link_created_at", "created_at", "updated_at"}

func TestCountByLogin(t *testing.T) {
	st, mock := newStoreWithMock(t)

	mock.ExpectQuery(countByLogin).WithArgs("alice").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int64(1)))

	n, err := st.Accounts().CountByLogin(context.Background(), "alice")
	require.NoError(t, err)
	require.EqualValues(t, 1, n)
}

func TestCountByEmail_DBError(t *testing.T) {
	st, mock := newStoreWithMock(t)

	mock.ExpectQuery(countByEmail).WithArgs("a@x.com").WillReturnError(errors.New("db down"))

	_, err := st.Accounts().CountByEmail(context.Background(), "a@x.com")
	require.EqualError(t, err, "db down")
}

func TestGetByLogin_Found(t *testing.T) {
	st, mock := newStoreWithMock(t)
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

	mock.ExpectQuery(getByLogin).WithArgs("alice").
		WillReturnRows(sqlmock.NewRows(columns).
			AddRow("01HQ7T3Z1MZ0JQ3M6MZQ1FQ3ZV", "alice", "a@x.com", false, "digest", "hash-1", now, now, now))

	got, err := st.Accounts().GetByLogin(context.Background(), "alice")
	require.NoError(t, err)
	require.Equal(t, "alice", got.Login)
	require.NotNil(t, got.Link)
	require.Equal(t, "hash-1", got.Link.AddressHash)
	require.Equal(t, now, got.Link.CreatedAt)
}

func TestGetByLogin_VerifiedHasNoLink(t *testing.T) {
	st, mock := newStoreWithMock(t)
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

	mock.ExpectQuery(getByLogin).WithArgs("alice").
		WillReturnRows(sqlmock.NewRows(columns).
			AddRow("01HQ7T3Z1MZ0JQ3M6MZQ1FQ3ZV", "alice", "a@x.com", true, "digest", nil, nil, now, now))

	got, err := st.Accounts().GetByLogin(context.Background(), "alice")
	require.NoError(t, err)
	require.True(t, got.Verified)
	require.Nil(t, got.Link)
}

func TestGetByLogin_NotFound(t *testing.T) {
	st, mock := newStoreWithMock(t)

	mock.ExpectQuery(getByLogin).WithArgs("ghost").WillReturnError(sql.ErrNoRows)

	_, err := st.Accounts().GetByLogin(context.Background(), "ghost")
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestGetByLinkHash_NotFound(t *testing.T) {
	st, mock := newStoreWithMock(t)
	cutoff := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

	mock.ExpectQuery(getByLinkHash).WithArgs("hash-1", cutoff).WillReturnError(sql.ErrNoRows)

	_, err := st.Accounts().GetByLinkHash(context.Background(), "hash-1", cutoff)
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestCreateAccount_UniqueViolations(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	a := domain.Account{
		ID: "id-1", Login: "alice", Email: "a@x.com", PasswordDigest: "digest",
		Link:      &domain.VerificationLink{AddressHash: "hash-1", CreatedAt: now},
		CreatedAt: now, UpdatedAt: now,
	}

	tests := []struct {
		name       string
		constraint string
		want       error
	}{
		{"login", "accounts_login_key", store.ErrLoginTaken},
		{"email", "accounts_email_key", store.ErrEmailTaken},
		{"other", "accounts_link_hash_key", store.ErrAlreadyExists},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st, mock := newStoreWithMock(t)
			mock.ExpectExec(createAccount).
				WithArgs("id-1", "alice", "a@x.com", false, "digest", "hash-1", now, now, now).
				WillReturnError(&pgconn.PgError{Code: uniqueViolation, ConstraintName: tt.constraint})

			err := st.Accounts().CreateAccount(context.Background(), a)
			require.ErrorIs(t, err, tt.want)
		})
	}
}

func TestCreateAccount_OK(t *testing.T) {
	st, mock := newStoreWithMock(t)
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

	mock.ExpectExec(createAccount).
		WithArgs("id-1", "alice", "a@x.com", false, "digest", nil, nil, now, now).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := st.Accounts().CreateAccount(context.Background(), domain.Account{
		ID: "id-1", Login: "alice", Email: "a@x.com", PasswordDigest: "digest",
		CreatedAt: now, UpdatedAt: now,
	})
	require.NoError(t, err)
}

func TestMarkVerified(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

	t.Run("updated", func(t *testing.T) {
		st, mock := newStoreWithMock(t)
		mock.ExpectExec(markVerified).WithArgs(now, "id-1", "hash-1").WillReturnResult(sqlmock.NewResult(0, 1))
		require.NoError(t, st.Accounts().MarkVerified(context.Background(), "id-1", "hash-1", now))
	})

	t.Run("link already consumed", func(t *testing.T) {
		st, mock := newStoreWithMock(t)
		mock.ExpectExec(markVerified).WithArgs(now, "id-1", "hash-1").WillReturnResult(sqlmock.NewResult(0, 0))
		require.ErrorIs(t, st.Accounts().MarkVerified(context.Background(), "id-1", "hash-1", now), store.ErrNotFound)
	})
}

func TestDeleteExpiredLinks(t *testing.T) {
	st, mock := newStoreWithMock(t)
	cutoff := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

	mock.ExpectExec(deleteExpiredLinks).WithArgs(cutoff).WillReturnResult(sqlmock.NewResult(0, 3))

	n, err := st.Accounts().DeleteExpiredLinks(context.Background(), cutoff)
	require.NoError(t, err)
	require.EqualValues(t, 3, n)
}

func TestWithTx(t *testing.T) {
	t.Run("commit", func(t *testing.T) {
		st, mock := newStoreWithMock(t)
		mock.ExpectBegin()
		mock.ExpectQuery(countByLogin).WithArgs("alice").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int64(0)))
		mock.ExpectCommit()

		err := st.WithTx(context.Background(), func(tx store.Tx) error {
			_, err := tx.Accounts().CountByLogin(context.Background(), "alice")
			return err
		})
		require.NoError(t, err)
	})

	t.Run("rollback", func(t *testing.T) {
		st, mock := newStoreWithMock(t)
		mock.ExpectBegin()
		mock.ExpectRollback()

		boom := errors.New("boom")
		err := st.WithTx(context.Background(), func(store.Tx) error { return boom })
		require.ErrorIs(t, err, boom)
	})
}
