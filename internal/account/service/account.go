package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/aussiebroadwan/accounts/internal/account/domain"
	"github.com/aussiebroadwan/accounts/internal/account/observability/metrics"
	"github.com/aussiebroadwan/accounts/internal/account/store"
	"github.com/aussiebroadwan/accounts/pkg/cryptox"
	"github.com/aussiebroadwan/accounts/pkg/idx"
	"github.com/aussiebroadwan/accounts/pkg/slogx"
)

// DefaultLinkTTL is how long a verification link stays usable.
const DefaultLinkTTL = 24 * time.Hour

// linkLength is the length of a mailed verification link address.
const linkLength = 64

// AccountService runs the account lifecycle: register, verify, login and
// authorize. Business failures come back as a domain.Result; only input
// validation returns an error.
type AccountService struct {
	Store    store.Store
	Hasher   Hasher
	Tokens   TokenIssuer
	Notifier Notifier
	Metrics  *metrics.Metrics

	// LinkTTL defaults to DefaultLinkTTL.
	LinkTTL time.Duration

	// RequireVerified makes Login refuse accounts that never verified.
	RequireVerified bool

	// Now and NewLink are overridable for tests.
	Now     func() time.Time
	NewLink func() (string, error)
}

func (s *AccountService) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

func (s *AccountService) linkTTL() time.Duration {
	if s.LinkTTL > 0 {
		return s.LinkTTL
	}
	return DefaultLinkTTL
}

func (s *AccountService) newLink() (string, error) {
	if s.NewLink != nil {
		return s.NewLink()
	}
	return cryptox.GenerateToken(cryptox.TokenSize384)
}

func (s *AccountService) finish(action string, r domain.Result) domain.Result {
	s.Metrics.Outcome(action, r.Success, r.Message)
	return r
}

// Register creates an unverified account and mails its verification link.
func (s *AccountService) Register(ctx context.Context, in RegisterInput) (domain.Result, error) {
	in.Normalize()
	if err := asValidationError(in.Validate()); err != nil {
		return domain.Result{}, err
	}

	l := slogx.FromContext(ctx).With(slog.String("action", domain.ActionRegister), slog.String("login", in.Login))
	fail := func(msg string) (domain.Result, error) {
		return s.finish(domain.ActionRegister, domain.Fail(domain.ActionRegister, msg)), nil
	}

	// 1. Advisory uniqueness checks; the unique indexes are authoritative.
	n, err := s.Store.Accounts().CountByLogin(ctx, in.Login)
	if err != nil {
		l.Error("count by login failed", slog.Any("error", err))
		return fail(domain.MsgInternalError)
	}
	if n > 0 {
		return fail(domain.MsgLoginExist)
	}

	n, err = s.Store.Accounts().CountByEmail(ctx, in.Email)
	if err != nil {
		l.Error("count by email failed", slog.Any("error", err))
		return fail(domain.MsgInternalError)
	}
	if n > 0 {
		return fail(domain.MsgEmailExist)
	}

	// 2. Hash and mint the link.
	digest, err := s.Hasher.Hash(in.Password)
	if err != nil {
		l.Error("password hashing failed", slog.Any("error", err))
		return fail(domain.MsgInternalError)
	}

	link, err := s.newLink()
	if err != nil || len(link) != linkLength {
		l.Error("link generation failed", slog.Any("error", err), slog.Int("length", len(link)))
		return fail(domain.MsgInternalError)
	}

	// 3. Insert synchronously so the notification only goes out for a
	// persisted account.
	now := s.now()
	account := domain.Account{
		ID:             idx.NewAt(now).String(),
		Login:          in.Login,
		Email:          in.Email,
		Verified:       false,
		PasswordDigest: digest,
		Link: &domain.VerificationLink{
			AddressHash: cryptox.FingerprintToken(link),
			CreatedAt:   now,
		},
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.Store.Accounts().CreateAccount(ctx, account); err != nil {
		switch {
		case errors.Is(err, store.ErrLoginTaken):
			return fail(domain.MsgLoginExist)
		case errors.Is(err, store.ErrEmailTaken):
			return fail(domain.MsgEmailExist)
		}
		l.Error("create account failed", slog.Any("error", err))
		return fail(domain.MsgInternalError)
	}

	// 4. Notify. A failure leaves the account persisted and unverifiable
	// until housekeeping clears the link.
	if err := s.Notifier.SendVerification(ctx, in.Email, link); err != nil {
		l.Error("verification dispatch failed; account persisted without notification",
			slog.String("account_id", account.ID),
			slog.Any("error", err),
		)
		return fail(domain.MsgInternalError)
	}

	l.Info("account registered", slog.String("account_id", account.ID))
	return s.finish(domain.ActionRegister, domain.Ok(domain.ActionRegister, "")), nil
}

// Verify consumes a verification link. Unknown, expired and already consumed
// links all report "link not exist".
func (s *AccountService) Verify(ctx context.Context, link string) domain.Result {
	l := slogx.FromContext(ctx).With(slog.String("action", domain.ActionVerify))
	fail := func(msg string) domain.Result {
		return s.finish(domain.ActionVerify, domain.Fail(domain.ActionVerify, msg))
	}

	if len(link) != linkLength {
		return fail(domain.MsgLinkNotExist)
	}

	now := s.now()
	hash := cryptox.FingerprintToken(link)

	var accountID string
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		account, err := tx.Accounts().GetByLinkHash(ctx, hash, now.Add(-s.linkTTL()))
		if err != nil {
			return err
		}
		accountID = account.ID
		return tx.Accounts().MarkVerified(ctx, account.ID, hash, now)
	})
	switch {
	case errors.Is(err, store.ErrNotFound):
		return fail(domain.MsgLinkNotExist)
	case err != nil:
		l.Error("verify failed", slog.Any("error", err))
		return fail(domain.MsgInternalError)
	}

	l.Info("account verified", slog.String("account_id", accountID))
	return s.finish(domain.ActionVerify, domain.Ok(domain.ActionVerify, ""))
}

// Login checks credentials and returns a signed token as the message.
func (s *AccountService) Login(ctx context.Context, in LoginInput) (domain.Result, error) {
	in.Normalize()
	if err := asValidationError(in.Validate()); err != nil {
		return domain.Result{}, err
	}

	l := slogx.FromContext(ctx).With(slog.String("action", domain.ActionLogin), slog.String("login", in.Login))
	fail := func(msg string) (domain.Result, error) {
		return s.finish(domain.ActionLogin, domain.Fail(domain.ActionLogin, msg)), nil
	}

	account, err := s.Store.Accounts().GetByLogin(ctx, in.Login)
	if errors.Is(err, store.ErrNotFound) {
		return fail(domain.MsgWrongLogin)
	}
	if err != nil {
		l.Error("lookup failed", slog.Any("error", err))
		return fail(domain.MsgInternalError)
	}

	ok, err := s.Hasher.Verify(account.PasswordDigest, in.Password)
	if err != nil {
		l.Error("password verification failed", slog.String("account_id", account.ID), slog.Any("error", err))
		return fail(domain.MsgInternalError)
	}
	if !ok {
		l.Info("wrong password")
		return fail(domain.MsgWrongPassword)
	}

	if s.RequireVerified && !account.Verified {
		return fail(domain.MsgNotVerified)
	}

	token, err := s.Tokens.Issue(account.Login)
	if err != nil {
		l.Error("token signing failed", slog.Any("error", err))
		return fail(domain.MsgInternalError)
	}

	return s.finish(domain.ActionLogin, domain.Ok(domain.ActionLogin, token)), nil
}

// Authorize reports whether subject still resolves to an account. Any
// repository error denies.
func (s *AccountService) Authorize(ctx context.Context, subject string) bool {
	if subject == "" {
		return false
	}
	n, err := s.Store.Accounts().CountByLogin(ctx, subject)
	if err != nil {
		slogx.FromContext(ctx).Error("authorize lookup failed", slog.String("subject", subject), slog.Any("error", err))
		return false
	}
	return n > 0
}
