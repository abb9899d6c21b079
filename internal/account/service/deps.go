package service

import "context"

// Hasher hashes and checks passwords. Verify reports (false, nil) for a
// mismatch and an error only when the digest cannot be evaluated.
type Hasher interface {
	Hash(password string) (string, error)
	Verify(digest, password string) (bool, error)
}

// TokenIssuer signs bearer tokens for a subject.
type TokenIssuer interface {
	Issue(subject string) (string, error)
}

// Notifier delivers a verification link to an email address.
type Notifier interface {
	SendVerification(ctx context.Context, to, link string) error
}
