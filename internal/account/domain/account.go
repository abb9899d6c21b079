package domain

import "time"

// Account is the persisted identity record.
type Account struct {
	ID             string
	Login          string
	Email          string
	Verified       bool
	PasswordDigest string // argon2id PHC string
	Link           *VerificationLink
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// VerificationLink is present only while the account is unverified.
// AddressHash is the SHA-256 fingerprint of the address mailed to the user.
type VerificationLink struct {
	AddressHash string
	CreatedAt   time.Time
}

// Expired reports whether the link is older than ttl at now.
func (l *VerificationLink) Expired(ttl time.Duration, now time.Time) bool {
	if l == nil {
		return true
	}
	return !now.Before(l.CreatedAt.Add(ttl))
}
