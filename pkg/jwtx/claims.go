package jwtx

import (
	"slices"
	"time"

	"github.com/aussiebroadwan/accounts/pkg/idx"
	"github.com/golang-jwt/jwt/v5"
)

// AccessTokenTTL is the fixed lifetime of tokens issued at login.
const AccessTokenTTL = time.Hour

// ClockSkew is tolerated on exp and nbf.
const ClockSkew = 30 * time.Second

// Claims are the access-token claims. Subject carries the account login and
// ID is a ULID, so tokens issued in the same second still differ.
type Claims struct {
	jwt.RegisteredClaims
}

// NewAccessClaims stamps iss, sub, aud, iat, nbf, exp and jti.
func NewAccessClaims(subject string, ttl time.Duration, issuer string, audience []string, now time.Time) Claims {
	return Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   subject,
			Audience:  jwt.ClaimStrings(audience),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        idx.NewAt(now).String(),
		},
	}
}

// Check enforces issuer, audience and the validity window at now. An empty
// issuer or audience list skips that check.
func (c *Claims) Check(issuer string, audience []string, now time.Time, leeway time.Duration) error {
	if issuer != "" && c.Issuer != issuer {
		return ErrIssuer
	}
	if len(audience) > 0 && !slices.ContainsFunc(audience, func(a string) bool {
		return slices.Contains(c.Audience, a)
	}) {
		return ErrAudience
	}
	if c.ExpiresAt != nil && now.After(c.ExpiresAt.Add(leeway)) {
		return ErrExpired
	}
	if c.NotBefore != nil && now.Before(c.NotBefore.Add(-leeway)) {
		return ErrNotYetValid
	}
	return nil
}
