package service

import (
	"errors"
	"time"

	"github.com/aussiebroadwan/accounts/internal/account/observability/metrics"
	"github.com/aussiebroadwan/accounts/pkg/jwtx"
)

var ErrNoSigner = errors.New("no signing key configured")

// TokenService signs access tokens with the KeyManager's key.
type TokenService struct {
	KeyManager *jwtx.KeyManager
	Issuer     string
	Audience   []string
	AccessTTL  time.Duration
	Metrics    *metrics.Metrics

	Now func() time.Time
}

// Issue returns a compact JWS whose subject is subject.
func (s *TokenService) Issue(subject string) (string, error) {
	if s.KeyManager == nil || s.KeyManager.Signer == nil {
		return "", ErrNoSigner
	}

	ttl := s.AccessTTL
	if ttl <= 0 {
		ttl = jwtx.AccessTokenTTL
	}
	now := time.Now().UTC()
	if s.Now != nil {
		now = s.Now().UTC()
	}

	token, err := s.KeyManager.Signer.Sign(jwtx.NewAccessClaims(subject, ttl, s.Issuer, s.Audience, now))
	s.Metrics.TokenIssued(err)
	return token, err
}
