package jwtx

import (
	"crypto/ed25519"
	"errors"
	"fmt"

	"github.com/aussiebroadwan/accounts/pkg/cryptox"
	"github.com/golang-jwt/jwt/v5"
)

// AlgorithmEdDSA is the only signing algorithm issued by this service.
const AlgorithmEdDSA = "EdDSA"

// Signer mints compact JWS access tokens.
type Signer interface {
	Alg() string
	KID() string
	Sign(Claims) (string, error)
	PublicJWK() JWK
}

type edSigner struct {
	kid  string
	priv ed25519.PrivateKey
	jwk  JWK
}

// NewSignerEdDSA parses a PKCS8 Ed25519 key. An empty kid is replaced by
// the key's thumbprint, so a persisted key keeps its kid across restarts.
func NewSignerEdDSA(kid string, pemKey []byte) (Signer, error) {
	priv, err := cryptox.ParseEd25519Key(pemKey)
	if err != nil {
		return nil, fmt.Errorf("jwtx: %w", err)
	}
	pub, ok := priv.Public().(ed25519.PublicKey)
	if !ok || len(pub) != ed25519.PublicKeySize {
		return nil, errors.New("jwtx: invalid Ed25519 public key")
	}

	jwk := NewEd25519JWK("", "sig", AlgorithmEdDSA, pub)
	if kid == "" {
		kid = jwk.Thumbprint()
	}
	jwk.Kid = kid

	return &edSigner{kid: kid, priv: priv, jwk: jwk}, nil
}

func (s *edSigner) Alg() string    { return AlgorithmEdDSA }
func (s *edSigner) KID() string    { return s.kid }
func (s *edSigner) PublicJWK() JWK { return s.jwk }

func (s *edSigner) Sign(claims Claims) (string, error) {
	t := jwt.NewWithClaims(jwt.SigningMethodEdDSA, claims)
	t.Header["kid"] = s.kid
	return t.SignedString(s.priv)
}
