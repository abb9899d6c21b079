package jwtx

import (
	"crypto/ed25519"
	"crypto/sha256"
	"crypto/x509"
	"encoding/base64"
	"encoding/pem"
	"fmt"
)

const (
	ktyOKP     = "OKP"
	crvEd25519 = "Ed25519"
)

// JWK is an RFC 7517 public key. Only OKP/Ed25519 members are used.
type JWK struct {
	Kty string `json:"kty"`
	Use string `json:"use,omitempty"`
	Alg string `json:"alg,omitempty"`
	Kid string `json:"kid,omitempty"`
	Crv string `json:"crv,omitempty"`
	X   string `json:"x,omitempty"`
}

// JWKS is the document served at /.well-known/jwks.json.
type JWKS struct {
	Keys []JWK `json:"keys"`
}

func NewEd25519JWK(kid, use, alg string, pub ed25519.PublicKey) JWK {
	return JWK{
		Kty: ktyOKP,
		Use: use,
		Alg: alg,
		Kid: kid,
		Crv: crvEd25519,
		X:   base64.RawURLEncoding.EncodeToString(pub),
	}
}

// PublicKey decodes the x member.
func (j JWK) PublicKey() (ed25519.PublicKey, error) {
	if j.Kty != ktyOKP {
		return nil, fmt.Errorf("jwtx: unsupported kty %q", j.Kty)
	}
	if j.Crv != crvEd25519 {
		return nil, fmt.Errorf("jwtx: unsupported OKP curve %q", j.Crv)
	}
	raw, err := base64.RawURLEncoding.DecodeString(j.X)
	if err != nil {
		return nil, fmt.Errorf("jwtx: decode x: %w", err)
	}
	if len(raw) != ed25519.PublicKeySize {
		return nil, fmt.Errorf("jwtx: public key is %d bytes", len(raw))
	}
	return ed25519.PublicKey(raw), nil
}

// Thumbprint is the RFC 7638 SHA-256 thumbprint, base64url encoded. The
// required members are hashed in lexicographic order.
func (j JWK) Thumbprint() string {
	canonical := fmt.Sprintf(`{"crv":%q,"kty":%q,"x":%q}`, j.Crv, j.Kty, j.X)
	sum := sha256.Sum256([]byte(canonical))
	return base64.RawURLEncoding.EncodeToString(sum[:])
}

// PEM renders the key as a PKIX public key block.
func (j JWK) PEM() (string, error) {
	pub, err := j.PublicKey()
	if err != nil {
		return "", err
	}
	der, err := x509.MarshalPKIXPublicKey(pub)
	if err != nil {
		return "", fmt.Errorf("jwtx: marshal public key: %w", err)
	}
	return string(pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: der})), nil
}
