package jwtx

import (
	"errors"
	"fmt"

	"github.com/aussiebroadwan/accounts/pkg/cryptox"
)

var ErrNoIssuer = errors.New("jwtx: issuer is required")

// KeyManager bundles the signing key with the verifier and KeySet that
// accept its tokens.
type KeyManager struct {
	Signer   Signer
	Verifier Verifier
	KeySet   *KeySet
}

type KeyManagerOptions struct {
	Issuer string

	// Audience is checked on verify when non-empty.
	Audience []string

	// PEM is a PKCS8 Ed25519 private key. Empty generates an ephemeral key.
	PEM []byte

	// KeyID overrides the thumbprint kid.
	KeyID string
}

func NewKeyManager(opts KeyManagerOptions) (*KeyManager, error) {
	if opts.Issuer == "" {
		return nil, ErrNoIssuer
	}

	pemKey := opts.PEM
	if len(pemKey) == 0 {
		generated, err := cryptox.GenerateEd25519Key()
		if err != nil {
			return nil, fmt.Errorf("jwtx: generate key: %w", err)
		}
		pemKey = generated
	}

	signer, err := NewSignerEdDSA(opts.KeyID, pemKey)
	if err != nil {
		return nil, err
	}

	keys := NewKeySet()
	if err := keys.AddSigner(signer); err != nil {
		return nil, fmt.Errorf("jwtx: publish key: %w", err)
	}

	return &KeyManager{
		Signer:   signer,
		Verifier: NewVerifierEdDSA(keys, opts.Issuer, opts.Audience),
		KeySet:   keys,
	}, nil
}

func (km *KeyManager) Algorithm() string { return km.Signer.Alg() }

func (km *KeyManager) IsReady() bool { return km.KeySet.IsReady() }
