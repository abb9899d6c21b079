package jwtx

import (
	"crypto/ed25519"
	"errors"
	"slices"
	"sync"
)

var ErrNoKey = errors.New("jwtx: key not found")

type publishedKey struct {
	jwk JWK
	pub ed25519.PublicKey
}

// KeySet holds the public verification keys by kid. The JWKS handler and
// the bearer middleware share it.
type KeySet struct {
	mu   sync.RWMutex
	keys map[string]publishedKey
}

func NewKeySet() *KeySet {
	return &KeySet{keys: make(map[string]publishedKey)}
}

// AddSigner publishes the signer's public key.
func (k *KeySet) AddSigner(s Signer) error {
	return k.AddJWK(s.PublicJWK())
}

// AddJWK publishes j, replacing any key with the same kid.
func (k *KeySet) AddJWK(j JWK) error {
	if j.Kid == "" {
		return ErrMissingKID
	}
	pub, err := j.PublicKey()
	if err != nil {
		return err
	}

	k.mu.Lock()
	k.keys[j.Kid] = publishedKey{jwk: j, pub: pub}
	k.mu.Unlock()
	return nil
}

func (k *KeySet) Get(kid string) (ed25519.PublicKey, error) {
	k.mu.RLock()
	defer k.mu.RUnlock()
	if pk, ok := k.keys[kid]; ok {
		return pk.pub, nil
	}
	return nil, ErrNoKey
}

// PublicJWKS returns the published keys ordered by kid.
func (k *KeySet) PublicJWKS() JWKS {
	k.mu.RLock()
	defer k.mu.RUnlock()

	out := JWKS{Keys: make([]JWK, 0, len(k.keys))}
	for _, pk := range k.keys {
		out.Keys = append(out.Keys, pk.jwk)
	}
	slices.SortFunc(out.Keys, func(a, b JWK) int {
		switch {
		case a.Kid < b.Kid:
			return -1
		case a.Kid > b.Kid:
			return 1
		}
		return 0
	})
	return out
}

// IsReady reports whether at least one key is published.
func (k *KeySet) IsReady() bool {
	k.mu.RLock()
	defer k.mu.RUnlock()
	return len(k.keys) > 0
}
