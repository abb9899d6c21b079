package cryptox

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// testParams keeps the suite fast; production code uses DefaultParams.
var testParams = Params{
	Memory:      1024,
	Iterations:  1,
	Parallelism: 1,
	KeyLength:   32,
	SaltLength:  16,
}

func newTestHasher(pepper string) *Argon2id {
	return &Argon2id{Params: testParams, Pepper: pepper}
}

func TestHash_Format(t *testing.T) {
	h := newTestHasher("pepper")

	first, err := h.Hash("пароль🔒 with spaces")
	require.NoError(t, err)
	second, err := h.Hash("пароль🔒 with spaces")
	require.NoError(t, err)
	require.NotEqual(t, first, second)

	parts := strings.Split(first, "$")
	require.Equal(t, []string{"", "argon2id", "v=19", "m=1024,t=1,p=1"}, parts[:4])

	p, salt, key, err := decodeDigest(first)
	require.NoError(t, err)
	require.Equal(t, testParams.Memory, p.Memory)
	require.Len(t, salt, int(testParams.SaltLength))
	require.Len(t, key, int(testParams.KeyLength))
}

func TestVerify(t *testing.T) {
	digest, err := newTestHasher("pepper-a").Hash("correct horse")
	require.NoError(t, err)

	tests := []struct {
		name      string
		pepper    string
		candidate string
		want      bool
	}{
		{"match", "pepper-a", "correct horse", true},
		{"case differs", "pepper-a", "Correct horse", false},
		{"trailing space", "pepper-a", "correct horse ", false},
		{"empty", "pepper-a", "", false},
		{"huge", "pepper-a", strings.Repeat("x", 10000), false},
		{"other pepper", "pepper-b", "correct horse", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newTestHasher(tt.pepper)

			ok, err := h.Verify(digest, tt.candidate)
			require.NoError(t, err)
			require.Equal(t, tt.want, ok)

			if tt.want {
				require.NoError(t, h.CheckPassword(digest, tt.candidate))
			} else {
				require.ErrorIs(t, h.CheckPassword(digest, tt.candidate), ErrPasswordMismatch)
			}
		})
	}
}

// Digests carry their own cost, so raising DefaultParams keeps old digests valid.
func TestVerify_UsesDigestParams(t *testing.T) {
	old := newTestHasher("p")
	digest, err := old.Hash("pw")
	require.NoError(t, err)

	current := &Argon2id{Params: Params{Memory: 2048, Iterations: 2, Parallelism: 1, KeyLength: 32, SaltLength: 16}, Pepper: "p"}
	ok, err := current.Verify(digest, "pw")
	require.NoError(t, err)
	require.True(t, ok)
}

func TestVerify_InvalidDigest(t *testing.T) {
	h := newTestHasher("pepper")

	tests := []struct {
		name   string
		digest string
	}{
		{"empty digest", ""},
		{"wrong algorithm", "$bcrypt$v=19$m=19456,t=2,p=1$c2FsdA$aGFzaA"},
		{"missing parts", "$argon2id$v=19$m=19456"},
		{"malformed parameters", "$argon2id$v=19$invalid$c2FsdA$aGFzaA"},
		{"zero memory", "$argon2id$v=19$m=0,t=2,p=1$c2FsdA$aGFzaA"},
		{"invalid base64 salt", "$argon2id$v=19$m=19456,t=2,p=1$!!!invalid!!!$aGFzaA"},
		{"invalid base64 hash", "$argon2id$v=19$m=19456,t=2,p=1$c2FsdA$!!!invalid!!!"},
		{"wrong version", "$argon2id$v=18$m=19456,t=2,p=1$c2FsdA$aGFzaA"},
		{"missing version", "$argon2id$m=19456,t=2,p=1$c2FsdA$aGFzaA"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, err := h.Verify(tt.digest, "test-password")
			require.ErrorIs(t, err, ErrInvalidDigest)
			require.False(t, ok)
		})
	}
}

func TestLoadOrCreatePepper(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "pepper")

	first, err := LoadOrCreatePepper(path)
	require.NoError(t, err)
	require.NotEmpty(t, first)

	info, err := os.Stat(path)
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0600), info.Mode().Perm())

	second, err := LoadOrCreatePepper(path)
	require.NoError(t, err)
	require.Equal(t, first, second, "pepper must be stable across loads")
}

func TestLoadOrCreatePepper_EmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pepper")
	require.NoError(t, os.WriteFile(path, []byte("  \n"), 0600))

	_, err := LoadOrCreatePepper(path)
	require.Error(t, err)
}
