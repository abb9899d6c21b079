package app

import (
	"fmt"
	"log/slog"

	"github.com/aussiebroadwan/accounts/pkg/cryptox"
	"github.com/aussiebroadwan/accounts/pkg/jwtx"
)

// InitSigningKey builds the KeyManager.
//
// With AUTH_SIGNING_KEY_FILE set the Ed25519 key is loaded from that file,
// or generated and written there on first start, so tokens survive restarts.
// Without it an ephemeral key is generated and every token dies with the
// process.
func InitSigningKey(cfg Config, logger *slog.Logger) (*jwtx.KeyManager, error) {
	opts := jwtx.KeyManagerOptions{Issuer: cfg.Issuer}

	if cfg.SigningKeyFile != "" {
		pem, err := cryptox.LoadOrCreateEd25519Key(cfg.SigningKeyFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load signing key: %w", err)
		}
		opts.PEM = pem
	}

	km, err := jwtx.NewKeyManager(opts)
	if err != nil {
		return nil, err
	}

	mode := "ephemeral"
	if cfg.SigningKeyFile != "" {
		mode = "file"
	}
	logger.Info("signing key ready",
		slog.String("algorithm", km.Algorithm()),
		slog.String("kid", km.Signer.KID()),
		slog.String("mode", mode),
	)
	return km, nil
}
