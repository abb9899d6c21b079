package mail

import (
	"context"
	"log/slog"

	"github.com/aussiebroadwan/accounts/pkg/slogx"
)

// LogDispatcher writes the verification URL to the request logger instead
// of sending mail. Meant for development.
type LogDispatcher struct {
	VerifyURL string
}

func (d LogDispatcher) SendVerification(ctx context.Context, to, link string) error {
	if to == "" {
		return ErrNoRecipient
	}

	l := slogx.FromContext(ctx)
	l.Info("verification link issued", slog.String("verify_url", LinkURL(d.VerifyURL, link)))
	l.Debug("verification link recipient", slog.String("email", to))
	return nil
}
