package mail

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"log/slog"
	"mime"
	"net"
	"net/smtp"
	"strings"
	"time"

	"github.com/aussiebroadwan/accounts/pkg/slogx"
)

const defaultTimeout = 30 * time.Second

// ErrNoRecipient is returned when the destination address is empty.
var ErrNoRecipient = errors.New("mail: empty recipient")

// SMTPDispatcher sends verification mail through an SMTP relay.
type SMTPDispatcher struct {
	cfg Config

	// TLSConfig overrides the client TLS settings, mainly for tests.
	TLSConfig *tls.Config
}

// NewSMTPDispatcher validates cfg and returns a dispatcher.
func NewSMTPDispatcher(cfg Config) (*SMTPDispatcher, error) {
	if cfg.Host == "" || cfg.Port == 0 {
		return nil, errors.New("mail: smtp host and port are required")
	}
	if cfg.From == "" {
		return nil, errors.New("mail: smtp from address is required")
	}
	switch cfg.Security {
	case "":
		cfg.Security = SecurityStartTLS
	case SecurityStartTLS, SecuritySSL, SecurityPlain:
	default:
		return nil, fmt.Errorf("mail: unknown smtp security %q", cfg.Security)
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	return &SMTPDispatcher{cfg: cfg}, nil
}

// SendVerification renders the verification template and sends it to "to".
func (d *SMTPDispatcher) SendVerification(ctx context.Context, to, link string) error {
	if to == "" {
		return ErrNoRecipient
	}

	body, err := renderVerification(d.cfg, link)
	if err != nil {
		return err
	}

	if err := d.send(ctx, to, d.cfg.subject(), body); err != nil {
		return err
	}

	slogx.FromContext(ctx).Debug("verification mail sent", slog.String("smtp_host", d.cfg.Host))
	return nil
}

func (d *SMTPDispatcher) tlsConfig() *tls.Config {
	if d.TLSConfig != nil {
		return d.TLSConfig
	}
	return &tls.Config{ServerName: d.cfg.Host, MinVersion: tls.VersionTLS12}
}

func (d *SMTPDispatcher) dial(ctx context.Context) (net.Conn, error) {
	dialer := &net.Dialer{Timeout: d.cfg.Timeout}
	if d.cfg.Security == SecuritySSL {
		td := &tls.Dialer{NetDialer: dialer, Config: d.tlsConfig()}
		return td.DialContext(ctx, "tcp", d.cfg.Addr())
	}
	return dialer.DialContext(ctx, "tcp", d.cfg.Addr())
}

func (d *SMTPDispatcher) send(ctx context.Context, to, subject, body string) error {
	conn, err := d.dial(ctx)
	if err != nil {
		return fmt.Errorf("dial smtp %s: %w", d.cfg.Addr(), err)
	}

	deadline := time.Now().Add(d.cfg.Timeout)
	if dl, ok := ctx.Deadline(); ok && dl.Before(deadline) {
		deadline = dl
	}
	_ = conn.SetDeadline(deadline)

	c, err := smtp.NewClient(conn, d.cfg.Host)
	if err != nil {
		_ = conn.Close()
		return fmt.Errorf("smtp client: %w", err)
	}
	defer c.Close()

	if err := c.Hello("localhost"); err != nil {
		return fmt.Errorf("smtp hello: %w", err)
	}

	if d.cfg.Security == SecurityStartTLS {
		if err := c.StartTLS(d.tlsConfig()); err != nil {
			return fmt.Errorf("smtp starttls: %w", err)
		}
	}

	if d.cfg.Username != "" && d.cfg.Password != "" {
		auth := smtp.PlainAuth("", d.cfg.Username, d.cfg.Password, d.cfg.Host)
		if err := c.Auth(auth); err != nil {
			return fmt.Errorf("smtp auth: %w", err)
		}
	}

	if err := c.Mail(d.cfg.From); err != nil {
		return fmt.Errorf("smtp mail from: %w", err)
	}
	if err := c.Rcpt(to); err != nil {
		return fmt.Errorf("smtp rcpt: %w", err)
	}

	w, err := c.Data()
	if err != nil {
		return fmt.Errorf("smtp data: %w", err)
	}
	if _, err := w.Write(buildMessage(d.cfg.From, to, subject, body)); err != nil {
		return fmt.Errorf("smtp write: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("smtp data close: %w", err)
	}

	return c.Quit()
}

func buildMessage(from, to, subject, body string) []byte {
	var b strings.Builder
	headers := [][2]string{
		{"From", from},
		{"To", to},
		{"Subject", mime.QEncoding.Encode("utf-8", subject)},
		{"Date", time.Now().UTC().Format(time.RFC1123Z)},
		{"MIME-Version", "1.0"},
		{"Content-Type", "text/html; charset=UTF-8"},
	}
	for _, h := range headers {
		b.WriteString(h[0])
		b.WriteString(": ")
		b.WriteString(h[1])
		b.WriteString("\r\n")
	}
	b.WriteString("\r\n")
	b.WriteString(body)
	return []byte(b.String())
}
