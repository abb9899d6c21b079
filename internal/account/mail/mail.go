// Package mail delivers account verification messages.
package mail

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"net/url"
	"strings"
	"time"
)

//go:embed templates/*.html
var templateFS embed.FS

// Security modes for the SMTP connection.
const (
	SecurityStartTLS = "starttls"
	SecuritySSL      = "ssl"
	SecurityPlain    = "plain"
)

// DefaultSubject is used when Config.Subject is empty.
const DefaultSubject = "Verify your account"

// Dispatcher delivers a verification link to an address.
type Dispatcher interface {
	SendVerification(ctx context.Context, to, link string) error
}

// Config holds the outbound mail settings. It is built once at startup.
type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	Subject  string
	Security string // starttls, ssl or plain
	Timeout  time.Duration

	// VerifyURL is the public base the link is appended to.
	VerifyURL string

	// LinkTTL is shown to the recipient.
	LinkTTL time.Duration
}

// Addr returns host:port.
func (c Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

func (c Config) subject() string {
	if c.Subject != "" {
		return c.Subject
	}
	return DefaultSubject
}

// LinkURL joins the verify base URL and a link address.
func LinkURL(base, link string) string {
	return strings.TrimRight(base, "/") + "/" + url.PathEscape(link)
}

type verificationData struct {
	Subject string
	URL     string
	TTL     string
}

var templates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

func renderVerification(cfg Config, link string) (string, error) {
	ttl := cfg.LinkTTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}

	var buf bytes.Buffer
	err := templates.ExecuteTemplate(&buf, "verification.html", verificationData{
		Subject: cfg.subject(),
		URL:     LinkURL(cfg.VerifyURL, link),
		TTL:     ttl.String(),
	})
	if err != nil {
		return "", fmt.Errorf("render verification template: %w", err)
	}
	return buf.String(), nil
}
