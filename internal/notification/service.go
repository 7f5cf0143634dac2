package notification

import (
	"fmt"
	"log"
	"strings"
	"time"

	"warmup-monitor-backend/pkg/mailer"
)

// AccountAlert is one degraded account in a digest.
type AccountAlert struct {
	Email         string
	Score         float64
	PreviousScore *float64
}

// DomainAlert is one degraded domain in a digest.
type DomainAlert struct {
	Domain       string
	AverageScore float64
	AccountCount int
}

// Digest is everything one batch wants to tell the operators.
type Digest struct {
	AccountAlerts []AccountAlert
	DomainAlerts  []DomainAlert
	Timestamp     time.Time
}

func (d Digest) Empty() bool {
	return len(d.AccountAlerts) == 0 && len(d.DomainAlerts) == 0
}

// Service sends the per-batch alert digest email. Sending is best-effort: a
// failure is logged and reported as not-sent, never propagated.
type Service struct {
	mailer *mailer.Mailer
}

func NewService(m *mailer.Mailer) *Service {
	return &Service{mailer: m}
}

// Send delivers the digest and reports whether it went out.
func (s *Service) Send(digest Digest) bool {
	if digest.Empty() {
		return false
	}
	if s.mailer == nil || !s.mailer.Enabled() {
		log.Printf("[Notifier] Mailer not configured, skipping digest (%d account, %d domain alerts)",
			len(digest.AccountAlerts), len(digest.DomainAlerts))
		return false
	}

	subject := fmt.Sprintf("Warmup alert: %d account(s), %d domain(s) below threshold",
		len(digest.AccountAlerts), len(digest.DomainAlerts))

	if err := s.mailer.Send(subject, s.renderBody(digest)); err != nil {
		log.Printf("[Notifier] Failed to send alert digest: %v", err)
		return false
	}

	log.Printf("[Notifier] Alert digest sent (%d account, %d domain alerts)",
		len(digest.AccountAlerts), len(digest.DomainAlerts))
	return true
}

func (s *Service) renderBody(digest Digest) string {
	var b strings.Builder
	b.WriteString("<h2>Warmup score alerts</h2>")
	b.WriteString(fmt.Sprintf("<p>Sync at %s</p>", digest.Timestamp.Format(time.RFC1123)))

	if len(digest.AccountAlerts) > 0 {
		b.WriteString("<h3>Accounts</h3><ul>")
		for _, a := range digest.AccountAlerts {
			if a.PreviousScore != nil {
				b.WriteString(fmt.Sprintf("<li>%s: %.1f%% (was %.1f%%)</li>", a.Email, a.Score, *a.PreviousScore))
			} else {
				b.WriteString(fmt.Sprintf("<li>%s: %.1f%%</li>", a.Email, a.Score))
			}
		}
		b.WriteString("</ul>")
	}

	if len(digest.DomainAlerts) > 0 {
		b.WriteString("<h3>Domains</h3><ul>")
		for _, d := range digest.DomainAlerts {
			b.WriteString(fmt.Sprintf("<li>%s: %.1f%% average across %d account(s)</li>", d.Domain, d.AverageScore, d.AccountCount))
		}
		b.WriteString("</ul>")
	}

	return b.String()
}
