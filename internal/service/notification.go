package service

import (
	"fmt"
	"log/slog"

	"github.com/resend/resend-go/v2"

	"github.com/streakpost/streakpost/internal/config"
	"github.com/streakpost/streakpost/internal/model"
)

// Notifier sends milestone emails. With no API key configured it logs the
// notification instead, which is the mode used in development and tests.
type Notifier struct {
	client *resend.Client
	from   string
	appURL string
}

func NewNotifier(c *config.Config) *Notifier {
	n := &Notifier{
		from:   c.EmailFrom,
		appURL: c.AppURL,
	}
	if c.ResendAPIKey != "" {
		n.client = resend.NewClient(c.ResendAPIKey)
	}
	return n
}

// ChallengeCompleted is sent when the current streak reaches the project's
// target length.
func (n *Notifier) ChallengeCompleted(email string, project *model.Project) error {
	subject := fmt.Sprintf("Challenge complete: %s", project.Name)
	html := fmt.Sprintf(`
		<h1>You did it!</h1>
		<p>You completed the %d-day challenge for <strong>%s</strong>.</p>
		<p><a href="%s/projects/%s">View your streak</a></p>
	`, project.TargetDays, project.Name, n.appURL, project.ID)

	return n.send(email, subject, html)
}

// BadgeEarned is sent when a streak badge is awarded.
func (n *Notifier) BadgeEarned(email string, badge *model.Badge) error {
	subject := fmt.Sprintf("New badge: %s", badge.Name)
	html := fmt.Sprintf(`
		<h1>%s %s</h1>
		<p>%s</p>
		<p><a href="%s/badges">See all your badges</a></p>
	`, badge.Icon, badge.Name, badge.Description, n.appURL)

	return n.send(email, subject, html)
}

func (n *Notifier) send(to, subject, html string) error {
	if n.client == nil {
		slog.Info("email skipped (no API key)", "to", to, "subject", subject)
		return nil
	}

	_, err := n.client.Emails.Send(&resend.SendEmailRequest{
		From:    n.from,
		To:      []string{to},
		Subject: subject,
		Html:    html,
	})
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}
