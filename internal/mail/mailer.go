// AngelaMos | 2026
// mailer.go

package mail

import (
	"context"
	"fmt"
	"log/slog"

	gomail "github.com/wneessen/go-mail"

	"github.com/carterperez-dev/staffdesk/internal/auth"
	"github.com/carterperez-dev/staffdesk/internal/config"
)

// Mailer delivers account lifecycle mail over SMTP.
type Mailer struct {
	client  *gomail.Client
	from    string
	baseURL string
	appName string
}

var _ auth.Notifier = (*Mailer)(nil)

func NewMailer(cfg config.MailConfig, app config.AppConfig) (*Mailer, error) {
	client, err := gomail.NewClient(
		cfg.Host,
		gomail.WithPort(cfg.Port),
		gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
		gomail.WithUsername(cfg.From),
		gomail.WithPassword(cfg.Password),
		gomail.WithTLSPortPolicy(gomail.TLSMandatory),
	)
	if err != nil {
		return nil, fmt.Errorf("create mail client: %w", err)
	}

	return &Mailer{
		client:  client,
		from:    cfg.From,
		baseURL: app.BaseURL,
		appName: app.Name,
	}, nil
}

func (m *Mailer) SendActivation(
	ctx context.Context,
	email, userID string,
) error {
	link := fmt.Sprintf("%s/v1/users/activate/%s", m.baseURL, userID)

	body := fmt.Sprintf(
		"Welcome to %s!\n\n"+
			"Please activate your account by visiting the link below:\n\n"+
			"%s\n\n"+
			"If you did not create this account, ignore this message.\n",
		m.appName, link,
	)

	return m.send(ctx, email, "Activate your account", body)
}

func (m *Mailer) SendPasswordReset(
	ctx context.Context,
	email, authString string,
) error {
	link := fmt.Sprintf("%s/v1/users/verify/%s", m.baseURL, authString)

	body := fmt.Sprintf(
		"A password reset was requested for your %s account.\n\n"+
			"Visit the link below to continue:\n\n"+
			"%s\n\n"+
			"The link is valid for a single use. If you did not request a "+
			"reset, ignore this message.\n",
		m.appName, link,
	)

	return m.send(ctx, email, "Reset your password", body)
}

func (m *Mailer) send(
	ctx context.Context,
	to, subject, body string,
) error {
	msg := gomail.NewMsg()

	if err := msg.From(m.from); err != nil {
		return fmt.Errorf("set from address: %w", err)
	}
	if err := msg.To(to); err != nil {
		return fmt.Errorf("set to address: %w", err)
	}

	msg.Subject(subject)
	msg.SetBodyString(gomail.TypeTextPlain, body)

	if err := m.client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("send mail: %w", err)
	}

	return nil
}

// LogNotifier stands in when mail delivery is disabled; it records what
// would have been sent. Activation and reset links still appear in the
// logs, which is how local development picks them up.
type LogNotifier struct {
	logger  *slog.Logger
	baseURL string
}

var _ auth.Notifier = (*LogNotifier)(nil)

func NewLogNotifier(logger *slog.Logger, app config.AppConfig) *LogNotifier {
	return &LogNotifier{logger: logger, baseURL: app.BaseURL}
}

func (n *LogNotifier) SendActivation(
	_ context.Context,
	email, userID string,
) error {
	n.logger.Info("mail disabled, skipping activation mail",
		"email", email,
		"link", fmt.Sprintf("%s/v1/users/activate/%s", n.baseURL, userID),
	)
	return nil
}

func (n *LogNotifier) SendPasswordReset(
	_ context.Context,
	email, authString string,
) error {
	n.logger.Info("mail disabled, skipping password reset mail",
		"email", email,
		"link", fmt.Sprintf("%s/v1/users/verify/%s", n.baseURL, authString),
	)
	return nil
}
