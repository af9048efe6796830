// AngelaMos | 2026
// dispatcher.go

package notify

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	sendgrid "github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"github.com/yembez/quittancesimple/internal/config"
)

// ErrSendFailed covers every mail-provider failure. Signup treats it as
// non-fatal; the confirmation resend path surfaces it to the caller.
var ErrSendFailed = errors.New("notification send failed")

const (
	mailSendPath = "/v3/mail/send"
	mailBaseURL  = "https://api.sendgrid.com"
)

// WelcomeParams fills the free-signup welcome template.
type WelcomeParams struct {
	Email        string
	FirstName    string
	PlanLabel    string
	DashboardURL string
}

// AccessLinkParams fills the paid-purchase access-link template. SetupURL
// already carries the signed handoff token.
type AccessLinkParams struct {
	Email     string
	PlanLabel string
	SetupURL  string
}

// Sender delivers the two transactional emails this service owns.
type Sender interface {
	SendWelcome(ctx context.Context, params WelcomeParams) error
	SendAccessLink(ctx context.Context, params AccessLinkParams) error
}

// SendGridDispatcher sends through SendGrid dynamic templates.
type SendGridDispatcher struct {
	config config.SendGridConfig
	logger *slog.Logger
}

func NewSendGridDispatcher(
	cfg config.SendGridConfig,
	logger *slog.Logger,
) *SendGridDispatcher {
	return &SendGridDispatcher{config: cfg, logger: logger}
}

func (d *SendGridDispatcher) SendWelcome(
	ctx context.Context,
	params WelcomeParams,
) error {
	personalization := mail.NewPersonalization()
	personalization.AddTos(mail.NewEmail(params.FirstName, params.Email))
	personalization.SetDynamicTemplateData("first_name", params.FirstName)
	personalization.SetDynamicTemplateData("plan_label", params.PlanLabel)
	personalization.SetDynamicTemplateData("dashboard_url", params.DashboardURL)

	return d.send(ctx, d.config.WelcomeTemplate, personalization, params.Email)
}

func (d *SendGridDispatcher) SendAccessLink(
	ctx context.Context,
	params AccessLinkParams,
) error {
	personalization := mail.NewPersonalization()
	personalization.AddTos(mail.NewEmail("", params.Email))
	personalization.SetDynamicTemplateData("plan_label", params.PlanLabel)
	personalization.SetDynamicTemplateData("setup_url", params.SetupURL)

	return d.send(
		ctx,
		d.config.AccessLinkTemplate,
		personalization,
		params.Email,
	)
}

func (d *SendGridDispatcher) send(
	ctx context.Context,
	templateID string,
	personalization *mail.Personalization,
	recipient string,
) error {
	m := mail.NewV3Mail()
	m.SetTemplateID(templateID)
	m.SetFrom(mail.NewEmail(d.config.FromName, d.config.FromEmail))

	enable := false
	m.SetTrackingSettings(&mail.TrackingSettings{
		SubscriptionTracking: &mail.SubscriptionTrackingSetting{
			Enable: &enable,
		},
	})

	m.AddPersonalizations(personalization)

	request := sendgrid.GetRequest(d.config.APIKey, mailSendPath, mailBaseURL)
	request.Method = http.MethodPost
	request.Body = mail.GetRequestBody(m)

	response, err := sendgrid.MakeRequestRetryWithContext(ctx, request)
	if err != nil {
		return fmt.Errorf("sendgrid request: %v: %w", err, ErrSendFailed)
	}

	if response.StatusCode >= http.StatusBadRequest {
		d.logger.Error("sendgrid rejected message",
			"status", response.StatusCode,
			"template_id", templateID,
		)
		return fmt.Errorf(
			"sendgrid status %d: %w",
			response.StatusCode,
			ErrSendFailed,
		)
	}

	d.logger.Info("notification sent",
		"template_id", templateID,
		"recipient", recipient,
	)

	return nil
}

var _ Sender = (*SendGridDispatcher)(nil)
