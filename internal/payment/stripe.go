// AngelaMos | 2026
// stripe.go

package payment

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/checkout/session"
)

const (
	metadataPlanTier    = "plan_tier"
	metadataRedirectURL = "redirect_url"
)

type getSessionFunc func(
	id string,
	params *stripe.CheckoutSessionParams,
) (*stripe.CheckoutSession, error)

// StripeResolver resolves checkout sessions against the Stripe API.
// stripe.Key must be set before the first Resolve call.
type StripeResolver struct {
	logger     *slog.Logger
	getSession getSessionFunc
}

func NewStripeResolver(secretKey string, logger *slog.Logger) *StripeResolver {
	stripe.Key = secretKey

	return &StripeResolver{
		logger:     logger,
		getSession: session.Get,
	}
}

func (r *StripeResolver) Resolve(
	ctx context.Context,
	sessionID string,
) (Outcome, error) {
	params := &stripe.CheckoutSessionParams{}
	params.Context = ctx

	sess, err := r.getSession(sessionID, params)
	if err != nil {
		var stripeErr *stripe.Error
		if errors.As(err, &stripeErr) &&
			stripeErr.Type == stripe.ErrorTypeInvalidRequest {
			return Outcome{}, fmt.Errorf(
				"resolve session %s: %w", sessionID, ErrInvalidSession)
		}
		return Outcome{}, fmt.Errorf(
			"resolve session %s: %v: %w", sessionID, err, ErrSessionResolution)
	}

	outcome, err := classify(sess, sessionID)
	if err != nil {
		return Outcome{}, err
	}

	r.logger.Info("checkout session resolved",
		"session_id", sessionID,
		"kind", outcome.Kind,
		"plan_tier", outcome.PlanTier,
	)

	return outcome, nil
}

func classify(sess *stripe.CheckoutSession, sessionID string) (Outcome, error) {
	if sess.Status == stripe.CheckoutSessionStatusExpired ||
		sess.PaymentStatus != stripe.CheckoutSessionPaymentStatusPaid {
		return Outcome{}, fmt.Errorf(
			"session %s status %s payment %s: %w",
			sessionID, sess.Status, sess.PaymentStatus, ErrPaymentIncomplete)
	}

	email := purchaserEmail(sess)
	tier := sess.Metadata[metadataPlanTier]

	if redirect := sess.Metadata[metadataRedirectURL]; redirect != "" {
		return Outcome{
			Kind:        KindRedirect,
			RedirectURL: redirect,
			Email:       email,
			PlanTier:    tier,
		}, nil
	}

	if email != "" {
		return Outcome{Kind: KindEmailOnly, Email: email, PlanTier: tier}, nil
	}

	return Outcome{Kind: KindEmpty, PlanTier: tier}, nil
}

func purchaserEmail(sess *stripe.CheckoutSession) string {
	if sess.CustomerDetails != nil && sess.CustomerDetails.Email != "" {
		return sess.CustomerDetails.Email
	}
	return sess.CustomerEmail
}

var _ Resolver = (*StripeResolver)(nil)
