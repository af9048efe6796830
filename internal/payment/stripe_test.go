// AngelaMos | 2026
// stripe_test.go

package payment

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v82"
)

func testResolver(fn getSessionFunc) *StripeResolver {
	return &StripeResolver{
		logger:     slog.Default(),
		getSession: fn,
	}
}

func paidSession() *stripe.CheckoutSession {
	return &stripe.CheckoutSession{
		Status:        stripe.CheckoutSessionStatusComplete,
		PaymentStatus: stripe.CheckoutSessionPaymentStatusPaid,
		CustomerDetails: &stripe.CheckoutSessionCustomerDetails{
			Email: "c@d.com",
		},
		Metadata: map[string]string{
			"plan_tier": "automatic",
		},
	}
}

func TestResolveRedirect(t *testing.T) {
	sess := paidSession()
	sess.Metadata["redirect_url"] = "https://app.example.com/setup?s=1"

	resolver := testResolver(func(
		string,
		*stripe.CheckoutSessionParams,
	) (*stripe.CheckoutSession, error) {
		return sess, nil
	})

	outcome, err := resolver.Resolve(context.Background(), "cs_123")
	require.NoError(t, err)

	assert.Equal(t, KindRedirect, outcome.Kind)
	assert.Equal(t, "https://app.example.com/setup?s=1", outcome.RedirectURL)
	assert.Equal(t, "c@d.com", outcome.Email)
	assert.Equal(t, "automatic", outcome.PlanTier)
}

func TestResolveEmailOnly(t *testing.T) {
	resolver := testResolver(func(
		string,
		*stripe.CheckoutSessionParams,
	) (*stripe.CheckoutSession, error) {
		return paidSession(), nil
	})

	outcome, err := resolver.Resolve(context.Background(), "cs_123")
	require.NoError(t, err)

	assert.Equal(t, KindEmailOnly, outcome.Kind)
	assert.Empty(t, outcome.RedirectURL)
	assert.Equal(t, "c@d.com", outcome.Email)
}

func TestResolveEmpty(t *testing.T) {
	sess := paidSession()
	sess.CustomerDetails = nil
	sess.CustomerEmail = ""

	resolver := testResolver(func(
		string,
		*stripe.CheckoutSessionParams,
	) (*stripe.CheckoutSession, error) {
		return sess, nil
	})

	outcome, err := resolver.Resolve(context.Background(), "cs_123")
	require.NoError(t, err)

	assert.Equal(t, KindEmpty, outcome.Kind)
	assert.Empty(t, outcome.Email)
	assert.Empty(t, outcome.RedirectURL)
}

func TestResolveFallsBackToCustomerEmail(t *testing.T) {
	sess := paidSession()
	sess.CustomerDetails = nil
	sess.CustomerEmail = "fallback@d.com"

	resolver := testResolver(func(
		string,
		*stripe.CheckoutSessionParams,
	) (*stripe.CheckoutSession, error) {
		return sess, nil
	})

	outcome, err := resolver.Resolve(context.Background(), "cs_123")
	require.NoError(t, err)
	assert.Equal(t, "fallback@d.com", outcome.Email)
}

func TestResolveUnpaidSession(t *testing.T) {
	sess := paidSession()
	sess.PaymentStatus = stripe.CheckoutSessionPaymentStatusUnpaid

	resolver := testResolver(func(
		string,
		*stripe.CheckoutSessionParams,
	) (*stripe.CheckoutSession, error) {
		return sess, nil
	})

	_, err := resolver.Resolve(context.Background(), "cs_123")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrPaymentIncomplete)
}

func TestResolveExpiredSession(t *testing.T) {
	sess := paidSession()
	sess.Status = stripe.CheckoutSessionStatusExpired

	resolver := testResolver(func(
		string,
		*stripe.CheckoutSessionParams,
	) (*stripe.CheckoutSession, error) {
		return sess, nil
	})

	_, err := resolver.Resolve(context.Background(), "cs_123")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrPaymentIncomplete)
}

func TestResolveUnknownSession(t *testing.T) {
	resolver := testResolver(func(
		string,
		*stripe.CheckoutSessionParams,
	) (*stripe.CheckoutSession, error) {
		return nil, &stripe.Error{Type: stripe.ErrorTypeInvalidRequest}
	})

	_, err := resolver.Resolve(context.Background(), "cs_bogus")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidSession)
}

func TestResolveTransportFailure(t *testing.T) {
	resolver := testResolver(func(
		string,
		*stripe.CheckoutSessionParams,
	) (*stripe.CheckoutSession, error) {
		return nil, errors.New("connection refused")
	})

	_, err := resolver.Resolve(context.Background(), "cs_123")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSessionResolution)
	assert.NotErrorIs(t, err, ErrPaymentIncomplete)
}
