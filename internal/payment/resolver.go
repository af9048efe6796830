// AngelaMos | 2026
// resolver.go

package payment

import (
	"context"
	"errors"
)

var (
	// ErrInvalidSession means the session identifier does not name a
	// checkout session the provider knows about.
	ErrInvalidSession = errors.New("checkout session not found")

	// ErrSessionResolution is a transport or provider failure while
	// resolving an otherwise plausible session. It is retryable.
	ErrSessionResolution = errors.New("checkout session resolution failed")

	// ErrPaymentIncomplete means the session exists but its payment never
	// completed. Not retryable through the confirmation flow.
	ErrPaymentIncomplete = errors.New("checkout session payment incomplete")
)

// OutcomeKind is the closed set of shapes a resolved session can take.
type OutcomeKind int

const (
	// KindRedirect carries a provider-supplied post-payment destination.
	KindRedirect OutcomeKind = iota

	// KindEmailOnly means the provider confirmed payment and delivered the
	// access email itself; no destination was supplied.
	KindEmailOnly

	// KindEmpty means the provider returned a paid session with neither a
	// destination nor a purchaser email. Rendered as an in-page
	// confirmation with no follow-up actions.
	KindEmpty
)

func (k OutcomeKind) String() string {
	switch k {
	case KindRedirect:
		return "redirect"
	case KindEmailOnly:
		return "email_only"
	case KindEmpty:
		return "empty"
	}
	return "unknown"
}

// Outcome is the result of resolving a paid checkout session. Exactly one
// shape applies; fields outside the active shape are zero.
type Outcome struct {
	Kind OutcomeKind

	// RedirectURL is set only for KindRedirect.
	RedirectURL string

	// Email is the purchaser address, set for every kind.
	Email string

	// PlanTier is the purchased tier carried in session metadata.
	PlanTier string
}

// Resolver turns a checkout session ID into a classified Outcome.
// Payment state is checked before classification; incomplete payments
// surface as ErrPaymentIncomplete, never as an Outcome.
type Resolver interface {
	Resolve(ctx context.Context, sessionID string) (Outcome, error)
}
