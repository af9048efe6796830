// AngelaMos | 2026
// provider.go

package identity

import (
	"context"
	"errors"
)

var (
	// ErrEmailExists is the detectable "already registered" condition.
	// Callers surface it as a sign-in prompt, not a generic failure.
	ErrEmailExists = errors.New("identity email already registered")

	// ErrProvider covers every other identity-provider failure.
	ErrProvider = errors.New("identity provider error")
)

// Provider creates authentication identities. The returned ref is stable
// for the lifetime of the identity and is bound to the owner record
// exactly once.
type Provider interface {
	CreateIdentity(ctx context.Context, email, password string) (string, error)
}
