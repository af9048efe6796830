// AngelaMos | 2026
// resend_test.go

package notify

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingSender struct {
	mu      sync.Mutex
	sends   int
	sendErr error
	last    AccessLinkParams
}

func (c *countingSender) SendWelcome(context.Context, WelcomeParams) error {
	return nil
}

func (c *countingSender) SendAccessLink(
	_ context.Context,
	params AccessLinkParams,
) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.sendErr != nil {
		return c.sendErr
	}
	c.sends++
	c.last = params
	return nil
}

func newResendFixture(t *testing.T) (*ResendService, *countingSender) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	sender := &countingSender{}
	svc := NewResendService(client, sender, slog.Default())

	return svc, sender
}

func TestResendSendsOnce(t *testing.T) {
	svc, sender := newResendFixture(t)

	params := AccessLinkParams{
		Email:    "c@d.com",
		SetupURL: "https://app.example.com/setup?token=x",
	}

	err := svc.Resend(context.Background(), "cs_123", params)
	require.NoError(t, err)

	// Second invocation inside the sent window is absorbed.
	err = svc.Resend(context.Background(), "cs_123", params)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrResendBusy)

	assert.Equal(t, 1, sender.sends)
	assert.Equal(t, "c@d.com", sender.last.Email)
}

func TestResendIndependentSessions(t *testing.T) {
	svc, sender := newResendFixture(t)

	params := AccessLinkParams{Email: "c@d.com", SetupURL: "https://x/setup"}

	require.NoError(t, svc.Resend(context.Background(), "cs_1", params))
	require.NoError(t, svc.Resend(context.Background(), "cs_2", params))

	assert.Equal(t, 2, sender.sends)
}

func TestResendFailureReleasesGuard(t *testing.T) {
	svc, sender := newResendFixture(t)

	boom := errors.New("smtp down")
	sender.sendErr = boom

	params := AccessLinkParams{Email: "c@d.com", SetupURL: "https://x/setup"}

	err := svc.Resend(context.Background(), "cs_123", params)
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)

	// A failed send leaves no sent marker, so a retry goes through.
	sender.sendErr = nil
	require.NoError(t, svc.Resend(context.Background(), "cs_123", params))
	assert.Equal(t, 1, sender.sends)
}
