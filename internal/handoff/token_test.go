// AngelaMos | 2026
// token_test.go

package handoff

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yembez/quittancesimple/internal/config"
	"github.com/yembez/quittancesimple/internal/core"
)

func newTestManager(t *testing.T, expire time.Duration) *Manager {
	t.Helper()

	keyPath := filepath.Join(t.TempDir(), "handoff.pem")
	require.NoError(t, GenerateKeyPair(keyPath))

	manager, err := NewManager(config.HandoffConfig{
		PrivateKeyPath: keyPath,
		TokenExpire:    expire,
		Issuer:         "quittancesimple-test",
	})
	require.NoError(t, err)

	return manager
}

func TestIssueVerifyRoundTrip(t *testing.T) {
	manager := newTestManager(t, time.Hour)

	token, err := manager.Issue("c@d.com")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	email, err := manager.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "c@d.com", email)
}

func TestVerifyExpiredToken(t *testing.T) {
	manager := newTestManager(t, -time.Minute)

	token, err := manager.Issue("c@d.com")
	require.NoError(t, err)

	_, err = manager.Verify(token)
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrTokenExpired)
}

func TestVerifyTamperedToken(t *testing.T) {
	manager := newTestManager(t, time.Hour)

	token, err := manager.Issue("c@d.com")
	require.NoError(t, err)

	tampered := token[:len(token)-4] + "AAAA"

	_, err = manager.Verify(tampered)
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrTokenInvalid)
}

func TestVerifyRejectsForeignSigner(t *testing.T) {
	issuing := newTestManager(t, time.Hour)
	verifying := newTestManager(t, time.Hour)

	token, err := issuing.Issue("c@d.com")
	require.NoError(t, err)

	_, err = verifying.Verify(token)
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrTokenInvalid)
}

func TestVerifyGarbage(t *testing.T) {
	manager := newTestManager(t, time.Hour)

	_, err := manager.Verify("not-a-token")
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrTokenInvalid)
}
