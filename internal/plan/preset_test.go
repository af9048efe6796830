// AngelaMos | 2026
// preset_test.go

package plan

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestForTierFree(t *testing.T) {
	preset, ok := ForTier(TierFree)
	require.True(t, ok)

	assert.Equal(t, "Gratuit", preset.Label)
	assert.Equal(t, 1, preset.MaxTenants)
	assert.Equal(t, 3, preset.MaxReceiptsRetained)
	assert.False(t, preset.AutoSend)
	assert.False(t, preset.Reminders)
	assert.False(t, preset.BankSync)
	assert.True(t, preset.SubscriptionActive)
	assert.Equal(t, LeadStatusFreeAccount, preset.LeadStatus)
}

func TestForTierPaid(t *testing.T) {
	automatic, ok := ForTier(TierAutomatic)
	require.True(t, ok)
	assert.Equal(t, 3, automatic.MaxTenants)
	assert.Equal(t, 36, automatic.MaxReceiptsRetained)
	assert.True(t, automatic.AutoSend)
	assert.True(t, automatic.Reminders)
	assert.False(t, automatic.BankSync)
	assert.Equal(t, LeadStatusPayingCustomer, automatic.LeadStatus)

	plus, ok := ForTier(TierConnectedPlus)
	require.True(t, ok)
	assert.Equal(t, 10, plus.MaxTenants)
	assert.Equal(t, 120, plus.MaxReceiptsRetained)
	assert.True(t, plus.BankSync)
	assert.Equal(t, LeadStatusPayingCustomer, plus.LeadStatus)
}

func TestForTierIsDeterministic(t *testing.T) {
	first, ok := ForTier(TierFree)
	require.True(t, ok)

	second, ok := ForTier(TierFree)
	require.True(t, ok)

	assert.Equal(t, first, second)
}

func TestForTierUnknown(t *testing.T) {
	_, ok := ForTier("platinum")
	assert.False(t, ok)

	_, ok = ForTier("")
	assert.False(t, ok)
}

func TestIsPaid(t *testing.T) {
	assert.False(t, IsPaid(TierFree))
	assert.True(t, IsPaid(TierAutomatic))
	assert.True(t, IsPaid(TierConnectedPlus))
	assert.False(t, IsPaid("platinum"))
}

func TestIsValid(t *testing.T) {
	assert.True(t, IsValid(TierFree))
	assert.True(t, IsValid(TierAutomatic))
	assert.True(t, IsValid(TierConnectedPlus))
	assert.False(t, IsValid("platinum"))
}
