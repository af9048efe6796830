// AngelaMos | 2026
// preset.go

package plan

const (
	TierFree          = "free"
	TierAutomatic     = "automatic"
	TierConnectedPlus = "connected_plus"
)

const (
	LeadStatusLead           = "lead"
	LeadStatusFreeAccount    = "free_account"
	LeadStatusPayingCustomer = "paying_customer"
)

// Preset is the atomic bundle of quota and capability values attached to a
// commercial tier. Plan-dependent fields on an owner are only ever written
// together through a preset, never field by field.
type Preset struct {
	Tier                string
	Label               string
	MaxTenants          int
	MaxReceiptsRetained int
	AutoSend            bool
	Reminders           bool
	BankSync            bool
	SubscriptionActive  bool
	LeadStatus          string
}

var presets = map[string]Preset{
	TierFree: {
		Tier:                TierFree,
		Label:               "Gratuit",
		MaxTenants:          1,
		MaxReceiptsRetained: 3,
		AutoSend:            false,
		Reminders:           false,
		BankSync:            false,
		SubscriptionActive:  true,
		LeadStatus:          LeadStatusFreeAccount,
	},
	TierAutomatic: {
		Tier:                TierAutomatic,
		Label:               "Automatique",
		MaxTenants:          3,
		MaxReceiptsRetained: 36,
		AutoSend:            true,
		Reminders:           true,
		BankSync:            false,
		SubscriptionActive:  true,
		LeadStatus:          LeadStatusPayingCustomer,
	},
	TierConnectedPlus: {
		Tier:                TierConnectedPlus,
		Label:               "Connecté Plus",
		MaxTenants:          10,
		MaxReceiptsRetained: 120,
		AutoSend:            true,
		Reminders:           true,
		BankSync:            true,
		SubscriptionActive:  true,
		LeadStatus:          LeadStatusPayingCustomer,
	},
}

// ForTier returns the preset for the given tier. The bool reports whether
// the tier is known; callers must not guess a fallback preset themselves.
func ForTier(tier string) (Preset, bool) {
	p, ok := presets[tier]
	return p, ok
}

func IsValid(tier string) bool {
	_, ok := presets[tier]
	return ok
}

// IsPaid reports whether the tier is gated behind checkout.
func IsPaid(tier string) bool {
	return tier == TierAutomatic || tier == TierConnectedPlus
}
