// AngelaMos | 2026
// entity.go

package owner

import (
	"time"

	"github.com/yembez/quittancesimple/internal/plan"
)

// Owner is the billable account holder (the landlord). A row with a nil
// IdentityRef is a lead: a record captured earlier in the funnel, before
// any authentication identity exists.
type Owner struct {
	ID                  string     `db:"id"`
	Email               string     `db:"email"`
	FirstName           string     `db:"first_name"`
	LastName            string     `db:"last_name"`
	Address             string     `db:"address"`
	IdentityRef         *string    `db:"identity_ref"`
	PlanTier            string     `db:"plan_tier"`
	PlanLabel           string     `db:"plan_label"`
	SubscriptionActive  bool       `db:"subscription_active"`
	MaxTenants          int        `db:"max_tenants"`
	MaxReceiptsRetained int        `db:"max_receipts_retained"`
	LeadStatus          string     `db:"lead_status"`
	AutoSendEnabled     bool       `db:"auto_send_enabled"`
	RemindersEnabled    bool       `db:"reminders_enabled"`
	BankSyncEnabled     bool       `db:"bank_sync_enabled"`
	CreatedAt           time.Time  `db:"created_at"`
	UpdatedAt           time.Time  `db:"updated_at"`
	DeletedAt           *time.Time `db:"deleted_at"`
}

func (o *Owner) IsLead() bool {
	return o.IdentityRef == nil
}

func (o *Owner) HasIdentity() bool {
	return o.IdentityRef != nil && *o.IdentityRef != ""
}

// ApplyPreset writes every plan-dependent field from the preset in one go.
// This is the only place those fields are allowed to change.
func (o *Owner) ApplyPreset(p plan.Preset) {
	o.PlanTier = p.Tier
	o.PlanLabel = p.Label
	o.MaxTenants = p.MaxTenants
	o.MaxReceiptsRetained = p.MaxReceiptsRetained
	o.AutoSendEnabled = p.AutoSend
	o.RemindersEnabled = p.Reminders
	o.BankSyncEnabled = p.BankSync
	o.SubscriptionActive = p.SubscriptionActive
	o.LeadStatus = p.LeadStatus
}
