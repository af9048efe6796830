// AngelaMos | 2026
// dto.go

package signup

import (
	"github.com/yembez/quittancesimple/internal/owner"
)

// SignupRequest is the free-signup form payload. The tenant fields are an
// optional prefill carried over from the estimate page; they only take
// effect when name, address and rent are all present.
type SignupRequest struct {
	Email     string `json:"email"      validate:"required,email"`
	Password  string `json:"password"   validate:"required,min=8,max=128"`
	FirstName string `json:"first_name" validate:"omitempty,max=100"`
	LastName  string `json:"last_name"  validate:"omitempty,max=100"`
	Address   string `json:"address"    validate:"omitempty,max=500"`

	TenantName    string `json:"tenant_name"    validate:"omitempty,max=200"`
	TenantAddress string `json:"tenant_address" validate:"omitempty,max=500"`
	MonthlyRent   string `json:"monthly_rent"   validate:"omitempty,max=20"`
	MonthlyCharge string `json:"monthly_charges" validate:"omitempty,max=20"`
}

type SignupResponse struct {
	OwnerID        string `json:"owner_id"`
	Email          string `json:"email"`
	PlanTier       string `json:"plan_tier"`
	PlanLabel      string `json:"plan_label"`
	TenantImported bool   `json:"tenant_imported"`
	RedirectURL    string `json:"redirect_url"`
}

func toSignupResponse(
	o *owner.Owner,
	tenantImported bool,
	redirectURL string,
) SignupResponse {
	return SignupResponse{
		OwnerID:        o.ID,
		Email:          o.Email,
		PlanTier:       o.PlanTier,
		PlanLabel:      o.PlanLabel,
		TenantImported: tenantImported,
		RedirectURL:    redirectURL,
	}
}
