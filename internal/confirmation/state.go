// AngelaMos | 2026
// state.go

package confirmation

// State is the terminal render state of a confirmation attempt. The
// in-flight "processing" state exists only client-side; every server
// response carries exactly one terminal state.
type State string

const (
	// StateRedirecting hands the client off to a navigable target. No
	// local state is trusted after this.
	StateRedirecting State = "redirecting"

	// StateSuccess is the in-page confirmation. Resend is enabled when
	// the purchaser email is known.
	StateSuccess State = "success"

	// StateDegradedSuccess means session resolution failed but the
	// request arrived via the payment success-return path. Payment
	// evidence wins; finalization catches up out of band.
	StateDegradedSuccess State = "degraded_success"

	// StateError is a hard failure: invalid session or payment not
	// completed. The client gets a path back to checkout.
	StateError State = "error"
)

// Result is the outcome of one confirmation attempt.
type Result struct {
	State         State  `json:"state"`
	Email         string `json:"email,omitempty"`
	PlanTier      string `json:"plan_tier,omitempty"`
	PlanLabel     string `json:"plan_label,omitempty"`
	RedirectURL   string `json:"redirect_url,omitempty"`
	ResendEnabled bool   `json:"resend_enabled"`
	RetryURL      string `json:"retry_url,omitempty"`
}
