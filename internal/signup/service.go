// AngelaMos | 2026
// service.go

package signup

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/yembez/quittancesimple/internal/config"
	"github.com/yembez/quittancesimple/internal/identity"
	"github.com/yembez/quittancesimple/internal/notify"
	"github.com/yembez/quittancesimple/internal/owner"
	"github.com/yembez/quittancesimple/internal/plan"
	"github.com/yembez/quittancesimple/internal/tenant"
)

// ErrProfileAttach means the identity was created but the owner record
// could not be written. The account exists at the identity provider with
// no profile behind it; a later signin or signup for the same email
// re-attaches through the merge path.
var ErrProfileAttach = errors.New("profile attach after identity creation failed")

// state is threaded through the pipeline. Each step reads what earlier
// steps produced and writes what it owns.
type state struct {
	req SignupRequest

	identityRef    string
	owner          *owner.Owner
	tenantImported bool
	welcomeSent    bool
}

// step is one named stage of the signup pipeline. Fatal steps abort the
// run; non-fatal steps log and let the rest proceed.
type step struct {
	name  string
	fatal bool
	run   func(ctx context.Context, st *state) error
}

type Service struct {
	owners   *owner.Service
	identity identity.Provider
	importer *tenant.Importer
	sender   notify.Sender
	routes   config.RoutesConfig
	logger   *slog.Logger
}

func NewService(
	owners *owner.Service,
	identityProvider identity.Provider,
	importer *tenant.Importer,
	sender notify.Sender,
	routes config.RoutesConfig,
	logger *slog.Logger,
) *Service {
	return &Service{
		owners:   owners,
		identity: identityProvider,
		importer: importer,
		sender:   sender,
		routes:   routes,
		logger:   logger,
	}
}

// Signup runs the free-signup pipeline. Identity creation comes first so
// a duplicate email aborts before any local write. The owner write merges
// into an existing lead row when one exists for the email.
func (s *Service) Signup(
	ctx context.Context,
	req SignupRequest,
) (SignupResponse, error) {
	st := &state{req: req}

	for _, stage := range s.pipeline() {
		err := stage.run(ctx, st)
		if err == nil {
			continue
		}

		if stage.fatal {
			return SignupResponse{}, fmt.Errorf("signup %s: %w", stage.name, err)
		}

		s.logger.Warn("signup step failed, continuing",
			"step", stage.name,
			"email", req.Email,
			"error", err,
		)
	}

	return toSignupResponse(
		st.owner,
		st.tenantImported,
		s.routes.DashboardURL,
	), nil
}

func (s *Service) pipeline() []step {
	return []step{
		{name: "create_identity", fatal: true, run: s.createIdentity},
		{name: "provision_owner", fatal: true, run: s.provisionOwner},
		{name: "import_tenant", fatal: false, run: s.importTenant},
		{name: "send_welcome", fatal: false, run: s.sendWelcome},
	}
}

func (s *Service) createIdentity(ctx context.Context, st *state) error {
	ref, err := s.identity.CreateIdentity(ctx, st.req.Email, st.req.Password)
	if err != nil {
		return err
	}

	st.identityRef = ref

	return nil
}

func (s *Service) provisionOwner(ctx context.Context, st *state) error {
	provisioned, err := s.owners.Provision(ctx, owner.ProvisionParams{
		Email:       st.req.Email,
		FirstName:   st.req.FirstName,
		LastName:    st.req.LastName,
		Address:     st.req.Address,
		IdentityRef: &st.identityRef,
		Tier:        plan.TierFree,
	})
	if err != nil {
		return fmt.Errorf("%w: %w", ErrProfileAttach, err)
	}

	st.owner = provisioned

	return nil
}

func (s *Service) importTenant(ctx context.Context, st *state) error {
	imported, err := s.importer.ImportIfComplete(ctx, st.owner.ID, tenant.Prefill{
		Name:           st.req.TenantName,
		HomeAddress:    st.req.TenantAddress,
		MonthlyRent:    st.req.MonthlyRent,
		MonthlyCharges: st.req.MonthlyCharge,
	})
	if err != nil {
		if errors.Is(err, tenant.ErrSkipped) {
			return nil
		}
		return err
	}

	st.tenantImported = imported != nil

	return nil
}

func (s *Service) sendWelcome(ctx context.Context, st *state) error {
	err := s.sender.SendWelcome(ctx, notify.WelcomeParams{
		Email:        st.owner.Email,
		FirstName:    st.owner.FirstName,
		PlanLabel:    st.owner.PlanLabel,
		DashboardURL: s.routes.DashboardURL,
	})
	if err != nil {
		return err
	}

	st.welcomeSent = true

	return nil
}
