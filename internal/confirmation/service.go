// AngelaMos | 2026
// service.go

package confirmation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"

	"github.com/yembez/quittancesimple/internal/config"
	"github.com/yembez/quittancesimple/internal/core"
	"github.com/yembez/quittancesimple/internal/handoff"
	"github.com/yembez/quittancesimple/internal/notify"
	"github.com/yembez/quittancesimple/internal/owner"
	"github.com/yembez/quittancesimple/internal/payment"
	"github.com/yembez/quittancesimple/internal/plan"
	"github.com/yembez/quittancesimple/internal/sessionmark"
)

type Service struct {
	resolver payment.Resolver
	owners   *owner.Service
	marks    *sessionmark.Store
	tokens   *handoff.Manager
	resend   *notify.ResendService
	routes   config.RoutesConfig
	logger   *slog.Logger
}

func NewService(
	resolver payment.Resolver,
	owners *owner.Service,
	marks *sessionmark.Store,
	tokens *handoff.Manager,
	resend *notify.ResendService,
	routes config.RoutesConfig,
	logger *slog.Logger,
) *Service {
	return &Service{
		resolver: resolver,
		owners:   owners,
		marks:    marks,
		tokens:   tokens,
		resend:   resend,
		routes:   routes,
		logger:   logger,
	}
}

// Confirm resolves a checkout session once and maps it to a terminal
// state. viaSuccessReturn records whether the request came through the
// processor's success-return redirect; it decides between a degraded
// success and a hard error when resolution itself fails.
func (s *Service) Confirm(
	ctx context.Context,
	sessionID string,
	viaSuccessReturn bool,
) (Result, error) {
	if sessionID == "" {
		return s.errorResult(), nil
	}

	outcome, err := s.resolver.Resolve(ctx, sessionID)
	if err != nil {
		return s.resultForResolveError(sessionID, viaSuccessReturn, err), nil
	}

	provisioned := s.provision(ctx, sessionID, outcome)

	switch outcome.Kind {
	case payment.KindRedirect:
		return Result{
			State:       StateRedirecting,
			Email:       outcome.Email,
			PlanTier:    outcome.PlanTier,
			RedirectURL: outcome.RedirectURL,
		}, nil

	case payment.KindEmailOnly:
		result := Result{
			State:         StateSuccess,
			Email:         outcome.Email,
			PlanTier:      outcome.PlanTier,
			ResendEnabled: true,
		}
		if provisioned != nil {
			result.PlanLabel = provisioned.PlanLabel
		}
		if setupURL, buildErr := s.buildSetupURL(outcome.Email); buildErr == nil {
			result.RedirectURL = setupURL
		} else {
			s.logger.Warn("build fallback setup url failed",
				"session_id", sessionID,
				"error", buildErr,
			)
		}
		return result, nil

	case payment.KindEmpty:
		return Result{State: StateSuccess}, nil
	}

	return s.errorResult(), nil
}

func (s *Service) resultForResolveError(
	sessionID string,
	viaSuccessReturn bool,
	err error,
) Result {
	if errors.Is(err, payment.ErrSessionResolution) && viaSuccessReturn {
		s.logger.Warn("session resolution failed on success-return path",
			"session_id", sessionID,
			"error", err,
		)
		return Result{State: StateDegradedSuccess}
	}

	s.logger.Error("session confirmation failed",
		"session_id", sessionID,
		"error", err,
	)

	return s.errorResult()
}

// provision upgrades or creates the owner for a resolved paid session.
// Failures are logged, not surfaced; payment already happened and the
// merge path repairs the record on the next touch.
func (s *Service) provision(
	ctx context.Context,
	sessionID string,
	outcome payment.Outcome,
) *owner.Owner {
	if outcome.Email == "" {
		return nil
	}

	tier := outcome.PlanTier
	if !plan.IsValid(tier) || !plan.IsPaid(tier) {
		s.logger.Warn("unrecognized paid tier in session metadata, using default",
			"session_id", sessionID,
			"tier", tier,
		)
		tier = plan.TierAutomatic
	}

	provisioned, err := s.owners.Provision(ctx, owner.ProvisionParams{
		Email: outcome.Email,
		Tier:  tier,
	})
	if err != nil {
		s.logger.Error("owner provisioning after payment failed",
			"session_id", sessionID,
			"error", err,
		)
		return nil
	}

	mark := sessionmark.Marker{Email: outcome.Email, PlanTier: tier}
	if err := s.marks.Put(ctx, sessionID, mark); err != nil {
		s.logger.Warn("store session marker failed",
			"session_id", sessionID,
			"error", err,
		)
	}

	return provisioned
}

// ResendAccessLink re-sends the password-setup email for a confirmed
// session. The email comes from the session marker when available, the
// caller-provided fallback otherwise.
func (s *Service) ResendAccessLink(
	ctx context.Context,
	sessionID, fallbackEmail string,
) error {
	email := fallbackEmail
	planLabel := ""

	mark, err := s.marks.Get(ctx, sessionID)
	switch {
	case err == nil:
		email = mark.Email
		if preset, ok := plan.ForTier(mark.PlanTier); ok {
			planLabel = preset.Label
		}
	case !errors.Is(err, core.ErrNotFound):
		return err
	}

	if email == "" {
		return fmt.Errorf("resend for session %s: %w", sessionID, core.ErrNotFound)
	}

	setupURL, err := s.buildSetupURL(email)
	if err != nil {
		return err
	}

	return s.resend.Resend(ctx, sessionID, notify.AccessLinkParams{
		Email:     email,
		PlanLabel: planLabel,
		SetupURL:  setupURL,
	})
}

// SessionMarker exposes the stored marker for session-continuity reads.
func (s *Service) SessionMarker(
	ctx context.Context,
	sessionID string,
) (sessionmark.Marker, error) {
	return s.marks.Get(ctx, sessionID)
}

func (s *Service) buildSetupURL(email string) (string, error) {
	token, err := s.tokens.Issue(email)
	if err != nil {
		return "", fmt.Errorf("issue handoff token: %w", err)
	}

	return s.routes.PasswordSetupURL + "?token=" + url.QueryEscape(token), nil
}

func (s *Service) errorResult() Result {
	return Result{State: StateError, RetryURL: s.routes.PricingURL}
}
