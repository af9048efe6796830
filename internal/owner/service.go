// AngelaMos | 2026
// service.go

package owner

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/yembez/quittancesimple/internal/core"
	"github.com/yembez/quittancesimple/internal/plan"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Lookup is the merge resolver: a pure read against the unique email key.
// Both entry points call it before any mutation to decide update vs insert.
func (s *Service) Lookup(
	ctx context.Context,
	email string,
) (*Owner, bool, error) {
	existing, err := s.repo.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return nil, false, nil
		}
		return nil, false, err
	}

	return existing, true, nil
}

type ProvisionParams struct {
	Email       string
	FirstName   string
	LastName    string
	Address     string
	IdentityRef *string
	Tier        string
}

// Provision merges into an existing owner row (a converting lead keeps its
// primary key) or inserts a fresh one. The plan preset and the identity ref
// land in the same write, so there is never a half-assigned owner.
func (s *Service) Provision(
	ctx context.Context,
	params ProvisionParams,
) (*Owner, error) {
	preset, ok := plan.ForTier(params.Tier)
	if !ok {
		return nil, fmt.Errorf(
			"provision owner: unknown tier %q: %w",
			params.Tier,
			core.ErrInvalidInput,
		)
	}

	email := normalizeEmail(params.Email)

	existing, found, err := s.Lookup(ctx, email)
	if err != nil {
		return nil, err
	}

	if found {
		merged := mergeProfile(existing, params)
		merged.ApplyPreset(preset)

		if err := s.repo.UpdateByEmail(ctx, merged); err != nil {
			return nil, err
		}

		return merged, nil
	}

	o := &Owner{
		ID:          uuid.New().String(),
		Email:       email,
		FirstName:   params.FirstName,
		LastName:    params.LastName,
		Address:     params.Address,
		IdentityRef: params.IdentityRef,
	}
	o.ApplyPreset(preset)

	if err := s.repo.Create(ctx, o); err != nil {
		// A concurrent signup for the same email won the insert; the
		// unique key is the cross-request consistency guarantee.
		return nil, err
	}

	return o, nil
}

// mergeProfile fills profile fields from the request without clobbering
// data the lead row already carries.
func mergeProfile(existing *Owner, params ProvisionParams) *Owner {
	merged := *existing

	if params.FirstName != "" {
		merged.FirstName = params.FirstName
	}
	if params.LastName != "" {
		merged.LastName = params.LastName
	}
	if params.Address != "" {
		merged.Address = params.Address
	}
	if params.IdentityRef != nil && !merged.HasIdentity() {
		merged.IdentityRef = params.IdentityRef
	}

	return &merged
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
