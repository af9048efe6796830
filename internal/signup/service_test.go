// AngelaMos | 2026
// service_test.go

package signup

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yembez/quittancesimple/internal/config"
	"github.com/yembez/quittancesimple/internal/core"
	"github.com/yembez/quittancesimple/internal/identity"
	"github.com/yembez/quittancesimple/internal/notify"
	"github.com/yembez/quittancesimple/internal/owner"
	"github.com/yembez/quittancesimple/internal/plan"
	"github.com/yembez/quittancesimple/internal/tenant"
)

type memOwnerRepo struct {
	byEmail   map[string]*owner.Owner
	createErr error
	updateErr error
	writes    int
}

func newMemOwnerRepo() *memOwnerRepo {
	return &memOwnerRepo{byEmail: make(map[string]*owner.Owner)}
}

func (m *memOwnerRepo) GetByEmail(
	_ context.Context,
	email string,
) (*owner.Owner, error) {
	o, ok := m.byEmail[email]
	if !ok {
		return nil, core.ErrNotFound
	}
	copied := *o
	return &copied, nil
}

func (m *memOwnerRepo) Create(_ context.Context, o *owner.Owner) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.writes++
	copied := *o
	m.byEmail[o.Email] = &copied
	return nil
}

func (m *memOwnerRepo) UpdateByEmail(_ context.Context, o *owner.Owner) error {
	if m.updateErr != nil {
		return m.updateErr
	}
	m.writes++
	copied := *o
	m.byEmail[o.Email] = &copied
	return nil
}

type fakeIdentity struct {
	nextRef   string
	createErr error
	calls     int
}

func (f *fakeIdentity) CreateIdentity(
	_ context.Context,
	_, _ string,
) (string, error) {
	f.calls++
	if f.createErr != nil {
		return "", f.createErr
	}
	return f.nextRef, nil
}

type memTenantRepo struct {
	created   []*tenant.Tenant
	createErr error
}

func (m *memTenantRepo) Create(_ context.Context, t *tenant.Tenant) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.created = append(m.created, t)
	return nil
}

func (m *memTenantRepo) CountByOwner(context.Context, string) (int, error) {
	return len(m.created), nil
}

type recordingSender struct {
	welcomes   int
	welcomeErr error
}

func (r *recordingSender) SendWelcome(
	context.Context,
	notify.WelcomeParams,
) error {
	if r.welcomeErr != nil {
		return r.welcomeErr
	}
	r.welcomes++
	return nil
}

func (r *recordingSender) SendAccessLink(
	context.Context,
	notify.AccessLinkParams,
) error {
	return nil
}

type fixture struct {
	svc       *Service
	ownerRepo *memOwnerRepo
	ident     *fakeIdentity
	tenants   *memTenantRepo
	sender    *recordingSender
}

func newFixture() *fixture {
	ownerRepo := newMemOwnerRepo()
	ident := &fakeIdentity{nextRef: "uid-1"}
	tenants := &memTenantRepo{}
	sender := &recordingSender{}

	svc := NewService(
		owner.NewService(ownerRepo),
		ident,
		tenant.NewImporter(tenants),
		sender,
		config.RoutesConfig{
			DashboardURL: "https://app.example.com/dashboard",
		},
		slog.Default(),
	)

	return &fixture{
		svc:       svc,
		ownerRepo: ownerRepo,
		ident:     ident,
		tenants:   tenants,
		sender:    sender,
	}
}

func TestSignupEndToEnd(t *testing.T) {
	f := newFixture()

	resp, err := f.svc.Signup(context.Background(), SignupRequest{
		Email:    "a@b.com",
		Password: "secret12",
	})
	require.NoError(t, err)

	assert.Equal(t, "a@b.com", resp.Email)
	assert.Equal(t, plan.TierFree, resp.PlanTier)
	assert.Equal(t, "https://app.example.com/dashboard", resp.RedirectURL)
	assert.False(t, resp.TenantImported)

	stored := f.ownerRepo.byEmail["a@b.com"]
	require.NotNil(t, stored)
	require.NotNil(t, stored.IdentityRef)
	assert.Equal(t, "uid-1", *stored.IdentityRef)
	assert.Equal(t, plan.LeadStatusFreeAccount, stored.LeadStatus)

	assert.Empty(t, f.tenants.created)
	assert.Equal(t, 1, f.sender.welcomes)
}

func TestSignupMergesExistingLead(t *testing.T) {
	f := newFixture()
	f.ownerRepo.byEmail["lead@b.com"] = &owner.Owner{
		ID:         "lead-row-1",
		Email:      "lead@b.com",
		LeadStatus: plan.LeadStatusLead,
	}

	resp, err := f.svc.Signup(context.Background(), SignupRequest{
		Email:    "lead@b.com",
		Password: "secret12",
	})
	require.NoError(t, err)

	// The lead converts in place; no second row appears.
	assert.Equal(t, "lead-row-1", resp.OwnerID)
	assert.Len(t, f.ownerRepo.byEmail, 1)
}

func TestSignupDuplicateEmailAbortsBeforeMutation(t *testing.T) {
	f := newFixture()
	f.ident.createErr = identity.ErrEmailExists

	_, err := f.svc.Signup(context.Background(), SignupRequest{
		Email:    "taken@b.com",
		Password: "secret12",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, identity.ErrEmailExists)

	// No local write of any kind happened.
	assert.Zero(t, f.ownerRepo.writes)
	assert.Empty(t, f.tenants.created)
	assert.Zero(t, f.sender.welcomes)
}

func TestSignupProfileAttachFailure(t *testing.T) {
	f := newFixture()
	f.ownerRepo.createErr = errors.New("insert failed")

	_, err := f.svc.Signup(context.Background(), SignupRequest{
		Email:    "a@b.com",
		Password: "secret12",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrProfileAttach)

	// The identity was created; the gap is surfaced, not hidden.
	assert.Equal(t, 1, f.ident.calls)
}

func TestSignupImportsCompletePrefill(t *testing.T) {
	f := newFixture()

	resp, err := f.svc.Signup(context.Background(), SignupRequest{
		Email:         "a@b.com",
		Password:      "secret12",
		TenantName:    "Alice Martin",
		TenantAddress: "3 rue Victor Hugo",
		MonthlyRent:   "800",
	})
	require.NoError(t, err)

	assert.True(t, resp.TenantImported)
	require.Len(t, f.tenants.created, 1)
	assert.Equal(t, resp.OwnerID, f.tenants.created[0].OwnerID)
	assert.Zero(t, f.tenants.created[0].MonthlyCharges)
}

func TestSignupSkipsIncompletePrefill(t *testing.T) {
	f := newFixture()

	resp, err := f.svc.Signup(context.Background(), SignupRequest{
		Email:         "a@b.com",
		Password:      "secret12",
		TenantAddress: "3 rue Victor Hugo",
		MonthlyRent:   "800",
	})
	require.NoError(t, err)

	assert.False(t, resp.TenantImported)
	assert.Empty(t, f.tenants.created)
}

func TestSignupTenantFailureIsNonFatal(t *testing.T) {
	f := newFixture()
	f.tenants.createErr = errors.New("insert failed")

	resp, err := f.svc.Signup(context.Background(), SignupRequest{
		Email:         "a@b.com",
		Password:      "secret12",
		TenantName:    "Alice Martin",
		TenantAddress: "3 rue Victor Hugo",
		MonthlyRent:   "800",
	})
	require.NoError(t, err)

	// Account exists, tenant does not; signup still succeeds.
	assert.False(t, resp.TenantImported)
	assert.NotNil(t, f.ownerRepo.byEmail["a@b.com"])
	assert.Equal(t, 1, f.sender.welcomes)
}

func TestSignupWelcomeFailureIsSwallowed(t *testing.T) {
	f := newFixture()
	f.sender.welcomeErr = notify.ErrSendFailed

	resp, err := f.svc.Signup(context.Background(), SignupRequest{
		Email:    "a@b.com",
		Password: "secret12",
	})
	require.NoError(t, err)
	assert.Equal(t, plan.TierFree, resp.PlanTier)
}
