// AngelaMos | 2026
// repository.go

package owner

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/yembez/quittancesimple/internal/core"
)

type Repository interface {
	GetByEmail(ctx context.Context, email string) (*Owner, error)
	Create(ctx context.Context, owner *Owner) error
	UpdateByEmail(ctx context.Context, owner *Owner) error
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

const ownerColumns = `
	id, email, first_name, last_name, address, identity_ref,
	plan_tier, plan_label, subscription_active,
	max_tenants, max_receipts_retained, lead_status,
	auto_send_enabled, reminders_enabled, bank_sync_enabled,
	created_at, updated_at, deleted_at`

func (r *repository) GetByEmail(
	ctx context.Context,
	email string,
) (*Owner, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM owners
		WHERE email = $1 AND deleted_at IS NULL`, ownerColumns)

	var o Owner
	err := r.db.GetContext(ctx, &o, query, email)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get owner by email: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get owner by email: %w", err)
	}

	return &o, nil
}

func (r *repository) Create(ctx context.Context, owner *Owner) error {
	query := `
		INSERT INTO owners (
			id, email, first_name, last_name, address, identity_ref,
			plan_tier, plan_label, subscription_active,
			max_tenants, max_receipts_retained, lead_status,
			auto_send_enabled, reminders_enabled, bank_sync_enabled
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		RETURNING created_at, updated_at`

	err := r.db.GetContext(ctx, owner, query,
		owner.ID,
		owner.Email,
		owner.FirstName,
		owner.LastName,
		owner.Address,
		owner.IdentityRef,
		owner.PlanTier,
		owner.PlanLabel,
		owner.SubscriptionActive,
		owner.MaxTenants,
		owner.MaxReceiptsRetained,
		owner.LeadStatus,
		owner.AutoSendEnabled,
		owner.RemindersEnabled,
		owner.BankSyncEnabled,
	)
	if err != nil {
		if isDuplicateKeyError(err) {
			return fmt.Errorf("create owner: %w", core.ErrDuplicateKey)
		}
		return fmt.Errorf("create owner: %w", err)
	}

	return nil
}

// UpdateByEmail rewrites the lead row in place, keyed by the unique email.
// identity_ref is guarded with COALESCE so a ref, once set, never changes.
func (r *repository) UpdateByEmail(ctx context.Context, owner *Owner) error {
	query := `
		UPDATE owners
		SET first_name = $2,
		    last_name = $3,
		    address = $4,
		    identity_ref = COALESCE(identity_ref, $5),
		    plan_tier = $6,
		    plan_label = $7,
		    subscription_active = $8,
		    max_tenants = $9,
		    max_receipts_retained = $10,
		    lead_status = $11,
		    auto_send_enabled = $12,
		    reminders_enabled = $13,
		    bank_sync_enabled = $14,
		    updated_at = NOW()
		WHERE email = $1 AND deleted_at IS NULL
		RETURNING id, updated_at`

	err := r.db.GetContext(ctx, owner, query,
		owner.Email,
		owner.FirstName,
		owner.LastName,
		owner.Address,
		owner.IdentityRef,
		owner.PlanTier,
		owner.PlanLabel,
		owner.SubscriptionActive,
		owner.MaxTenants,
		owner.MaxReceiptsRetained,
		owner.LeadStatus,
		owner.AutoSendEnabled,
		owner.RemindersEnabled,
		owner.BankSyncEnabled,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("update owner: %w", core.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("update owner: %w", err)
	}

	return nil
}

func isDuplicateKeyError(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}
