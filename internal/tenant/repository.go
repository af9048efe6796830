// AngelaMos | 2026
// repository.go

package tenant

import (
	"context"
	"fmt"

	"github.com/yembez/quittancesimple/internal/core"
)

type Repository interface {
	Create(ctx context.Context, tenant *Tenant) error
	CountByOwner(ctx context.Context, ownerID string) (int, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, tenant *Tenant) error {
	query := `
		INSERT INTO tenants (
			id, owner_id, name, home_address,
			monthly_rent, monthly_charges,
			reminder_day, reminder_hour, reminder_minute,
			periodicity, payment_status, active
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING created_at, updated_at`

	err := r.db.GetContext(ctx, tenant, query,
		tenant.ID,
		tenant.OwnerID,
		tenant.Name,
		tenant.HomeAddress,
		tenant.MonthlyRent,
		tenant.MonthlyCharges,
		tenant.ReminderDay,
		tenant.ReminderHour,
		tenant.ReminderMinute,
		tenant.Periodicity,
		tenant.PaymentStatus,
		tenant.Active,
	)
	if err != nil {
		return fmt.Errorf("create tenant: %w", err)
	}

	return nil
}

func (r *repository) CountByOwner(
	ctx context.Context,
	ownerID string,
) (int, error) {
	query := `SELECT COUNT(*) FROM tenants WHERE owner_id = $1`

	var count int
	if err := r.db.GetContext(ctx, &count, query, ownerID); err != nil {
		return 0, fmt.Errorf("count tenants: %w", err)
	}

	return count, nil
}
