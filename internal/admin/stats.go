// AngelaMos | 2026
// stats.go

package admin

import (
	"context"
	"fmt"

	"github.com/yembez/quittancesimple/internal/core"
)

// FunnelStats counts accounts along the lead-to-customer funnel.
type FunnelStats struct {
	Leads           int64 `db:"leads"            json:"leads"`
	FreeAccounts    int64 `db:"free_accounts"    json:"free_accounts"`
	PayingCustomers int64 `db:"paying_customers" json:"paying_customers"`
	Tenants         int64 `db:"tenants"          json:"tenants"`
}

type StatsRepository interface {
	FunnelStats(ctx context.Context) (FunnelStats, error)
}

type statsRepository struct {
	db core.DBTX
}

func NewStatsRepository(db core.DBTX) StatsRepository {
	return &statsRepository{db: db}
}

func (r *statsRepository) FunnelStats(
	ctx context.Context,
) (FunnelStats, error) {
	query := `
		SELECT
			COUNT(*) FILTER (WHERE lead_status = 'lead')            AS leads,
			COUNT(*) FILTER (WHERE lead_status = 'free_account')    AS free_accounts,
			COUNT(*) FILTER (WHERE lead_status = 'paying_customer') AS paying_customers,
			(SELECT COUNT(*) FROM tenants)                          AS tenants
		FROM owners
		WHERE deleted_at IS NULL`

	var stats FunnelStats
	if err := r.db.GetContext(ctx, &stats, query); err != nil {
		return FunnelStats{}, fmt.Errorf("funnel stats: %w", err)
	}

	return stats, nil
}
