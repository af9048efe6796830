// AngelaMos | 2026
// importer.go

package tenant

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/yembez/quittancesimple/internal/core"
)

// ErrSkipped reports that the prefill was incomplete and no tenant was
// created. It is not a failure; callers log it at debug level at most.
var ErrSkipped = errors.New("tenant prefill incomplete, import skipped")

// Prefill is the tenant data carried over from the quote/estimate page.
// Rent and charges arrive as raw text from the form.
type Prefill struct {
	Name           string
	HomeAddress    string
	MonthlyRent    string
	MonthlyCharges string
}

func (p Prefill) complete() bool {
	return strings.TrimSpace(p.Name) != "" &&
		strings.TrimSpace(p.HomeAddress) != "" &&
		strings.TrimSpace(p.MonthlyRent) != ""
}

type Importer struct {
	repo Repository
}

func NewImporter(repo Repository) *Importer {
	return &Importer{repo: repo}
}

// ImportIfComplete creates one tenant for the owner when all required
// prefill fields are present, and does nothing at all otherwise. Missing
// charges default to zero. The tenant is never created partially.
func (i *Importer) ImportIfComplete(
	ctx context.Context,
	ownerID string,
	prefill Prefill,
) (*Tenant, error) {
	if !prefill.complete() {
		return nil, ErrSkipped
	}

	rent, err := parseAmount(prefill.MonthlyRent)
	if err != nil {
		return nil, fmt.Errorf("import tenant: rent: %w", err)
	}

	charges := 0.0
	if strings.TrimSpace(prefill.MonthlyCharges) != "" {
		charges, err = parseAmount(prefill.MonthlyCharges)
		if err != nil {
			return nil, fmt.Errorf("import tenant: charges: %w", err)
		}
	}

	t := &Tenant{
		ID:             uuid.New().String(),
		OwnerID:        ownerID,
		Name:           strings.TrimSpace(prefill.Name),
		HomeAddress:    strings.TrimSpace(prefill.HomeAddress),
		MonthlyRent:    rent,
		MonthlyCharges: charges,
		ReminderDay:    1,
		ReminderHour:   9,
		ReminderMinute: 0,
		Periodicity:    PeriodicityMonthly,
		PaymentStatus:  PaymentStatusPending,
		Active:         true,
	}

	if err := i.repo.Create(ctx, t); err != nil {
		return nil, err
	}

	return t, nil
}

// parseAmount accepts French decimal commas as well as dots.
func parseAmount(raw string) (float64, error) {
	cleaned := strings.ReplaceAll(strings.TrimSpace(raw), ",", ".")

	amount, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, fmt.Errorf("parse amount %q: %w", raw, core.ErrInvalidInput)
	}

	if amount < 0 {
		return 0, fmt.Errorf(
			"amount %q must be non-negative: %w",
			raw,
			core.ErrInvalidInput,
		)
	}

	return amount, nil
}
