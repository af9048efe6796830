// AngelaMos | 2026
// entity.go

package tenant

import (
	"time"
)

// Tenant is a renter record owned by exactly one landlord.
type Tenant struct {
	ID             string    `db:"id"`
	OwnerID        string    `db:"owner_id"`
	Name           string    `db:"name"`
	HomeAddress    string    `db:"home_address"`
	MonthlyRent    float64   `db:"monthly_rent"`
	MonthlyCharges float64   `db:"monthly_charges"`
	ReminderDay    int       `db:"reminder_day"`
	ReminderHour   int       `db:"reminder_hour"`
	ReminderMinute int       `db:"reminder_minute"`
	Periodicity    string    `db:"periodicity"`
	PaymentStatus  string    `db:"payment_status"`
	Active         bool      `db:"active"`
	CreatedAt      time.Time `db:"created_at"`
	UpdatedAt      time.Time `db:"updated_at"`
}

const (
	PeriodicityMonthly = "monthly"

	PaymentStatusPending = "pending"
)
