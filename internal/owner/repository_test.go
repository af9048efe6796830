// AngelaMos | 2026
// repository_test.go

package owner

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yembez/quittancesimple/internal/core"
)

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()

	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { mockDB.Close() })

	return sqlx.NewDb(mockDB, "sqlmock"), mock
}

func ownerRows(o *Owner) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "email", "first_name", "last_name", "address", "identity_ref",
		"plan_tier", "plan_label", "subscription_active",
		"max_tenants", "max_receipts_retained", "lead_status",
		"auto_send_enabled", "reminders_enabled", "bank_sync_enabled",
		"created_at", "updated_at", "deleted_at",
	}).AddRow(
		o.ID, o.Email, o.FirstName, o.LastName, o.Address, o.IdentityRef,
		o.PlanTier, o.PlanLabel, o.SubscriptionActive,
		o.MaxTenants, o.MaxReceiptsRetained, o.LeadStatus,
		o.AutoSendEnabled, o.RemindersEnabled, o.BankSyncEnabled,
		o.CreatedAt, o.UpdatedAt, nil,
	)
}

func TestGetByEmailFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewRepository(db)

	stored := &Owner{
		ID:         "row-1",
		Email:      "a@b.com",
		FirstName:  "Anne",
		PlanTier:   "free",
		LeadStatus: "free_account",
		CreatedAt:  time.Now(),
		UpdatedAt:  time.Now(),
	}

	mock.ExpectQuery(`SELECT(.|\n)+FROM owners(.|\n)+WHERE email = \$1 AND deleted_at IS NULL`).
		WithArgs("a@b.com").
		WillReturnRows(ownerRows(stored))

	o, err := repo.GetByEmail(context.Background(), "a@b.com")
	require.NoError(t, err)
	assert.Equal(t, "row-1", o.ID)
	assert.Equal(t, "Anne", o.FirstName)
	assert.True(t, o.IsLead())

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByEmailMiss(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewRepository(db)

	mock.ExpectQuery(`SELECT(.|\n)+FROM owners`).
		WithArgs("missing@b.com").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.GetByEmail(context.Background(), "missing@b.com")
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrNotFound)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateMapsUniqueViolation(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewRepository(db)

	mock.ExpectQuery(`INSERT INTO owners`).
		WillReturnError(&pgconn.PgError{Code: "23505"})

	err := repo.Create(context.Background(), &Owner{
		ID:    "row-2",
		Email: "race@b.com",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrDuplicateKey)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateReturnsTimestamps(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewRepository(db)

	now := time.Now()
	mock.ExpectQuery(`INSERT INTO owners`).
		WillReturnRows(
			sqlmock.NewRows([]string{"created_at", "updated_at"}).
				AddRow(now, now),
		)

	o := &Owner{ID: "row-3", Email: "new@b.com"}
	err := repo.Create(context.Background(), o)
	require.NoError(t, err)
	assert.WithinDuration(t, now, o.CreatedAt, time.Second)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateByEmailKeepsPrimaryKey(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewRepository(db)

	now := time.Now()
	mock.ExpectQuery(`UPDATE owners(.|\n)+WHERE email = \$1 AND deleted_at IS NULL(.|\n)+RETURNING id, updated_at`).
		WillReturnRows(
			sqlmock.NewRows([]string{"id", "updated_at"}).
				AddRow("lead-row-1", now),
		)

	o := &Owner{Email: "lead@b.com", FirstName: "Anne"}
	err := repo.UpdateByEmail(context.Background(), o)
	require.NoError(t, err)

	// The row id comes back from the database, proving the update hit the
	// existing lead row rather than inserting a new one.
	assert.Equal(t, "lead-row-1", o.ID)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateByEmailNoRow(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewRepository(db)

	mock.ExpectQuery(`UPDATE owners`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "updated_at"}))

	err := repo.UpdateByEmail(context.Background(), &Owner{Email: "gone@b.com"})
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrNotFound)

	require.NoError(t, mock.ExpectationsWereMet())
}
