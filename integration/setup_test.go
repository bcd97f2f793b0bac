package integration_test

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"gym24/internal/auth"
	"gym24/internal/db"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
)

// setupTestDB connects to TEST_DSN and applies the migrations. Tests are
// skipped when no database is configured.
func setupTestDB(t *testing.T) *sqlx.DB {
	t.Helper()
	if testing.Short() {
		t.Skip("Skipping integration test")
	}

	dsn := testDSN()
	if dsn == "" {
		t.Skip("Skipping integration tests: TEST_DSN not set")
	}

	database, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		t.Skipf("Skipping integration tests: cannot connect to test database: %v", err)
	}
	t.Cleanup(func() { database.Close() })

	require.NoError(t, db.RunMigrations(database, "../migrations"))
	cleanDatabase(t, database)
	return database
}

func testDSN() string {
	return os.Getenv("TEST_DSN")
}

func cleanDatabase(t *testing.T, database *sqlx.DB) {
	tables := []string{
		"admin_audit",
		"notifications",
		"contact_messages",
		"contact_requests",
		"reviews",
		"bookings",
		"classes",
		"admin_sessions",
		"admins",
		"profiles",
	}

	for _, table := range tables {
		_, err := database.Exec(fmt.Sprintf("DELETE FROM %s", table))
		require.NoError(t, err, "Failed to clean table "+table)
	}
}

func createMember(t *testing.T, database *sqlx.DB, email, name string) string {
	hash, err := auth.HashPassword("password123")
	require.NoError(t, err)

	var id string
	err = database.QueryRow(`
		INSERT INTO profiles (email, full_name, password_hash)
		VALUES ($1, $2, $3)
		RETURNING id::text
	`, email, name, hash).Scan(&id)
	require.NoError(t, err)
	return id
}

func createAdmin(t *testing.T, database *sqlx.DB, email string) string {
	hash, err := auth.HashPassword("admin-pass")
	require.NoError(t, err)

	var id string
	err = database.QueryRow(`
		INSERT INTO admins (email, full_name, password_hash)
		VALUES ($1, 'Front Desk', $2)
		RETURNING id::text
	`, email, hash).Scan(&id)
	require.NoError(t, err)
	return id
}

func createClass(t *testing.T, database *sqlx.DB, name string, capacity int) int64 {
	var id int64
	err := database.QueryRow(`
		INSERT INTO classes (name, schedule, max_capacity, trainer_name)
		VALUES ($1, $2, $3, 'Sam')
		RETURNING id
	`, name, time.Now().Add(24*time.Hour), capacity).Scan(&id)
	require.NoError(t, err)
	return id
}

type nopMailer struct{}

func (nopMailer) SendBookingConfirmation(context.Context, string, string, string, time.Time) error {
	return nil
}

func (nopMailer) SendRequestAccepted(context.Context, string, string, string) error { return nil }

func (nopMailer) SendRequestDeclined(context.Context, string, string, string) error { return nil }
