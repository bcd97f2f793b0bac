package notification

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var notificationRowColumns = []string{"id", "recipient_id", "actor_role", "type", "request_id", "content", "is_read", "created_at"}

func setupRepo(t *testing.T) (Repository, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	sqlxDB := sqlx.NewDb(db, "sqlmock")
	t.Cleanup(func() { sqlxDB.Close() })
	return NewRepository(sqlxDB), mock
}

func TestRepository_ListForRecipient(t *testing.T) {
	repo, mock := setupRepo(t)
	since := time.Now().Add(-24 * time.Hour)
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta("WHERE recipient_id = $1 AND created_at >= $2 ORDER BY created_at DESC LIMIT $3")).
		WithArgs(recipient, since, DefaultLimit).
		WillReturnRows(sqlmock.NewRows(notificationRowColumns).
			AddRow(1, recipient, "admin", TypeRequestAccepted, 5, "accepted", false, now).
			AddRow(2, recipient, "admin", TypeRequestDeclined, nil, "declined", true, now))

	got, err := repo.ListForRecipient(context.Background(), recipient, since, DefaultLimit)
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.NotNil(t, got[0].RequestRef)
	assert.Equal(t, int64(5), *got[0].RequestRef)
	assert.Nil(t, got[1].RequestRef)
}

func TestRepository_Insert(t *testing.T) {
	repo, mock := setupRepo(t)
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO notifications (recipient_id, actor_role, type, request_id, content)")).
		WithArgs(recipient, ActorAdmin, TypeRequestAccepted, int64(5), "ok").
		WillReturnRows(sqlmock.NewRows(notificationRowColumns).AddRow(3, recipient, ActorAdmin, TypeRequestAccepted, 5, "ok", false, now))

	n, err := repo.Insert(context.Background(), New(recipient, ActorAdmin, TypeRequestAccepted, 5, "ok"))
	require.NoError(t, err)
	assert.Equal(t, int64(3), n.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_MarkReadScopedByRecipient(t *testing.T) {
	repo, mock := setupRepo(t)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE notifications SET is_read = TRUE WHERE id = $1 AND recipient_id = $2")).
		WithArgs(int64(4), recipient).
		WillReturnResult(sqlmock.NewResult(0, 1))

	n, err := repo.MarkRead(context.Background(), recipient, 4)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestRepository_DeleteOlderThan(t *testing.T) {
	repo, mock := setupRepo(t)
	cutoff := time.Now().Add(-24 * time.Hour)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM notifications WHERE created_at < $1")).
		WithArgs(cutoff).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM notifications WHERE created_at < $1")).
		WithArgs(cutoff).
		WillReturnResult(sqlmock.NewResult(0, 2))

	count, err := repo.CountOlderThan(context.Background(), cutoff)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	deleted, err := repo.DeleteOlderThan(context.Background(), cutoff)
	require.NoError(t, err)
	assert.Equal(t, int64(2), deleted)
	require.NoError(t, mock.ExpectationsWereMet())
}
