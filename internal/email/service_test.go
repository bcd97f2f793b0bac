package email

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"gym24/internal/metrics"

	"github.com/go-redis/redismock/v9"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(rdb *redis.Client) *Service {
	s := New(rdb, Config{
		From:     "noreply@gym24.fit",
		FromName: "The 24 Fitness Gym",
		SMTPHost: "smtp.test.local",
		SMTPPort: "1025",
	})
	s.retryDelay = 0
	return s
}

func TestSendBookingConfirmation(t *testing.T) {
	db, mock := redismock.NewClientMock()
	ctx := context.Background()

	mock.Regexp().ExpectLPush("emails", `.*booking_confirmation.*`).SetVal(1)

	svc := newTestService(db)
	err := svc.SendBookingConfirmation(ctx, "member@example.com", "Dana", "Spin", time.Now().Add(24*time.Hour))
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSendRequestTemplates(t *testing.T) {
	db, mock := redismock.NewClientMock()
	ctx := context.Background()

	mock.Regexp().ExpectLPush("emails", `.*request_accepted.*`).SetVal(1)
	mock.Regexp().ExpectLPush("emails", `.*request_declined.*`).SetVal(2)

	svc := newTestService(db)
	assert.NoError(t, svc.SendRequestAccepted(ctx, "member@example.com", "Dana", "Locker"))
	assert.NoError(t, svc.SendRequestDeclined(ctx, "member@example.com", "Dana", "Locker"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEnqueue_EmptyRecipient(t *testing.T) {
	db, mock := redismock.NewClientMock()

	svc := newTestService(db)
	err := svc.SendRequestDeclined(context.Background(), "", "Dana", "Locker")
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEnqueue_RedisDown(t *testing.T) {
	db, mock := redismock.NewClientMock()

	mock.Regexp().ExpectLPush("emails", `.*`).SetErr(errors.New("connection refused"))

	svc := newTestService(db)
	err := svc.SendBookingConfirmation(context.Background(), "member@example.com", "Dana", "Spin", time.Now())
	assert.ErrorContains(t, err, "connection refused")
}

func TestProcessNext_Delivers(t *testing.T) {
	db, mock := redismock.NewClientMock()
	ctx := context.Background()

	job, err := json.Marshal(EmailJob{Type: TypeRequestAccepted, To: "member@example.com", Subject: "hi"})
	require.NoError(t, err)
	mock.ExpectBRPop(2*time.Second, "emails").SetVal([]string{"emails", string(job)})

	svc := newTestService(db)
	var delivered []EmailJob
	svc.send = func(job EmailJob) error {
		delivered = append(delivered, job)
		return nil
	}

	before := testutil.ToFloat64(metrics.EmailsSentTotal.WithLabelValues(TypeRequestAccepted, "sent"))
	svc.processNext(ctx)

	require.Len(t, delivered, 1)
	assert.Equal(t, 1, delivered[0].Tries)
	assert.Equal(t, before+1, testutil.ToFloat64(metrics.EmailsSentTotal.WithLabelValues(TypeRequestAccepted, "sent")))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProcessNext_MovesToFailedAfterLastAttempt(t *testing.T) {
	db, mock := redismock.NewClientMock()
	ctx := context.Background()

	job, err := json.Marshal(EmailJob{Type: TypeBookingConfirmation, To: "member@example.com", Tries: maxTries - 1})
	require.NoError(t, err)
	mock.ExpectBRPop(2*time.Second, "emails").SetVal([]string{"emails", string(job)})
	mock.Regexp().ExpectLPush("emails:failed", `.*smtp down.*`).SetVal(1)

	svc := newTestService(db)
	svc.send = func(EmailJob) error { return errors.New("smtp down") }

	svc.processNext(ctx)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProcessNext_Requeues(t *testing.T) {
	db, mock := redismock.NewClientMock()
	ctx := context.Background()

	job, err := json.Marshal(EmailJob{Type: TypeBookingConfirmation, To: "member@example.com"})
	require.NoError(t, err)
	mock.ExpectBRPop(2*time.Second, "emails").SetVal([]string{"emails", string(job)})
	mock.Regexp().ExpectLPush("emails", `.*"tries":1.*`).SetVal(1)

	svc := newTestService(db)
	svc.send = func(EmailJob) error { return errors.New("smtp down") }

	svc.processNext(ctx)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestQueueLength(t *testing.T) {
	db, mock := redismock.NewClientMock()

	mock.ExpectLLen("emails").SetVal(4)

	svc := newTestService(db)
	assert.Equal(t, int64(4), svc.QueueLength(context.Background()))
	assert.Equal(t, float64(4), testutil.ToFloat64(metrics.EmailQueueLength))
}

func TestSendBookingConfirmation_ClassNameCannotInjectHeaders(t *testing.T) {
	db, mock := redismock.NewClientMock()
	ctx := context.Background()

	mock.Regexp().ExpectLPush("emails", `.*"subject":"Booking Confirmed - Spin Bcc: victim@example.com".*`).SetVal(1)

	svc := newTestService(db)
	err := svc.SendBookingConfirmation(ctx, "member@example.com", "Dana", "Spin\r\nBcc: victim@example.com", time.Now())
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEnqueue_RecipientWithLineBreak(t *testing.T) {
	db, mock := redismock.NewClientMock()

	err := newTestService(db).SendRequestAccepted(context.Background(), "a@example.com\r\nBcc: b@example.com", "Dana", "Locker")

	assert.ErrorContains(t, err, "line break")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMessage_HeadersStayOnOneLine(t *testing.T) {
	svc := newTestService(nil)

	msg := svc.message(EmailJob{
		To:      "member@example.com",
		Subject: "Hello\nX-Injected: yes",
		Body:    "line one\r\nline two",
	})

	headers, body, found := strings.Cut(msg, "\r\n\r\n")
	require.True(t, found)
	assert.Equal(t, []string{
		"From: The 24 Fitness Gym <noreply@gym24.fit>",
		"To: member@example.com",
		"Subject: Hello X-Injected: yes",
	}, strings.Split(headers, "\r\n"))
	assert.Equal(t, "line one\r\nline two", body)
}
