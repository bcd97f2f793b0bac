// Package email queues outgoing mail on a Redis list and delivers it over
// SMTP from a background worker.
package email

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/smtp"
	"strings"
	"time"

	"gym24/internal/logger"
	"gym24/internal/metrics"

	"github.com/redis/go-redis/v9"
)

const (
	queueKey       = "emails"
	failedQueueKey = "emails:failed"
	maxTries       = 3
)

const (
	TypeBookingConfirmation = "booking_confirmation"
	TypeRequestAccepted     = "request_accepted"
	TypeRequestDeclined     = "request_declined"
)

type EmailJob struct {
	Type    string    `json:"type"`
	To      string    `json:"to"`
	Name    string    `json:"name"`
	Subject string    `json:"subject"`
	Body    string    `json:"body"`
	Tries   int       `json:"tries"`
	Created time.Time `json:"created"`
}

type Config struct {
	From     string
	FromName string
	SMTPHost string
	SMTPPort string
	SMTPUser string
	SMTPPass string
}

type Service struct {
	redis      *redis.Client
	cfg        Config
	send       func(job EmailJob) error
	retryDelay time.Duration
}

func New(client *redis.Client, cfg Config) *Service {
	s := &Service{
		redis:      client,
		cfg:        cfg,
		retryDelay: 5 * time.Second,
	}
	s.send = s.sendNow
	return s
}

func (s *Service) enqueue(ctx context.Context, job EmailJob) error {
	if job.To == "" {
		return errors.New("email recipient is empty")
	}
	if strings.ContainsAny(job.To, "\r\n") {
		return errors.New("email recipient contains a line break")
	}
	job.Subject = headerValue(job.Subject)
	job.Created = time.Now()

	data, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("marshal email job: %w", err)
	}

	if err := s.redis.LPush(ctx, queueKey, string(data)).Err(); err != nil {
		return fmt.Errorf("queue email to %s: %w", job.To, err)
	}

	logger.Info("email queued", "type", job.Type, "to", job.To)
	return nil
}

// Start consumes the queue until ctx is done.
func (s *Service) Start(ctx context.Context) {
	logger.Info("email worker started")

	for {
		select {
		case <-ctx.Done():
			logger.Info("email worker stopped")
			return
		default:
			s.processNext(ctx)
		}
	}
}

func (s *Service) processNext(ctx context.Context) {
	result, err := s.redis.BRPop(ctx, 2*time.Second, queueKey).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) && ctx.Err() == nil {
			logger.WithError(err).Warn("email queue pop failed")
			// keep a dead Redis from turning this loop into a spin
			time.Sleep(time.Second)
		}
		return
	}

	var job EmailJob
	if err := json.Unmarshal([]byte(result[1]), &job); err != nil {
		logger.WithError(err).Error("bad email job")
		return
	}

	job.Tries++
	if err := s.send(job); err != nil {
		logger.WithError(err).Warn("email delivery failed", "to", job.To, "attempt", job.Tries)

		if job.Tries < maxTries {
			if s.retryDelay > 0 {
				time.Sleep(s.retryDelay)
			}
			data, _ := json.Marshal(job)
			s.redis.LPush(context.Background(), queueKey, string(data))
			return
		}

		metrics.RecordEmail(job.Type, "failed")
		s.saveFailed(job, err)
		return
	}

	metrics.RecordEmail(job.Type, "sent")
	logger.Info("email sent", "type", job.Type, "to", job.To)
}

// headerValue folds any line breaks into spaces so user-supplied text cannot
// start a new header.
func headerValue(v string) string {
	return strings.Join(strings.FieldsFunc(v, func(r rune) bool { return r == '\r' || r == '\n' }), " ")
}

func (s *Service) message(job EmailJob) string {
	message := fmt.Sprintf("From: %s <%s>\r\n", headerValue(s.cfg.FromName), headerValue(s.cfg.From))
	message += fmt.Sprintf("To: %s\r\n", headerValue(job.To))
	message += fmt.Sprintf("Subject: %s\r\n", headerValue(job.Subject))
	return message + "\r\n" + job.Body
}

func (s *Service) sendNow(job EmailJob) error {
	message := s.message(job)

	var auth smtp.Auth
	if s.cfg.SMTPUser != "" && s.cfg.SMTPPass != "" {
		auth = smtp.PlainAuth("", s.cfg.SMTPUser, s.cfg.SMTPPass, s.cfg.SMTPHost)
	}

	addr := s.cfg.SMTPHost + ":" + s.cfg.SMTPPort
	return smtp.SendMail(addr, auth, s.cfg.From, []string{job.To}, []byte(message))
}

func (s *Service) saveFailed(job EmailJob, err error) {
	failed := map[string]interface{}{
		"job":   job,
		"error": err.Error(),
		"time":  time.Now(),
	}
	data, _ := json.Marshal(failed)
	s.redis.LPush(context.Background(), failedQueueKey, string(data))
	logger.Error("email moved to failed queue", "to", job.To, "type", job.Type)
}

func (s *Service) QueueLength(ctx context.Context) int64 {
	length, err := s.redis.LLen(ctx, queueKey).Result()
	if err != nil {
		return 0
	}
	metrics.EmailQueueLength.Set(float64(length))
	return length
}

func (s *Service) SendBookingConfirmation(ctx context.Context, to, name, className string, when time.Time) error {
	body := fmt.Sprintf(`Hi %s,

Your spot is booked!

Class: %s
Time: %s

See you at the gym!

- %s`, name, className, when.Format("Jan 2, 2006 at 3:04 PM"), s.cfg.FromName)

	return s.enqueue(ctx, EmailJob{
		Type:    TypeBookingConfirmation,
		To:      to,
		Name:    name,
		Subject: "Booking Confirmed - " + className,
		Body:    body,
	})
}

func (s *Service) SendRequestAccepted(ctx context.Context, to, name, subject string) error {
	body := fmt.Sprintf(`Hi %s,

Your message request "%s" was accepted. You can now chat with our team from your dashboard.

- %s`, name, subject, s.cfg.FromName)

	return s.enqueue(ctx, EmailJob{
		Type:    TypeRequestAccepted,
		To:      to,
		Name:    name,
		Subject: "Your message request was accepted",
		Body:    body,
	})
}

func (s *Service) SendRequestDeclined(ctx context.Context, to, name, subject string) error {
	body := fmt.Sprintf(`Hi %s,

Your message request "%s" was declined by the admin.

- %s`, name, subject, s.cfg.FromName)

	return s.enqueue(ctx, EmailJob{
		Type:    TypeRequestDeclined,
		To:      to,
		Name:    name,
		Subject: "Your message request was declined",
		Body:    body,
	})
}
