// Package audit appends admin actions to the admin_audit table.
package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"gym24/internal/apperrors"

	"github.com/jmoiron/sqlx"
)

const (
	ActionCreate  = "create"
	ActionUpdate  = "update"
	ActionDelete  = "delete"
	ActionAccept  = "accept"
	ActionDecline = "decline"
)

type Entry struct {
	AdminID   string
	Action    string
	TableName string
	RecordID  string
	Payload   interface{}
}

// NewEntry builds an entry; recordID is formatted with %v so numeric and
// uuid ids can share the text column.
func NewEntry(adminID, action, table string, recordID interface{}, payload interface{}) Entry {
	return Entry{
		AdminID:   adminID,
		Action:    action,
		TableName: table,
		RecordID:  fmt.Sprint(recordID),
		Payload:   payload,
	}
}

// Recorder is satisfied by *Log and by test doubles.
type Recorder interface {
	Record(ctx context.Context, e Entry)
}

type Log struct {
	db *sqlx.DB
}

func NewLog(db *sqlx.DB) *Log {
	return &Log{db: db}
}

// Record writes e. Failures are logged and dropped.
func (l *Log) Record(ctx context.Context, e Entry) {
	apperrors.BestEffort(ctx, "audit", func(ctx context.Context) error {
		return l.insert(ctx, e)
	})
}

func (l *Log) insert(ctx context.Context, e Entry) error {
	// a typed nil []byte would reach the driver as empty text, not NULL
	var payload interface{}
	if e.Payload != nil {
		data, err := json.Marshal(e.Payload)
		if err != nil {
			return fmt.Errorf("marshal audit payload: %w", err)
		}
		payload = data
	}

	query := `
		INSERT INTO admin_audit (admin_id, action, table_name, record_id, payload)
		VALUES ($1, $2, $3, $4, $5)
	`

	var adminID interface{}
	if e.AdminID != "" {
		adminID = e.AdminID
	}

	_, err := l.db.ExecContext(ctx, query, adminID, e.Action, e.TableName, e.RecordID, payload)
	return err
}

// Nop discards entries.
type Nop struct{}

func (Nop) Record(context.Context, Entry) {}

// Memory keeps entries in memory.
type Memory struct {
	mu      sync.Mutex
	entries []Entry
}

func (m *Memory) Record(_ context.Context, e Entry) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = append(m.entries, e)
}

func (m *Memory) Entries() []Entry {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Entry(nil), m.entries...)
}
