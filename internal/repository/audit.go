package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/grovert/maintassist/internal/recurrence"
)

// AuditRecord is one created maintenance window as recorded locally,
// independent of whether Zabbix later deletes the window.
type AuditRecord struct {
	ID             int64           `json:"id"`
	MaintenanceID  string          `json:"maintenance_id"`
	Name           string          `json:"name"`
	UserID         string          `json:"user_id,omitempty"`
	Ticket         string          `json:"ticket,omitempty"`
	RecurrenceKind recurrence.Kind `json:"recurrence_kind"`
	Hosts          []string        `json:"hosts"`
	Groups         []string        `json:"groups"`
	ActiveSince    int64           `json:"active_since"`
	ActiveTill     int64           `json:"active_till"`
	CreatedAt      time.Time       `json:"created_at"`
}

// AuditRepository persists maintenance creation records.
type AuditRepository struct {
	db *sql.DB
}

func NewAuditRepository(db *sql.DB) *AuditRepository {
	return &AuditRepository{db: db}
}

// Save inserts a record and fills in its ID and CreatedAt.
func (r *AuditRepository) Save(ctx context.Context, rec *AuditRecord) error {
	hosts, err := json.Marshal(orEmpty(rec.Hosts))
	if err != nil {
		return fmt.Errorf("encoding hosts: %w", err)
	}
	groups, err := json.Marshal(orEmpty(rec.Groups))
	if err != nil {
		return fmt.Errorf("encoding groups: %w", err)
	}
	now := time.Now().UTC()

	result, err := r.db.ExecContext(ctx, `
		INSERT INTO maintenance_audit
			(maintenance_id, name, user_id, ticket, recurrence_kind,
			 hosts, groups, active_since, active_till, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.MaintenanceID, rec.Name, rec.UserID, rec.Ticket,
		string(rec.RecurrenceKind), string(hosts), string(groups),
		rec.ActiveSince, rec.ActiveTill, now.Unix())
	if err != nil {
		return fmt.Errorf("inserting audit record: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("reading insert id: %w", err)
	}
	rec.ID = id
	rec.CreatedAt = now
	return nil
}

// Recent returns up to limit records, newest first.
func (r *AuditRepository) Recent(ctx context.Context, limit int) ([]AuditRecord, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, maintenance_id, name, user_id, ticket, recurrence_kind,
		       hosts, groups, active_since, active_till, created_at
		FROM maintenance_audit
		ORDER BY created_at DESC, id DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying audit records: %w", err)
	}
	defer rows.Close()

	var records []AuditRecord
	for rows.Next() {
		var rec AuditRecord
		var kind, hosts, groups string
		var createdAt int64
		if err := rows.Scan(&rec.ID, &rec.MaintenanceID, &rec.Name,
			&rec.UserID, &rec.Ticket, &kind, &hosts, &groups,
			&rec.ActiveSince, &rec.ActiveTill, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning audit record: %w", err)
		}
		rec.RecurrenceKind = recurrence.Kind(kind)
		rec.CreatedAt = time.Unix(createdAt, 0).UTC()
		if err := json.Unmarshal([]byte(hosts), &rec.Hosts); err != nil {
			return nil, fmt.Errorf("decoding hosts: %w", err)
		}
		if err := json.Unmarshal([]byte(groups), &rec.Groups); err != nil {
			return nil, fmt.Errorf("decoding groups: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

func orEmpty(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
