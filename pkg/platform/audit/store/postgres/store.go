package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	audit "pawdesk/pkg/platform/audit"
)

// Store persists audit entries in the audit_entries table for diagnostics
// queries that outlive the in-memory buffer.
type Store struct {
	db *sql.DB
}

// New creates a PostgreSQL audit store.
func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// Schema creates the audit_entries table. Called at startup; idempotent.
const Schema = `
CREATE TABLE IF NOT EXISTS audit_entries (
	id         UUID PRIMARY KEY,
	recorded_at TIMESTAMPTZ NOT NULL,
	category   TEXT NOT NULL,
	event      TEXT NOT NULL,
	detail     JSONB,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS audit_entries_category_recorded_at_idx
	ON audit_entries (category, recorded_at DESC);
`

// Migrate applies the schema.
func (s *Store) Migrate(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, Schema); err != nil {
		return fmt.Errorf("migrate audit_entries: %w", err)
	}
	return nil
}

// Append inserts one audit entry. Duplicate IDs are ignored so replays from
// the worker stay idempotent.
func (s *Store) Append(ctx context.Context, entry audit.Entry) error {
	var detail []byte
	if len(entry.Detail) > 0 {
		data, err := json.Marshal(entry.Detail)
		if err != nil {
			return fmt.Errorf("marshal audit detail: %w", err)
		}
		detail = data
	}

	query := `
		INSERT INTO audit_entries (id, recorded_at, category, event, detail)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO NOTHING
	`
	_, err := s.db.ExecContext(ctx, query,
		entry.ID,
		entry.Timestamp,
		string(entry.Category),
		entry.Event,
		detail,
	)
	if err != nil {
		return fmt.Errorf("insert audit entry: %w", err)
	}
	return nil
}

// ListRecent returns the last limit entries for a category in insertion
// order (oldest first).
func (s *Store) ListRecent(ctx context.Context, category audit.Category, limit int) ([]audit.Entry, error) {
	if limit <= 0 {
		limit = audit.DefaultCapacity
	}

	query := `
		SELECT id, recorded_at, category, event, detail
		FROM audit_entries
		WHERE category = $1
		ORDER BY recorded_at DESC
		LIMIT $2
	`
	rows, err := s.db.QueryContext(ctx, query, string(category), limit)
	if err != nil {
		return nil, fmt.Errorf("query audit entries: %w", err)
	}
	defer rows.Close()

	var entries []audit.Entry
	for rows.Next() {
		var (
			idStr     string
			recorded  time.Time
			cat       string
			event     string
			detailRaw []byte
		)
		if err := rows.Scan(&idStr, &recorded, &cat, &event, &detailRaw); err != nil {
			return nil, fmt.Errorf("scan audit entry: %w", err)
		}
		entryID, err := uuid.Parse(idStr)
		if err != nil {
			return nil, fmt.Errorf("parse audit entry id: %w", err)
		}
		var detail map[string]string
		if len(detailRaw) > 0 {
			if err := json.Unmarshal(detailRaw, &detail); err != nil {
				return nil, fmt.Errorf("unmarshal audit detail: %w", err)
			}
		}
		entries = append(entries, audit.Entry{
			ID:        entryID,
			Timestamp: recorded,
			Category:  audit.Category(cat),
			Event:     event,
			Detail:    detail,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate audit entries: %w", err)
	}

	// Flip DESC query order back to insertion order.
	for i, j := 0, len(entries)-1; i < j; i, j = i+1, j-1 {
		entries[i], entries[j] = entries[j], entries[i]
	}
	return entries, nil
}
