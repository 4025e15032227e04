package repository

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"log/slog"
	"time"

	"climacheck-server/internal/modules/weather/types"
)

//go:embed sql/insert-lookup.sql
var insertLookupSQL string

//go:embed sql/get-recent-lookups.sql
var getRecentLookupsSQL string

// timeLayout is fixed width so stored timestamps sort lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

type LookupRepository interface {
	RecordLookup(ctx context.Context, event types.LookupEvent) error
	GetRecentLookups(ctx context.Context, limit int) ([]types.LookupEvent, error)
}

type repositoryImpl struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) LookupRepository {
	return &repositoryImpl{db: db}
}

func (r *repositoryImpl) RecordLookup(ctx context.Context, event types.LookupEvent) error {
	var message any
	if event.Message != "" {
		message = event.Message
	}
	_, err := r.db.ExecContext(ctx, insertLookupSQL,
		event.ID,
		event.City,
		event.Outcome,
		message,
		event.DurationMs,
		event.RequestedAt.UTC().Format(timeLayout),
	)
	if err != nil {
		return fmt.Errorf("insert lookup: %w", err)
	}
	slog.Debug("lookup recorded", "event_id", event.ID, "outcome", event.Outcome)
	return nil
}

// GetRecentLookups returns up to limit events, newest first.
func (r *repositoryImpl) GetRecentLookups(ctx context.Context, limit int) ([]types.LookupEvent, error) {
	rows, err := r.db.QueryContext(ctx, getRecentLookupsSQL, limit)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := rows.Close(); err != nil {
			slog.Error("close lookups rows", "error", err)
		}
	}()

	out := make([]types.LookupEvent, 0)
	for rows.Next() {
		var ev types.LookupEvent
		var ts string
		if err := rows.Scan(&ev.ID, &ev.City, &ev.Outcome, &ev.Message, &ev.DurationMs, &ts); err != nil {
			return nil, err
		}
		t, err := time.Parse(timeLayout, ts)
		if err != nil {
			return nil, fmt.Errorf("parse requested_at %q: %w", ts, err)
		}
		ev.RequestedAt = t
		out = append(out, ev)
	}
	return out, rows.Err()
}
