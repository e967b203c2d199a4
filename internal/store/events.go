package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/squorange/focus-tools-sub000/internal/model"
)

type pendingEvent struct {
	typ      string
	entityID string
	payload  []byte
}

func newPendingEvent(typ, entityID string, payload any) (pendingEvent, error) {
	typ = strings.TrimSpace(typ)
	if typ == "" {
		return pendingEvent{}, errors.New("event: missing type")
	}
	entityID = strings.TrimSpace(entityID)
	if entityID == "" {
		return pendingEvent{}, errors.New("event: missing entity id")
	}
	pb, err := json.Marshal(payload)
	if err != nil {
		return pendingEvent{}, err
	}
	return pendingEvent{typ: typ, entityID: entityID, payload: pb}, nil
}

// AppendEvent records an entry in the workspace activity log.
func (s Store) AppendEvent(ctx context.Context, typ, entityID string, payload any) error {
	ev, err := newPendingEvent(typ, entityID, payload)
	if err != nil {
		return err
	}

	db, err := s.openSQLite(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	tx, err := db.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if err := insertEventTx(ctx, tx, ev); err != nil {
		return err
	}
	return tx.Commit()
}

func insertEventTx(ctx context.Context, tx *sql.Tx, ev pendingEvent) error {
	var seq int64
	if err := tx.QueryRowContext(ctx, `SELECT COALESCE(MAX(seq), 0) + 1 FROM events`).Scan(&seq); err != nil {
		return err
	}
	_, err := tx.ExecContext(ctx, `INSERT INTO events(event_id, seq, type, entity_id, payload_json, issued_at_unixms) VALUES(?, ?, ?, ?, ?, ?)`,
		uuid.NewString(), seq, ev.typ, ev.entityID, string(ev.payload), time.Now().UTC().UnixMilli())
	return err
}

// ReadEvents returns the last limit events (all when limit <= 0), oldest
// first. An empty entityID matches every entity.
func (s Store) ReadEvents(ctx context.Context, entityID string, limit int) ([]model.Event, error) {
	db, err := s.openSQLite(ctx)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	q := `SELECT event_id, issued_at_unixms, type, entity_id, payload_json FROM events`
	var args []any
	if entityID = strings.TrimSpace(entityID); entityID != "" {
		q += ` WHERE entity_id = ?`
		args = append(args, entityID)
	}
	q += ` ORDER BY seq DESC`
	if limit > 0 {
		q += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Event{}
	for rows.Next() {
		var id, typ, entity, payloadJSON string
		var tsMs int64
		if err := rows.Scan(&id, &tsMs, &typ, &entity, &payloadJSON); err != nil {
			return nil, err
		}
		var payload any
		if err := json.Unmarshal([]byte(payloadJSON), &payload); err != nil {
			return nil, fmt.Errorf("event %s: decoding payload: %w", id, err)
		}
		out = append(out, model.Event{
			ID:       id,
			TS:       time.UnixMilli(tsMs).UTC(),
			Type:     typ,
			EntityID: entity,
			Payload:  payload,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// Reverse into chronological order.
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out, nil
}
