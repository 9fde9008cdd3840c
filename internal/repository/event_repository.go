package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/iliyamo/bar-table-reservation/internal/model"
)

// ErrEventNotFound is returned when an event lookup matches no live row.
var ErrEventNotFound = errors.New("event not found")

// EventRepo encapsulates all database queries related to bar events.
type EventRepo struct{ DB *sql.DB }

// NewEventRepo constructs an EventRepo with the provided DB handle.
func NewEventRepo(db *sql.DB) *EventRepo { return &EventRepo{DB: db} }

const eventCols = "id,bar_id,name,description,starts_at,ends_at,is_deleted,created_at,updated_at"

// Create inserts a new event.  On success the ID field is populated.
func (r *EventRepo) Create(ctx context.Context, e *model.Event) error {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO events (bar_id, name, description, starts_at, ends_at) VALUES (?,?,?,?,?)",
		e.BarID, e.Name, e.Description, e.StartsAt.UTC(), e.EndsAt.UTC())
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	e.ID = uint64(id)
	return nil
}

// GetByIDAndBar fetches an event scoped to a bar.
func (r *EventRepo) GetByIDAndBar(ctx context.Context, id, barID uint64) (*model.Event, error) {
	var e model.Event
	err := r.DB.QueryRowContext(ctx,
		"SELECT "+eventCols+" FROM events WHERE id=? AND bar_id=? AND is_deleted=0", id, barID).Scan(
		&e.ID, &e.BarID, &e.Name, &e.Description, &e.StartsAt, &e.EndsAt, &e.IsDeleted, &e.CreatedAt, &e.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrEventNotFound
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// ListUpcomingByBar returns non-deleted events of a bar that have not
// ended yet, soonest first.
func (r *EventRepo) ListUpcomingByBar(ctx context.Context, barID uint64) ([]*model.Event, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+eventCols+" FROM events WHERE bar_id=? AND is_deleted=0 AND ends_at > UTC_TIMESTAMP() ORDER BY starts_at",
		barID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []*model.Event
	for rows.Next() {
		e := new(model.Event)
		if err := rows.Scan(&e.ID, &e.BarID, &e.Name, &e.Description, &e.StartsAt, &e.EndsAt, &e.IsDeleted, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// Update rewrites the editable fields of an event.
func (r *EventRepo) Update(ctx context.Context, e *model.Event) error {
	res, err := r.DB.ExecContext(ctx,
		`UPDATE events SET name=?, description=?, starts_at=?, ends_at=?, updated_at=CURRENT_TIMESTAMP
         WHERE id=? AND bar_id=? AND is_deleted=0`,
		e.Name, e.Description, e.StartsAt.UTC(), e.EndsAt.UTC(), e.ID, e.BarID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrEventNotFound
	}
	return nil
}

// SoftDelete marks an event as deleted.
func (r *EventRepo) SoftDelete(ctx context.Context, id, barID uint64) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE events SET is_deleted=1, updated_at=CURRENT_TIMESTAMP WHERE id=? AND bar_id=? AND is_deleted=0",
		id, barID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrEventNotFound
	}
	return nil
}

// ExpirePast soft-deletes events whose end time passed before the given
// cutoff.  Called periodically by the maintenance loop so stale events
// disappear from browse pages even without an admin touching them.
func (r *EventRepo) ExpirePast(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE events SET is_deleted=1, updated_at=CURRENT_TIMESTAMP WHERE is_deleted=0 AND ends_at < ?",
		cutoff.UTC())
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
