package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/bar-table-reservation/internal/model"
)

// ErrNotificationNotFound is returned when a notification lookup
// matches no row for the account.
var ErrNotificationNotFound = errors.New("notification not found")

// NotificationRepo stores the in-app notification feed.  Writing here
// is the durable half of notification fan-out; push delivery happens in
// queue consumers.
type NotificationRepo struct{ DB *sql.DB }

// NewNotificationRepo constructs a NotificationRepo with the provided
// DB handle.
func NewNotificationRepo(db *sql.DB) *NotificationRepo { return &NotificationRepo{DB: db} }

// Create appends one notification to an account's feed.
func (r *NotificationRepo) Create(ctx context.Context, n *model.Notification) error {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO notifications (account_id, title, message) VALUES (?,?,?)",
		n.AccountID, n.Title, n.Message)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	n.ID = uint64(id)
	return nil
}

// ListByAccount returns an account's notifications, newest first.
func (r *NotificationRepo) ListByAccount(ctx context.Context, accountID uint64) ([]*model.Notification, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT id, account_id, title, message, is_read, created_at
         FROM notifications WHERE account_id=? ORDER BY id DESC`, accountID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []*model.Notification
	for rows.Next() {
		n := new(model.Notification)
		if err := rows.Scan(&n.ID, &n.AccountID, &n.Title, &n.Message, &n.IsRead, &n.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, rows.Err()
}

// MarkRead flags one notification as read, scoped to its owner.
func (r *NotificationRepo) MarkRead(ctx context.Context, id, accountID uint64) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE notifications SET is_read=1 WHERE id=? AND account_id=?", id, accountID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotificationNotFound
	}
	return nil
}
