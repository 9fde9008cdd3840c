package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/bar-table-reservation/internal/model"
)

// ErrFeedbackNotFound is returned when a feedback lookup matches no
// live row.
var ErrFeedbackNotFound = errors.New("feedback not found")

// FeedbackRepo encapsulates all database queries related to customer
// feedback.
type FeedbackRepo struct{ DB *sql.DB }

// NewFeedbackRepo constructs a FeedbackRepo with the provided DB handle.
func NewFeedbackRepo(db *sql.DB) *FeedbackRepo { return &FeedbackRepo{DB: db} }

// Create inserts feedback for a completed booking.  One review per
// booking is enforced by a unique key on booking_id.
func (r *FeedbackRepo) Create(ctx context.Context, f *model.Feedback) error {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO feedback (account_id, bar_id, booking_id, rating, comment) VALUES (?,?,?,?,?)",
		f.AccountID, f.BarID, f.BookingID, f.Rating, f.Comment)
	if err != nil {
		if isDuplicate(err) {
			return ErrConflict
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	f.ID = uint64(id)
	return nil
}

// ListByBar returns all live feedback of a bar, newest first.
func (r *FeedbackRepo) ListByBar(ctx context.Context, barID uint64) ([]*model.Feedback, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT id, account_id, bar_id, booking_id, rating, comment, is_deleted, created_at
         FROM feedback WHERE bar_id=? AND is_deleted=0 ORDER BY id DESC`, barID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []*model.Feedback
	for rows.Next() {
		f := new(model.Feedback)
		if err := rows.Scan(&f.ID, &f.AccountID, &f.BarID, &f.BookingID, &f.Rating, &f.Comment, &f.IsDeleted, &f.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, rows.Err()
}

// SoftDelete hides feedback (admin moderation).
func (r *FeedbackRepo) SoftDelete(ctx context.Context, id uint64) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE feedback SET is_deleted=1 WHERE id=? AND is_deleted=0", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrFeedbackNotFound
	}
	return nil
}
