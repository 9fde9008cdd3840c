package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/iliyamo/bar-table-reservation/internal/model"
)

// ErrBookingNotFound is returned when a booking lookup matches no row.
var ErrBookingNotFound = errors.New("booking not found")

// BookingRepo encapsulates all database queries related to bookings,
// their reserved tables and their drink pre-orders.
type BookingRepo struct{ DB *sql.DB }

// NewBookingRepo constructs a BookingRepo with the provided DB handle.
func NewBookingRepo(db *sql.DB) *BookingRepo { return &BookingRepo{DB: db} }

const bookingCols = "id,code,account_id,bar_id,reservation_date,reservation_time,guest_count,note,status,total_cents,created_at,updated_at"

// CreateTx inserts a booking plus its table and drink lines inside the
// provided transaction.  The booking code is generated here; the caller
// commits or rolls back.  On success b.ID and b.Code are populated.
func (r *BookingRepo) CreateTx(ctx context.Context, tx *sql.Tx, b *model.Booking, tableIDs []uint64, drinks []model.BookingDrink) error {
	b.Code = uuid.NewString()
	b.Status = model.BookingPending
	res, err := tx.ExecContext(ctx,
		`INSERT INTO bookings (code, account_id, bar_id, reservation_date, reservation_time, guest_count, note, status, total_cents)
         VALUES (?,?,?,?,?,?,?,?,?)`,
		b.Code, b.AccountID, b.BarID, b.ReservationDate, b.ReservationTime, b.GuestCount, b.Note, b.Status, b.TotalCents)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	b.ID = uint64(id)

	for _, tableID := range tableIDs {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO booking_tables (booking_id, table_id) VALUES (?,?)", b.ID, tableID); err != nil {
			return err
		}
	}
	for _, d := range drinks {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO booking_drinks (booking_id, drink_id, quantity, price_cents) VALUES (?,?,?,?)",
			b.ID, d.DrinkID, d.Quantity, d.PriceCents); err != nil {
			return err
		}
	}
	return nil
}

// HasActiveBookingTx reports whether any non-cancelled booking already
// reserves the table for the slot.  Called inside the conversion
// transaction as the final re-validation after the in-memory hold
// check, since holds alone are advisory.
func (r *BookingRepo) HasActiveBookingTx(ctx context.Context, tx *sql.Tx, tableID uint64, date, timeSlot string) (bool, error) {
	var n int
	err := tx.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM bookings b
         JOIN booking_tables bt ON bt.booking_id = b.id
         WHERE bt.table_id=? AND b.reservation_date=? AND b.reservation_time=? AND b.status IN (?,?)`,
		tableID, date, timeSlot, model.BookingPending, model.BookingServing).Scan(&n)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// GetByIDForAccount fetches one booking owned by the account.  Lookups
// for another account's booking report ErrForbidden so handlers can
// distinguish 403 from 404.
func (r *BookingRepo) GetByIDForAccount(ctx context.Context, id, accountID uint64) (*model.Booking, error) {
	b, err := r.getByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if b.AccountID != accountID {
		return nil, ErrForbidden
	}
	return b, nil
}

func (r *BookingRepo) getByID(ctx context.Context, id uint64) (*model.Booking, error) {
	var b model.Booking
	err := r.DB.QueryRowContext(ctx,
		"SELECT "+bookingCols+" FROM bookings WHERE id=?", id).Scan(
		&b.ID, &b.Code, &b.AccountID, &b.BarID, &b.ReservationDate, &b.ReservationTime,
		&b.GuestCount, &b.Note, &b.Status, &b.TotalCents, &b.CreatedAt, &b.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// ListByAccount returns all bookings of one account, newest first.
func (r *BookingRepo) ListByAccount(ctx context.Context, accountID uint64) ([]*model.Booking, error) {
	return r.list(ctx, "SELECT "+bookingCols+" FROM bookings WHERE account_id=? ORDER BY id DESC", accountID)
}

// ListByBarAndStatus returns a bar's bookings filtered by status,
// newest first.  An empty status returns every booking of the bar.
func (r *BookingRepo) ListByBarAndStatus(ctx context.Context, barID uint64, status string) ([]*model.Booking, error) {
	if status == "" {
		return r.list(ctx, "SELECT "+bookingCols+" FROM bookings WHERE bar_id=? ORDER BY id DESC", barID)
	}
	return r.list(ctx, "SELECT "+bookingCols+" FROM bookings WHERE bar_id=? AND status=? ORDER BY id DESC", barID, status)
}

func (r *BookingRepo) list(ctx context.Context, q string, args ...any) ([]*model.Booking, error) {
	rows, err := r.DB.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []*model.Booking
	for rows.Next() {
		b := new(model.Booking)
		if err := rows.Scan(&b.ID, &b.Code, &b.AccountID, &b.BarID, &b.ReservationDate, &b.ReservationTime,
			&b.GuestCount, &b.Note, &b.Status, &b.TotalCents, &b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

// TableIDs returns the tables reserved by one booking.
func (r *BookingRepo) TableIDs(ctx context.Context, bookingID uint64) ([]uint64, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT table_id FROM booking_tables WHERE booking_id=?", bookingID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []uint64
	for rows.Next() {
		var id uint64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, rows.Err()
}

// Drinks returns the drink pre-order lines of one booking.
func (r *BookingRepo) Drinks(ctx context.Context, bookingID uint64) ([]model.BookingDrink, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT id, booking_id, drink_id, quantity, price_cents FROM booking_drinks WHERE booking_id=?", bookingID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []model.BookingDrink
	for rows.Next() {
		var d model.BookingDrink
		if err := rows.Scan(&d.ID, &d.BookingID, &d.DrinkID, &d.Quantity, &d.PriceCents); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// UpdateStatus moves a booking along its lifecycle.  Transitions are
// restricted: PENDING may become SERVING or CANCELLED, SERVING may
// become COMPLETED.  Anything else reports ErrConflict.
func (r *BookingRepo) UpdateStatus(ctx context.Context, id, barID uint64, status string) error {
	var allowedFrom string
	switch status {
	case model.BookingServing, model.BookingCancelled:
		allowedFrom = model.BookingPending
	case model.BookingCompleted:
		allowedFrom = model.BookingServing
	default:
		return ErrConflict
	}
	res, err := r.DB.ExecContext(ctx,
		"UPDATE bookings SET status=?, updated_at=CURRENT_TIMESTAMP WHERE id=? AND bar_id=? AND status=?",
		status, id, barID, allowedFrom)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		// Either the booking does not exist for this bar or it is in
		// the wrong state; look it up to report the right error.
		if _, err := r.getForBar(ctx, id, barID); err != nil {
			return err
		}
		return ErrConflict
	}
	return nil
}

// CancelByAccount cancels a customer's own PENDING booking.
func (r *BookingRepo) CancelByAccount(ctx context.Context, id, accountID uint64) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE bookings SET status=?, updated_at=CURRENT_TIMESTAMP WHERE id=? AND account_id=? AND status=?",
		model.BookingCancelled, id, accountID, model.BookingPending)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		b, err := r.getByID(ctx, id)
		if err != nil {
			return err
		}
		if b.AccountID != accountID {
			return ErrForbidden
		}
		return ErrConflict
	}
	return nil
}

func (r *BookingRepo) getForBar(ctx context.Context, id, barID uint64) (*model.Booking, error) {
	b, err := r.getByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if b.BarID != barID {
		return nil, ErrBookingNotFound
	}
	return b, nil
}

// RevenueByBar sums completed booking totals per day over a date range
// (inclusive).  Dates are YYYY-MM-DD strings matching the booking slot
// columns.
func (r *BookingRepo) RevenueByBar(ctx context.Context, barID uint64, from, to string) (map[string]uint64, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT reservation_date, COALESCE(SUM(total_cents),0)
         FROM bookings
         WHERE bar_id=? AND status=? AND reservation_date BETWEEN ? AND ?
         GROUP BY reservation_date ORDER BY reservation_date`,
		barID, model.BookingCompleted, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make(map[string]uint64)
	for rows.Next() {
		var day string
		var total uint64
		if err := rows.Scan(&day, &total); err != nil {
			return nil, err
		}
		out[day] = total
	}
	return out, rows.Err()
}
