package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/bar-table-reservation/internal/model"
)

// ErrBarNotFound is returned when a bar cannot be found or has been
// soft-deleted.
var ErrBarNotFound = errors.New("bar not found")

// BarRepo encapsulates all database queries related to bars.
type BarRepo struct{ DB *sql.DB }

// NewBarRepo constructs a BarRepo with the provided DB handle.
func NewBarRepo(db *sql.DB) *BarRepo { return &BarRepo{DB: db} }

const barCols = "id,name,address,phone,email,description,open_time,close_time,discount,is_deleted,created_at,updated_at"

// Create inserts a new bar.  On success the ID field is populated.
func (r *BarRepo) Create(ctx context.Context, b *model.Bar) error {
	res, err := r.DB.ExecContext(ctx,
		`INSERT INTO bars (name, address, phone, email, description, open_time, close_time, discount)
         VALUES (?,?,?,?,?,?,?,?)`,
		b.Name, b.Address, b.Phone, b.Email, b.Description, b.OpenTime, b.CloseTime, b.Discount)
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
	b.ID = uint64(id)
	return nil
}

// GetByID fetches a bar by its ID.  Soft-deleted bars are reported as
// not found.
func (r *BarRepo) GetByID(ctx context.Context, id uint64) (*model.Bar, error) {
	var b model.Bar
	err := r.DB.QueryRowContext(ctx,
		"SELECT "+barCols+" FROM bars WHERE id=? AND is_deleted=0", id).Scan(
		&b.ID, &b.Name, &b.Address, &b.Phone, &b.Email, &b.Description,
		&b.OpenTime, &b.CloseTime, &b.Discount, &b.IsDeleted, &b.CreatedAt, &b.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBarNotFound
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// List returns all non-deleted bars ordered by name.
func (r *BarRepo) List(ctx context.Context) ([]*model.Bar, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+barCols+" FROM bars WHERE is_deleted=0 ORDER BY name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []*model.Bar
	for rows.Next() {
		b := new(model.Bar)
		if err := rows.Scan(&b.ID, &b.Name, &b.Address, &b.Phone, &b.Email, &b.Description,
			&b.OpenTime, &b.CloseTime, &b.Discount, &b.IsDeleted, &b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

// Update rewrites the editable fields of a bar.  Returns ErrBarNotFound
// when no live row matches.
func (r *BarRepo) Update(ctx context.Context, b *model.Bar) error {
	res, err := r.DB.ExecContext(ctx,
		`UPDATE bars SET name=?, address=?, phone=?, email=?, description=?,
                open_time=?, close_time=?, discount=?, updated_at=CURRENT_TIMESTAMP
         WHERE id=? AND is_deleted=0`,
		b.Name, b.Address, b.Phone, b.Email, b.Description,
		b.OpenTime, b.CloseTime, b.Discount, b.ID)
	if err != nil {
		if isDuplicate(err) {
			return ErrConflict
		}
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrBarNotFound
	}
	return nil
}

// SoftDelete marks a bar as deleted.  Its tables, drinks and events
// stay in place for historical bookings but stop appearing in listings.
func (r *BarRepo) SoftDelete(ctx context.Context, id uint64) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE bars SET is_deleted=1, updated_at=CURRENT_TIMESTAMP WHERE id=? AND is_deleted=0", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrBarNotFound
	}
	return nil
}
