package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/bar-table-reservation/internal/model"
)

// ErrDrinkNotFound is returned when a drink lookup matches no live row.
var ErrDrinkNotFound = errors.New("drink not found")

// ErrCategoryNotFound is returned when a drink category lookup matches
// no live row.
var ErrCategoryNotFound = errors.New("drink category not found")

// DrinkRepo encapsulates all database queries related to drinks and
// drink categories.
type DrinkRepo struct{ DB *sql.DB }

// NewDrinkRepo constructs a DrinkRepo with the provided DB handle.
func NewDrinkRepo(db *sql.DB) *DrinkRepo { return &DrinkRepo{DB: db} }

const drinkCols = "id,bar_id,category_id,name,price_cents,is_deleted,created_at,updated_at"

// Create inserts a new drink.  On success the ID field is populated.
func (r *DrinkRepo) Create(ctx context.Context, d *model.Drink) error {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO drinks (bar_id, category_id, name, price_cents) VALUES (?,?,?,?)",
		d.BarID, d.CategoryID, d.Name, d.PriceCents)
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
	d.ID = uint64(id)
	return nil
}

// GetByIDAndBar fetches a drink scoped to a bar.
func (r *DrinkRepo) GetByIDAndBar(ctx context.Context, id, barID uint64) (*model.Drink, error) {
	var d model.Drink
	err := r.DB.QueryRowContext(ctx,
		"SELECT "+drinkCols+" FROM drinks WHERE id=? AND bar_id=? AND is_deleted=0", id, barID).Scan(
		&d.ID, &d.BarID, &d.CategoryID, &d.Name, &d.PriceCents, &d.IsDeleted, &d.CreatedAt, &d.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrDrinkNotFound
	}
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// ListByBar returns all non-deleted drinks of a bar, ordered by
// category then name.
func (r *DrinkRepo) ListByBar(ctx context.Context, barID uint64) ([]*model.Drink, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+drinkCols+" FROM drinks WHERE bar_id=? AND is_deleted=0 ORDER BY category_id, name", barID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []*model.Drink
	for rows.Next() {
		d := new(model.Drink)
		if err := rows.Scan(&d.ID, &d.BarID, &d.CategoryID, &d.Name, &d.PriceCents, &d.IsDeleted, &d.CreatedAt, &d.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// PricesByIDs returns a map of drink ID to unit price for the given
// drinks of one bar.  Missing or deleted drinks are absent from the
// map; the caller decides whether that is an error.
func (r *DrinkRepo) PricesByIDs(ctx context.Context, barID uint64, ids []uint64) (map[uint64]uint32, error) {
	prices := make(map[uint64]uint32, len(ids))
	if len(ids) == 0 {
		return prices, nil
	}
	q := "SELECT id, price_cents FROM drinks WHERE bar_id=? AND is_deleted=0 AND id IN ("
	args := make([]any, 0, len(ids)+1)
	args = append(args, barID)
	for i, id := range ids {
		if i > 0 {
			q += ","
		}
		q += "?"
		args = append(args, id)
	}
	q += ")"
	rows, err := r.DB.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var id uint64
		var price uint32
		if err := rows.Scan(&id, &price); err != nil {
			return nil, err
		}
		prices[id] = price
	}
	return prices, rows.Err()
}

// Update rewrites the editable fields of a drink.
func (r *DrinkRepo) Update(ctx context.Context, d *model.Drink) error {
	res, err := r.DB.ExecContext(ctx,
		`UPDATE drinks SET name=?, category_id=?, price_cents=?, updated_at=CURRENT_TIMESTAMP
         WHERE id=? AND bar_id=? AND is_deleted=0`,
		d.Name, d.CategoryID, d.PriceCents, d.ID, d.BarID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrDrinkNotFound
	}
	return nil
}

// SoftDelete marks a drink as deleted.
func (r *DrinkRepo) SoftDelete(ctx context.Context, id, barID uint64) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE drinks SET is_deleted=1, updated_at=CURRENT_TIMESTAMP WHERE id=? AND bar_id=? AND is_deleted=0",
		id, barID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrDrinkNotFound
	}
	return nil
}

// ListCategories returns all non-deleted drink categories.
func (r *DrinkRepo) ListCategories(ctx context.Context) ([]*model.DrinkCategory, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT id, name, description, is_deleted FROM drink_categories WHERE is_deleted=0 ORDER BY name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []*model.DrinkCategory
	for rows.Next() {
		c := new(model.DrinkCategory)
		if err := rows.Scan(&c.ID, &c.Name, &c.Description, &c.IsDeleted); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// CreateCategory inserts a new drink category.
func (r *DrinkRepo) CreateCategory(ctx context.Context, c *model.DrinkCategory) error {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO drink_categories (name, description) VALUES (?,?)", c.Name, c.Description)
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
	c.ID = uint64(id)
	return nil
}
