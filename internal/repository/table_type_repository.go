package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/bar-table-reservation/internal/model"
)

// ErrTableTypeNotFound is returned when a table type lookup matches no
// live row.
var ErrTableTypeNotFound = errors.New("table type not found")

// TableTypeRepo encapsulates all database queries related to table
// types.
type TableTypeRepo struct{ DB *sql.DB }

// NewTableTypeRepo constructs a TableTypeRepo with the provided DB
// handle.
func NewTableTypeRepo(db *sql.DB) *TableTypeRepo { return &TableTypeRepo{DB: db} }

const tableTypeCols = "id,bar_id,name,description,min_guests,max_guests,is_deleted"

// Create inserts a new table type for a bar.
func (r *TableTypeRepo) Create(ctx context.Context, tt *model.TableType) error {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO table_types (bar_id, name, description, min_guests, max_guests) VALUES (?,?,?,?,?)",
		tt.BarID, tt.Name, tt.Description, tt.MinGuests, tt.MaxGuests)
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
	tt.ID = uint64(id)
	return nil
}

// GetByIDAndBar fetches a table type scoped to a bar.
func (r *TableTypeRepo) GetByIDAndBar(ctx context.Context, id, barID uint64) (*model.TableType, error) {
	var tt model.TableType
	err := r.DB.QueryRowContext(ctx,
		"SELECT "+tableTypeCols+" FROM table_types WHERE id=? AND bar_id=? AND is_deleted=0",
		id, barID).Scan(&tt.ID, &tt.BarID, &tt.Name, &tt.Description, &tt.MinGuests, &tt.MaxGuests, &tt.IsDeleted)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrTableTypeNotFound
	}
	if err != nil {
		return nil, err
	}
	return &tt, nil
}

// ListByBar returns all non-deleted table types of a bar.
func (r *TableTypeRepo) ListByBar(ctx context.Context, barID uint64) ([]*model.TableType, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+tableTypeCols+" FROM table_types WHERE bar_id=? AND is_deleted=0 ORDER BY min_guests", barID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []*model.TableType
	for rows.Next() {
		tt := new(model.TableType)
		if err := rows.Scan(&tt.ID, &tt.BarID, &tt.Name, &tt.Description, &tt.MinGuests, &tt.MaxGuests, &tt.IsDeleted); err != nil {
			return nil, err
		}
		out = append(out, tt)
	}
	return out, rows.Err()
}

// Update rewrites the editable fields of a table type.
func (r *TableTypeRepo) Update(ctx context.Context, tt *model.TableType) error {
	res, err := r.DB.ExecContext(ctx,
		`UPDATE table_types SET name=?, description=?, min_guests=?, max_guests=?
         WHERE id=? AND bar_id=? AND is_deleted=0`,
		tt.Name, tt.Description, tt.MinGuests, tt.MaxGuests, tt.ID, tt.BarID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrTableTypeNotFound
	}
	return nil
}

// SoftDelete marks a table type as deleted.  Fails with ErrConflict
// while live tables still reference it.
func (r *TableTypeRepo) SoftDelete(ctx context.Context, id, barID uint64) error {
	var n int
	if err := r.DB.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM tables WHERE table_type_id=? AND is_deleted=0", id).Scan(&n); err != nil {
		return err
	}
	if n > 0 {
		return ErrConflict
	}
	res, err := r.DB.ExecContext(ctx,
		"UPDATE table_types SET is_deleted=1 WHERE id=? AND bar_id=? AND is_deleted=0", id, barID)
	if err != nil {
		return err
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return ErrTableTypeNotFound
	}
	return nil
}
