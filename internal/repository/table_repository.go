package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/iliyamo/bar-table-reservation/internal/hold"
	"github.com/iliyamo/bar-table-reservation/internal/model"
)

// ErrTableNotFound is returned when a table cannot be found in the DB.
var ErrTableNotFound = errors.New("table not found")

// TableRepo encapsulates all database queries related to bar tables.
// It also serves as the hold core's table lookup collaborator, see
// GetTable and ListTables.
type TableRepo struct{ DB *sql.DB }

// NewTableRepo constructs a TableRepo with the provided DB handle.
func NewTableRepo(db *sql.DB) *TableRepo { return &TableRepo{DB: db} }

const tableCols = "id,bar_id,table_type_id,name,is_deleted,created_at,updated_at"

// Create inserts a new table.  On success the ID field is populated.
func (r *TableRepo) Create(ctx context.Context, t *model.BarTable) error {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO tables (bar_id, table_type_id, name) VALUES (?,?,?)",
		t.BarID, t.TableTypeID, t.Name)
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
	t.ID = uint64(id)
	return nil
}

// GetByIDAndBar fetches a table by id, scoped to a bar.  Soft-deleted
// tables are still returned here so admin views can show them; the hold
// core filters them via the IsDeleted flag.
func (r *TableRepo) GetByIDAndBar(ctx context.Context, id, barID uint64) (*model.BarTable, error) {
	var t model.BarTable
	err := r.DB.QueryRowContext(ctx,
		"SELECT "+tableCols+" FROM tables WHERE id=? AND bar_id=?", id, barID).Scan(
		&t.ID, &t.BarID, &t.TableTypeID, &t.Name, &t.IsDeleted, &t.CreatedAt, &t.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrTableNotFound
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// ListByBar returns all non-deleted tables of a bar ordered by name.
func (r *TableRepo) ListByBar(ctx context.Context, barID uint64) ([]*model.BarTable, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+tableCols+" FROM tables WHERE bar_id=? AND is_deleted=0 ORDER BY name", barID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []*model.BarTable
	for rows.Next() {
		t := new(model.BarTable)
		if err := rows.Scan(&t.ID, &t.BarID, &t.TableTypeID, &t.Name, &t.IsDeleted, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// Update renames a table or moves it to another type.
func (r *TableRepo) Update(ctx context.Context, t *model.BarTable) error {
	res, err := r.DB.ExecContext(ctx,
		`UPDATE tables SET name=?, table_type_id=?, updated_at=CURRENT_TIMESTAMP
         WHERE id=? AND bar_id=? AND is_deleted=0`,
		t.Name, t.TableTypeID, t.ID, t.BarID)
	if err != nil {
		if isDuplicate(err) {
			return ErrConflict
		}
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrTableNotFound
	}
	return nil
}

// SoftDelete marks a table as deleted.  Deleted tables stop being
// holdable or bookable immediately.
func (r *TableRepo) SoftDelete(ctx context.Context, id, barID uint64) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE tables SET is_deleted=1, updated_at=CURRENT_TIMESTAMP WHERE id=? AND bar_id=? AND is_deleted=0",
		id, barID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrTableNotFound
	}
	return nil
}

// GetTable implements hold.TableFinder.  The hold core's sentinel is
// wrapped in so hold.Manager callers can errors.Is against it.
func (r *TableRepo) GetTable(ctx context.Context, barID, tableID uint64) (hold.Table, error) {
	t, err := r.GetByIDAndBar(ctx, tableID, barID)
	if errors.Is(err, ErrTableNotFound) {
		return hold.Table{}, fmt.Errorf("%w: table %d in bar %d", hold.ErrTableNotFound, tableID, barID)
	}
	if err != nil {
		return hold.Table{}, err
	}
	return hold.Table{ID: t.ID, BarID: t.BarID, IsDeleted: t.IsDeleted}, nil
}

// ListTables implements hold.TableFinder.
func (r *TableRepo) ListTables(ctx context.Context, barID uint64) ([]hold.Table, error) {
	tables, err := r.ListByBar(ctx, barID)
	if err != nil {
		return nil, err
	}
	out := make([]hold.Table, 0, len(tables))
	for _, t := range tables {
		out = append(out, hold.Table{ID: t.ID, BarID: t.BarID, IsDeleted: t.IsDeleted})
	}
	return out, nil
}
