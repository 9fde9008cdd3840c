package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/iliyamo/bar-table-reservation/internal/model"
	"github.com/iliyamo/bar-table-reservation/internal/utils"
)

// ErrEmailExists is returned when registering with an address that is
// already taken.
var ErrEmailExists = errors.New("email already exists")

// ErrAccountNotFound is returned when an account lookup matches no row.
var ErrAccountNotFound = errors.New("account not found")

// AccountRepo encapsulates all database queries related to accounts.
type AccountRepo struct{ DB *sql.DB }

// NewAccountRepo constructs an AccountRepo with the provided DB handle.
func NewAccountRepo(db *sql.DB) *AccountRepo { return &AccountRepo{DB: db} }

const accountCols = "id,email,password_hash,full_name,phone,role,bar_id,is_active,created_at,updated_at"

// Create hashes the password and inserts the account, returning its ID.
// The email is normalized to lower case before insertion.
func (r *AccountRepo) Create(ctx context.Context, email, password, fullName, role string, cost int) (uint64, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return 0, err
	}
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO accounts (email, password_hash, full_name, role) VALUES (?,?,?,?)",
		email, hash, fullName, role)
	if err != nil {
		if isDuplicate(err) {
			return 0, ErrEmailExists
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// GetByEmail fetches an account by normalized email.
func (r *AccountRepo) GetByEmail(ctx context.Context, email string) (model.Account, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	return r.scanOne(ctx, "SELECT "+accountCols+" FROM accounts WHERE email=? LIMIT 1", email)
}

// GetByID fetches an account by id.
func (r *AccountRepo) GetByID(ctx context.Context, id uint64) (model.Account, error) {
	return r.scanOne(ctx, "SELECT "+accountCols+" FROM accounts WHERE id=? LIMIT 1", id)
}

// UpdateProfile changes the mutable profile fields (full name, phone).
func (r *AccountRepo) UpdateProfile(ctx context.Context, id uint64, fullName, phone string) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE accounts SET full_name=?, phone=?, updated_at=CURRENT_TIMESTAMP WHERE id=?",
		fullName, phone, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrAccountNotFound
	}
	return nil
}

// AssignStaff turns an account into STAFF of the given bar.  Used by
// admins when onboarding bar personnel.
func (r *AccountRepo) AssignStaff(ctx context.Context, id, barID uint64) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE accounts SET role=?, bar_id=?, updated_at=CURRENT_TIMESTAMP WHERE id=?",
		model.RoleStaff, barID, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrAccountNotFound
	}
	return nil
}

// SetActive toggles whether the account may sign in.
func (r *AccountRepo) SetActive(ctx context.Context, id uint64, active bool) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE accounts SET is_active=?, updated_at=CURRENT_TIMESTAMP WHERE id=?", active, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrAccountNotFound
	}
	return nil
}

// ListByRole returns all accounts with the given role, newest first.
// An empty role lists every account.
func (r *AccountRepo) ListByRole(ctx context.Context, role string) ([]model.Account, error) {
	q := "SELECT " + accountCols + " FROM accounts ORDER BY id DESC"
	args := []any{}
	if role != "" {
		q = "SELECT " + accountCols + " FROM accounts WHERE role=? ORDER BY id DESC"
		args = append(args, role)
	}
	rows, err := r.DB.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []model.Account
	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *AccountRepo) scanOne(ctx context.Context, q string, args ...any) (model.Account, error) {
	var a model.Account
	err := r.DB.QueryRowContext(ctx, q, args...).Scan(
		&a.ID, &a.Email, &a.PasswordHash, &a.FullName, &a.Phone, &a.Role,
		&a.BarID, &a.IsActive, &a.CreatedAt, &a.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Account{}, ErrAccountNotFound
	}
	return a, err
}

func scanAccount(rows *sql.Rows) (model.Account, error) {
	var a model.Account
	err := rows.Scan(&a.ID, &a.Email, &a.PasswordHash, &a.FullName, &a.Phone, &a.Role,
		&a.BarID, &a.IsActive, &a.CreatedAt, &a.UpdatedAt)
	return a, err
}
