package postgres

import (
	"context"
	"database/sql"

	"tradejournal/internal/domain/user"
	"tradejournal/pkg/errors"
)

// Compile-time check that we implement the interface
var _ user.Repository = (*UserRepository)(nil)

// UserRepository implements user.Repository using sqlx
type UserRepository struct {
	db DBTX
}

// NewUserRepository creates a new user repository
func NewUserRepository(db DBTX) *UserRepository {
	return &UserRepository{db: instrument("users", db)}
}

const userColumns = `
	id, email, password_hash, first_name, last_name, mobile, date_of_birth,
	address_line1, address_line2, city, postal_code, country, gender,
	initial_capital, created_at, updated_at`

// Create inserts a new user and fills in the generated ID
func (r *UserRepository) Create(ctx context.Context, u *user.User) error {
	query := `
		INSERT INTO users (
			email, password_hash, first_name, last_name, mobile, date_of_birth,
			address_line1, address_line2, city, postal_code, country, gender,
			initial_capital, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15
		) RETURNING id`

	err := r.db.QueryRowContext(ctx, query,
		u.Email, u.PasswordHash, u.FirstName, u.LastName, u.Mobile, u.DateOfBirth,
		u.AddressLine1, u.AddressLine2, u.City, u.PostalCode, u.Country, u.Gender,
		u.InitialCapital, u.CreatedAt, u.UpdatedAt,
	).Scan(&u.ID)
	if isUniqueViolation(err) {
		return errors.Wrap(errors.ErrAlreadyExists, "email already registered")
	}
	return err
}

// GetByID retrieves a user by ID
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*user.User, error) {
	var u user.User
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	err := r.db.GetContext(ctx, &u, query, id)
	if err == sql.ErrNoRows {
		return nil, errors.Wrap(errors.ErrNotFound, "user not found")
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// GetByEmail retrieves a user by email
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	var u user.User
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`

	err := r.db.GetContext(ctx, &u, query, email)
	if err == sql.ErrNoRows {
		return nil, errors.Wrap(errors.ErrNotFound, "user not found")
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// Update persists all mutable user fields
func (r *UserRepository) Update(ctx context.Context, u *user.User) error {
	query := `
		UPDATE users SET
			first_name = $1, last_name = $2, mobile = $3, date_of_birth = $4,
			address_line1 = $5, address_line2 = $6, city = $7, postal_code = $8,
			country = $9, gender = $10, initial_capital = $11, updated_at = NOW()
		WHERE id = $12`

	result, err := r.db.ExecContext(ctx, query,
		u.FirstName, u.LastName, u.Mobile, u.DateOfBirth,
		u.AddressLine1, u.AddressLine2, u.City, u.PostalCode,
		u.Country, u.Gender, u.InitialCapital, u.ID,
	)
	if err != nil {
		return err
	}
	return requireAffected(result, "user not found")
}

// Delete removes a user
func (r *UserRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return requireAffected(result, "user not found")
}
