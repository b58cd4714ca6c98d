package user

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresRepository implements Repository using PostgreSQL. Unique indexes
// on email and phone_number are the final authority on uniqueness; a
// violation surfaces as EmailTakenError or PhoneTakenError so two concurrent
// writers cannot both succeed.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository builds a Postgres-backed user repository.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const userColumns = `id, first_name, last_name, email, email_verified, country_code,
        phone_number, phone_verified, password_hash, role, created_at, updated_at, password_updated_at`

// Create inserts a new user and returns the record with its assigned id.
func (r *PostgresRepository) Create(ctx context.Context, u User) (User, error) {
	row := r.db.QueryRow(ctx, `INSERT INTO users
        (first_name, last_name, email, email_verified, country_code, phone_number,
         phone_verified, password_hash, role, created_at, updated_at, password_updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
        RETURNING id`,
		u.FirstName, u.LastName, u.Email, u.EmailVerified, string(u.CountryCode), u.PhoneNumber,
		u.PhoneVerified, u.PasswordHash, string(u.Role), u.CreatedAt.UTC(), u.UpdatedAt.UTC(), u.PasswordUpdatedAt.UTC())
	if err := row.Scan(&u.ID); err != nil {
		return User{}, mapUniqueViolation(err, u)
	}
	return u, nil
}

// FindByID fetches a user by identifier.
func (r *PostgresRepository) FindByID(ctx context.Context, id int) (User, error) {
	row := r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	u, err := scanUser(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return User{}, NotFoundError{ID: id}
	}
	return u, err
}

// FindByEmail fetches a user by email, reporting absence via the boolean.
func (r *PostgresRepository) FindByEmail(ctx context.Context, email string) (User, bool, error) {
	row := r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
	u, err := scanUser(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return User{}, false, nil
	}
	if err != nil {
		return User{}, false, err
	}
	return u, true, nil
}

// FindByPhone fetches a user by raw phone number.
func (r *PostgresRepository) FindByPhone(ctx context.Context, phoneNumber string) (User, bool, error) {
	row := r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE phone_number = $1`, phoneNumber)
	u, err := scanUser(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return User{}, false, nil
	}
	if err != nil {
		return User{}, false, err
	}
	return u, true, nil
}

// ExistsByID reports whether a user with the id exists.
func (r *PostgresRepository) ExistsByID(ctx context.Context, id int) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE id = $1)`, id).Scan(&exists)
	return exists, err
}

// Update overwrites the full record for a previously fetched user.
func (r *PostgresRepository) Update(ctx context.Context, u User) error {
	cmd, err := r.db.Exec(ctx, `UPDATE users SET
        first_name = $2, last_name = $3, email = $4, email_verified = $5, country_code = $6,
        phone_number = $7, phone_verified = $8, password_hash = $9, role = $10,
        updated_at = $11, password_updated_at = $12
        WHERE id = $1`,
		u.ID, u.FirstName, u.LastName, u.Email, u.EmailVerified, string(u.CountryCode),
		u.PhoneNumber, u.PhoneVerified, u.PasswordHash, string(u.Role),
		u.UpdatedAt.UTC(), u.PasswordUpdatedAt.UTC())
	if err != nil {
		return mapUniqueViolation(err, u)
	}
	if cmd.RowsAffected() == 0 {
		return NotFoundError{ID: u.ID}
	}
	return nil
}

// Delete removes the user. Deleting an unknown id is an error, not a no-op.
func (r *PostgresRepository) Delete(ctx context.Context, id int) error {
	cmd, err := r.db.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return NotFoundError{ID: id}
	}
	return nil
}

// List returns the requested zero-based page ordered by first name ascending.
func (r *PostgresRepository) List(ctx context.Context, page, size int) ([]User, error) {
	rows, err := r.db.Query(ctx, `SELECT `+userColumns+` FROM users
        ORDER BY first_name ASC, id ASC LIMIT $1 OFFSET $2`, size, page*size)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func scanUser(row pgx.Row) (User, error) {
	var (
		u           User
		countryCode string
		role        string
	)
	err := row.Scan(&u.ID, &u.FirstName, &u.LastName, &u.Email, &u.EmailVerified, &countryCode,
		&u.PhoneNumber, &u.PhoneVerified, &u.PasswordHash, &role,
		&u.CreatedAt, &u.UpdatedAt, &u.PasswordUpdatedAt)
	if err != nil {
		return User{}, err
	}
	u.CountryCode = CountryCode(countryCode)
	u.Role = Role(role)
	u.CreatedAt = u.CreatedAt.UTC()
	u.UpdatedAt = u.UpdatedAt.UTC()
	u.PasswordUpdatedAt = u.PasswordUpdatedAt.UTC()
	return u, nil
}

// mapUniqueViolation translates SQLSTATE 23505 on the email or phone unique
// index into the matching domain conflict error.
func mapUniqueViolation(err error, u User) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != "23505" {
		return err
	}
	switch {
	case strings.Contains(pgErr.ConstraintName, "email"):
		return EmailTakenError{Email: u.Email}
	case strings.Contains(pgErr.ConstraintName, "phone"):
		return PhoneTakenError{PhoneNumber: u.PhoneNumber}
	}
	return err
}
