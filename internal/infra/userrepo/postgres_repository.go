package userrepo

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/yanqian/style-ai/internal/domain/auth"
	"github.com/yanqian/style-ai/internal/domain/outfit"
)

const dateLayout = "2006-01-02"

// PostgresRepository persists users in Postgres.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// Create inserts a new user row, translating the email unique constraint
// into auth.ErrEmailExists.
func (r *PostgresRepository) Create(ctx context.Context, user auth.User) (auth.User, error) {
	var dob *time.Time
	if user.DateOfBirth != "" {
		parsed, err := time.Parse(dateLayout, user.DateOfBirth)
		if err != nil {
			return auth.User{}, err
		}
		dob = &parsed
	}
	var gender *string
	if user.Gender != "" {
		gender = &user.Gender
	}
	row := r.pool.QueryRow(ctx, `
		INSERT INTO users (name, email, password_hash, gender, date_of_birth)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, name, email, password_hash, gender, date_of_birth, created_at
	`, user.Name, user.Email, user.PasswordHash, gender, dob)
	created, err := scanUser(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return auth.User{}, auth.ErrEmailExists
		}
		return auth.User{}, err
	}
	return created, nil
}

// GetByEmail fetches a user by email.
func (r *PostgresRepository) GetByEmail(ctx context.Context, email string) (auth.User, bool, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, name, email, password_hash, gender, date_of_birth, created_at
		FROM users
		WHERE email = $1
		LIMIT 1
	`, email)
	if err != nil {
		return auth.User{}, false, err
	}
	defer rows.Close()
	if !rows.Next() {
		return auth.User{}, false, rows.Err()
	}
	user, err := scanUser(rows)
	if err != nil {
		return auth.User{}, false, err
	}
	return user, true, rows.Err()
}

// GetByID fetches by primary key.
func (r *PostgresRepository) GetByID(ctx context.Context, id int64) (auth.User, bool, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, name, email, password_hash, gender, date_of_birth, created_at
		FROM users
		WHERE id = $1
		LIMIT 1
	`, id)
	if err != nil {
		return auth.User{}, false, err
	}
	defer rows.Close()
	if !rows.Next() {
		return auth.User{}, false, rows.Err()
	}
	user, err := scanUser(rows)
	if err != nil {
		return auth.User{}, false, err
	}
	return user, true, rows.Err()
}

// Profile exposes the demographic fields used for prompt composition.
func (r *PostgresRepository) Profile(ctx context.Context, userID int64) (outfit.Profile, bool, error) {
	user, found, err := r.GetByID(ctx, userID)
	if err != nil || !found {
		return outfit.Profile{}, false, err
	}
	return outfit.Profile{Gender: user.Gender, DateOfBirth: user.DateOfBirth}, true, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (auth.User, error) {
	var user auth.User
	var gender *string
	var dob *time.Time
	var created time.Time
	if err := row.Scan(&user.ID, &user.Name, &user.Email, &user.PasswordHash, &gender, &dob, &created); err != nil {
		return auth.User{}, err
	}
	if gender != nil {
		user.Gender = *gender
	}
	if dob != nil {
		user.DateOfBirth = dob.Format(dateLayout)
	}
	user.CreatedAt = created.UTC()
	return user, nil
}

var _ auth.Repository = (*PostgresRepository)(nil)
var _ outfit.ProfileProvider = (*PostgresRepository)(nil)
