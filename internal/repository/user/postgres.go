package user

import (
	"context"
	"errors"
	"io"
	"log"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"rickbags/internal/domain"
)

const userColumns = `id, email, password_hash, first_name, last_name, COALESCE(phone, ''), is_admin, is_active, reset_token, reset_token_expires, created_at, updated_at`

type postgresRepo struct {
	pool   *pgxpool.Pool
	logger *log.Logger
}

func NewPostgres(pool *pgxpool.Pool, logger *log.Logger) Repository {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &postgresRepo{pool: pool, logger: logger}
}

func (r *postgresRepo) Create(ctx context.Context, u domain.User) (*domain.User, error) {
	const q = `
INSERT INTO users (email, password_hash, first_name, last_name, phone, is_admin)
VALUES ($1, $2, $3, $4, NULLIF($5, ''), $6)
RETURNING ` + userColumns
	row := r.pool.QueryRow(ctx, q, u.Email, u.PasswordHash, u.FirstName, u.LastName, u.Phone, u.IsAdmin)
	created, err := scanUser(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, domain.ErrAlreadyExists
		}
		r.logger.Printf("user repo: create email=%s error=%v", u.Email, err)
		return nil, err
	}
	return created, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	const q = `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return r.fetchOne(ctx, q, id)
}

func (r *postgresRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	const q = `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	return r.fetchOne(ctx, q, email)
}

func (r *postgresRepo) GetByResetToken(ctx context.Context, token string) (*domain.User, error) {
	const q = `SELECT ` + userColumns + ` FROM users WHERE reset_token = $1`
	return r.fetchOne(ctx, q, token)
}

func (r *postgresRepo) UpdateProfile(ctx context.Context, id int64, firstName, lastName, phone string) error {
	const q = `
UPDATE users
SET first_name = $1, last_name = $2, phone = NULLIF($3, ''), updated_at = now()
WHERE id = $4
`
	cmd, err := r.pool.Exec(ctx, q, firstName, lastName, phone, id)
	if err != nil {
		r.logger.Printf("user repo: update profile id=%d error=%v", id, err)
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *postgresRepo) SetResetToken(ctx context.Context, id int64, token string, expires time.Time) error {
	const q = `
UPDATE users
SET reset_token = $1, reset_token_expires = $2, updated_at = now()
WHERE id = $3
`
	cmd, err := r.pool.Exec(ctx, q, token, expires, id)
	if err != nil {
		r.logger.Printf("user repo: set reset token id=%d error=%v", id, err)
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *postgresRepo) UpdatePassword(ctx context.Context, id int64, passwordHash string) error {
	const q = `
UPDATE users
SET password_hash = $1, reset_token = NULL, reset_token_expires = NULL, updated_at = now()
WHERE id = $2
`
	cmd, err := r.pool.Exec(ctx, q, passwordHash, id)
	if err != nil {
		r.logger.Printf("user repo: update password id=%d error=%v", id, err)
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *postgresRepo) List(ctx context.Context, page, perPage int) ([]domain.User, int64, error) {
	total, err := r.Count(ctx)
	if err != nil {
		return nil, 0, err
	}
	const q = `
SELECT ` + userColumns + `
FROM users
ORDER BY created_at DESC
LIMIT $1 OFFSET $2
`
	rows, err := r.pool.Query(ctx, q, perPage, (page-1)*perPage)
	if err != nil {
		r.logger.Printf("user repo: list error=%v", err)
		return nil, 0, err
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, 0, err
		}
		users = append(users, *u)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

func (r *postgresRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

func (r *postgresRepo) fetchOne(ctx context.Context, q string, arg interface{}) (*domain.User, error) {
	u, err := scanUser(r.pool.QueryRow(ctx, q, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("user repo: fetch error=%v", err)
		return nil, err
	}
	return u, nil
}

func scanUser(row pgx.Row) (*domain.User, error) {
	var u domain.User
	if err := row.Scan(
		&u.ID,
		&u.Email,
		&u.PasswordHash,
		&u.FirstName,
		&u.LastName,
		&u.Phone,
		&u.IsAdmin,
		&u.IsActive,
		&u.ResetToken,
		&u.ResetTokenExpires,
		&u.CreatedAt,
		&u.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &u, nil
}
