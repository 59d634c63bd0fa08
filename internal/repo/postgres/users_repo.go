package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lukirizki/articlehub/internal/apperr"
	"github.com/lukirizki/articlehub/internal/domain/user"
	"github.com/lukirizki/articlehub/internal/observability"
)

const usersEmailUniq = "users_email_key"

type UsersRepo struct {
	pool *pgxpool.Pool
	prom *observability.Prom
}

func NewUsersRepo(pool *pgxpool.Pool, prom *observability.Prom) *UsersRepo {
	return &UsersRepo{pool: pool, prom: prom}
}

func (r *UsersRepo) Create(ctx context.Context, req user.RegisterRequest) (user.User, error) {
	u, err := user.NewFromRegisterRequest(req)
	if err != nil {
		return user.User{}, err
	}

	err = r.Insert(ctx, u)
	if err != nil {
		return user.User{}, err
	}

	return u, nil
}

// Insert stores an already built user.
func (r *UsersRepo) Insert(ctx context.Context, u user.User) error {
	err := r.prom.ObserveDB(ctx, "users.insert", func(ctx context.Context) error {
		_, e := r.pool.Exec(ctx,
			`INSERT INTO users (id, fullname, email, password_hash, created_at, updated_at)
			VALUES ($1,$2,$3,$4,$5,$6)`,
			u.ID, u.Fullname, u.Email, u.PasswordHash, u.CreatedAt, u.UpdatedAt,
		)
		return e
	})

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" && pgErr.ConstraintName == usersEmailUniq {
			return apperr.Wrap(apperr.KindDuplicateEmail, err)
		}
		return err
	}

	return nil
}

func (r *UsersRepo) GetByEmail(ctx context.Context, email string) (user.User, error) {
	return r.getOne(ctx, "users.get_by_email",
		`SELECT id, fullname, email, password_hash, created_at, updated_at
		FROM users
		WHERE email = $1`, email)
}

func (r *UsersRepo) GetByID(ctx context.Context, id string) (user.User, error) {
	// the column is a uuid; anything else can never match
	if _, err := uuid.Parse(id); err != nil {
		return user.User{}, user.ErrNotFound
	}

	return r.getOne(ctx, "users.get_by_id",
		`SELECT id, fullname, email, password_hash, created_at, updated_at
		FROM users
		WHERE id = $1`, id)
}

func (r *UsersRepo) getOne(ctx context.Context, op, query string, arg any) (user.User, error) {
	var u user.User

	err := r.prom.ObserveDB(ctx, op, func(ctx context.Context) error {
		return r.pool.QueryRow(ctx, query, arg).Scan(
			&u.ID,
			&u.Fullname,
			&u.Email,
			&u.PasswordHash,
			&u.CreatedAt,
			&u.UpdatedAt,
		)
	})

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.User{}, user.ErrNotFound
		}
		return user.User{}, err
	}

	return u, nil
}
