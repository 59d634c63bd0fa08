package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lukirizki/articlehub/internal/domain/article"
	"github.com/lukirizki/articlehub/internal/observability"
)

type ArticlesRepo struct {
	pool *pgxpool.Pool
	prom *observability.Prom
}

func NewArticlesRepo(pool *pgxpool.Pool, prom *observability.Prom) *ArticlesRepo {
	return &ArticlesRepo{
		pool: pool,
		prom: prom,
	}
}

func scanArticle(row pgx.Row, a *article.Article) error {
	return row.Scan(&a.ID, &a.Title, &a.Description, &a.ImageURL, &a.CreatedAt, &a.UpdatedAt)
}

func (r *ArticlesRepo) Create(ctx context.Context, req article.WriteRequest) (article.Article, error) {
	if err := req.Validate(); err != nil {
		return article.Article{}, err
	}

	title, description, imageURL := req.Fields()

	var a article.Article

	err := r.prom.ObserveDB(ctx, "articles.create", func(ctx context.Context) error {
		return scanArticle(r.pool.QueryRow(ctx,
			`INSERT INTO articles (title, description, image_url, created_at, updated_at)
			VALUES ($1, $2, $3, NOW(), NOW())
			RETURNING id, title, description, image_url, created_at, updated_at`,
			title, description, imageURL,
		), &a)
	})

	if err != nil {
		return article.Article{}, err
	}

	return a, nil
}

func (r *ArticlesRepo) List(ctx context.Context) ([]article.Article, error) {
	output := make([]article.Article, 0)

	err := r.prom.ObserveDB(ctx, "articles.list", func(ctx context.Context) error {
		rows, err := r.pool.Query(ctx,
			`SELECT id, title, description, image_url, created_at, updated_at
			FROM articles
			ORDER BY id ASC`)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			var a article.Article
			if err := scanArticle(rows, &a); err != nil {
				return err
			}
			output = append(output, a)
		}

		return rows.Err()
	})

	if err != nil {
		return nil, err
	}

	return output, nil
}

func (r *ArticlesRepo) GetByID(ctx context.Context, id int64) (article.Article, error) {
	var a article.Article

	err := r.prom.ObserveDB(ctx, "articles.get_by_id", func(ctx context.Context) error {
		return scanArticle(r.pool.QueryRow(ctx,
			`SELECT id, title, description, image_url, created_at, updated_at
			FROM articles
			WHERE id = $1`, id), &a)
	})

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return article.Article{}, article.ErrNotFound
		}
		return article.Article{}, err
	}

	return a, nil
}

// Update validates before touching the table, so an invalid body on a
// missing id still reports the validation failure.
func (r *ArticlesRepo) Update(ctx context.Context, id int64, req article.WriteRequest) (article.Article, error) {
	if err := req.Validate(); err != nil {
		return article.Article{}, err
	}

	title, description, imageURL := req.Fields()

	var a article.Article

	err := r.prom.ObserveDB(ctx, "articles.update", func(ctx context.Context) error {
		return scanArticle(r.pool.QueryRow(ctx,
			`UPDATE articles
			SET title = $2,
				description = $3,
				image_url = $4,
				updated_at = NOW()
			WHERE id = $1
			RETURNING id, title, description, image_url, created_at, updated_at`,
			id, title, description, imageURL,
		), &a)
	})

	if err != nil {
		// if there are no rows matching the id
		if errors.Is(err, pgx.ErrNoRows) {
			return article.Article{}, article.ErrNotFound
		}
		return article.Article{}, err
	}

	return a, nil
}

func (r *ArticlesRepo) Delete(ctx context.Context, id int64) error {
	var affected int64

	err := r.prom.ObserveDB(ctx, "articles.delete", func(ctx context.Context) error {
		tag, err := r.pool.Exec(ctx, `DELETE FROM articles WHERE id = $1`, id)
		if err != nil {
			return err
		}
		affected = tag.RowsAffected()
		return nil
	})

	if err != nil {
		return err
	}

	// if no rows were deleted as a result return a not found error
	if affected == 0 {
		return article.ErrNotFound
	}

	return nil
}
