package memory

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/lukirizki/articlehub/internal/domain/article"
)

// maxTitleLen matches the VARCHAR(255) title column, which counts characters.
const maxTitleLen = 255

// errTitleTooLong carries no kind, so it answers like the column overflow
// does on Postgres.
var errTitleTooLong = errors.New("article title exceeds 255 characters")

type ArticlesRepo struct {
	mu     sync.RWMutex
	nextID int64
	items  map[int64]article.Article
}

func NewArticlesRepo() *ArticlesRepo {
	return &ArticlesRepo{
		nextID: 1,
		items:  make(map[int64]article.Article),
	}
}

func (r *ArticlesRepo) Create(ctx context.Context, req article.WriteRequest) (article.Article, error) {
	if err := req.Validate(); err != nil {
		return article.Article{}, err
	}

	title, description, imageURL := req.Fields()
	if utf8.RuneCountInString(title) > maxTitleLen {
		return article.Article{}, errTitleTooLong
	}
	now := time.Now().UTC()

	r.mu.Lock()
	defer r.mu.Unlock()

	a := article.Article{
		ID:          r.nextID,
		Title:       title,
		Description: description,
		ImageURL:    imageURL,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	r.items[a.ID] = a
	r.nextID++

	return a, nil
}

func (r *ArticlesRepo) List(ctx context.Context) ([]article.Article, error) {
	r.mu.RLock()
	out := make([]article.Article, 0, len(r.items))
	for _, a := range r.items {
		out = append(out, a)
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })

	return out, nil
}

func (r *ArticlesRepo) GetByID(ctx context.Context, id int64) (article.Article, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.items[id]
	if !ok {
		return article.Article{}, article.ErrNotFound
	}

	return a, nil
}

func (r *ArticlesRepo) Update(ctx context.Context, id int64, req article.WriteRequest) (article.Article, error) {
	if err := req.Validate(); err != nil {
		return article.Article{}, err
	}

	title, description, imageURL := req.Fields()
	if utf8.RuneCountInString(title) > maxTitleLen {
		return article.Article{}, errTitleTooLong
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.items[id]
	if !ok {
		return article.Article{}, article.ErrNotFound
	}

	a.Title = title
	a.Description = description
	a.ImageURL = imageURL
	a.UpdatedAt = time.Now().UTC()
	r.items[id] = a

	return a, nil
}

func (r *ArticlesRepo) Delete(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[id]; !ok {
		return article.ErrNotFound
	}

	delete(r.items, id)

	return nil
}
