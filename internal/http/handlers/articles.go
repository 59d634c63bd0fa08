package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"sync/atomic"

	"github.com/gin-gonic/gin"
	"github.com/lukirizki/articlehub/internal/apperr"
	"github.com/lukirizki/articlehub/internal/cache"
	"github.com/lukirizki/articlehub/internal/domain/article"
	"github.com/lukirizki/articlehub/internal/observability"
)

type ArticleStore interface {
	Create(ctx context.Context, req article.WriteRequest) (article.Article, error)
	List(ctx context.Context) ([]article.Article, error)
	GetByID(ctx context.Context, id int64) (article.Article, error)
	Update(ctx context.Context, id int64, req article.WriteRequest) (article.Article, error)
	Delete(ctx context.Context, id int64) error
}

const articlesListCacheKeyPrefix = "articles:list:v1"

type ArticlesHandler struct {
	repo  ArticleStore
	cache cache.Store
	prom  *observability.Prom

	// listGen names the live listing key. A mutation bumps it, so a listing
	// read before the mutation can only be stored under a key nobody reads.
	listGen atomic.Uint64
}

func NewArticlesHandler(repo ArticleStore) *ArticlesHandler {
	return &ArticlesHandler{repo: repo}
}

// NewArticlesHandlerWithCache caches the full listing. Every successful
// mutation retires the cached copy.
func NewArticlesHandlerWithCache(repo ArticleStore, c cache.Store, prom *observability.Prom) *ArticlesHandler {
	return &ArticlesHandler{repo: repo, cache: c, prom: prom}
}

func (h *ArticlesHandler) ListArticles(ctx *gin.Context) {
	cctx, cancel := context.WithTimeout(ctx.Request.Context(), storeTimeout)
	defer cancel()

	key := h.listKey()

	if h.cache != nil {
		if body, ok := h.cache.Get(cctx, key); ok {
			h.prom.ObserveCache(true)
			RespondRawJSONWithETag(ctx, http.StatusOK, body)
			return
		}
		h.prom.ObserveCache(false)
	}

	articles, err := h.repo.List(cctx)

	if err != nil {
		RespondError(ctx, err)
		return
	}

	if articles == nil {
		articles = []article.Article{}
	}

	body, err := json.Marshal(articles)

	if err != nil {
		RespondError(ctx, err)
		return
	}

	if h.cache != nil {
		h.cache.Set(cctx, key, body)
	}

	RespondRawJSONWithETag(ctx, http.StatusOK, body)
}

func (h *ArticlesHandler) GetArticleByID(ctx *gin.Context) {
	id, ok := articleID(ctx)

	if !ok {
		RespondError(ctx, apperr.New(apperr.KindDataNotFound))
		return
	}

	cctx, cancel := context.WithTimeout(ctx.Request.Context(), storeTimeout)
	defer cancel()

	a, err := h.repo.GetByID(cctx, id)

	if err != nil {
		RespondError(ctx, notFoundAs(err, apperr.KindDataNotFound))
		return
	}

	RespondJSONWithETag(ctx, http.StatusOK, a)
}

func (h *ArticlesHandler) CreateArticle(ctx *gin.Context) {
	var req article.WriteRequest

	if !BindBody(ctx, &req) {
		return
	}

	cctx, cancel := context.WithTimeout(ctx.Request.Context(), storeTimeout)
	defer cancel()

	a, err := h.repo.Create(cctx, req)

	if err != nil {
		RespondError(ctx, err)
		return
	}

	h.invalidateList(cctx)

	ctx.JSON(http.StatusCreated, a)
}

func (h *ArticlesHandler) UpdateArticle(ctx *gin.Context) {
	var req article.WriteRequest

	if !BindBody(ctx, &req) {
		return
	}

	id, ok := articleID(ctx)

	if !ok {
		// same order as the store: field rules first
		if err := req.Validate(); err != nil {
			RespondError(ctx, err)
			return
		}
		RespondError(ctx, apperr.New(apperr.KindUpdateNotFound))
		return
	}

	cctx, cancel := context.WithTimeout(ctx.Request.Context(), storeTimeout)
	defer cancel()

	a, err := h.repo.Update(cctx, id, req)

	if err != nil {
		RespondError(ctx, notFoundAs(err, apperr.KindUpdateNotFound))
		return
	}

	h.invalidateList(cctx)

	ctx.JSON(http.StatusOK, a)
}

func (h *ArticlesHandler) DeleteArticle(ctx *gin.Context) {
	id, ok := articleID(ctx)

	if !ok {
		RespondError(ctx, apperr.New(apperr.KindDeleteNotFound))
		return
	}

	cctx, cancel := context.WithTimeout(ctx.Request.Context(), storeTimeout)
	defer cancel()

	err := h.repo.Delete(cctx, id)

	if err != nil {
		RespondError(ctx, notFoundAs(err, apperr.KindDeleteNotFound))
		return
	}

	h.invalidateList(cctx)

	ctx.JSON(http.StatusOK, gin.H{
		"message": "This articles has been successfully deleted",
	})
}

func (h *ArticlesHandler) listKey() string {
	return fmt.Sprintf("%s:%d", articlesListCacheKeyPrefix, h.listGen.Load())
}

func (h *ArticlesHandler) invalidateList(ctx context.Context) {
	if h.cache == nil {
		return
	}

	old := h.listGen.Add(1) - 1
	h.cache.Delete(ctx, fmt.Sprintf("%s:%d", articlesListCacheKeyPrefix, old))
}

// articleID parses the :id param. Ids are positive; anything else cannot
// name an existing article.
func articleID(ctx *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func notFoundAs(err error, kind apperr.Kind) error {
	if errors.Is(err, article.ErrNotFound) {
		return apperr.Wrap(kind, err)
	}
	return err
}
