package http

import (
	"context"
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/lukirizki/articlehub/internal/cache"
	"github.com/lukirizki/articlehub/internal/config"
	"github.com/lukirizki/articlehub/internal/domain/user"
	"github.com/lukirizki/articlehub/internal/http/handlers"
	"github.com/lukirizki/articlehub/internal/http/middlewares"
	"github.com/lukirizki/articlehub/internal/observability"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

type UserStore interface {
	handlers.UserStore
	GetByID(ctx context.Context, id string) (user.User, error)
}

type TokenService interface {
	handlers.TokenSigner
	middlewares.TokenVerifier
}

// Deps are the collaborators the router wires into handlers. Cache, Prom,
// Metrics and Ping are optional.
type Deps struct {
	Users    UserStore
	Articles handlers.ArticleStore
	Tokens   TokenService
	Cache    cache.Store
	Prom     *observability.Prom
	Metrics  prometheus.Gatherer
	Ping     func(ctx context.Context) error
}

const serviceName = "articlehub"

func NewRouter(log *slog.Logger, cfg config.Config, deps Deps) *gin.Engine {
	if cfg.Env == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()

	// middleware
	r.Use(gin.Recovery())
	r.Use(otelgin.Middleware(serviceName))
	r.Use(middlewares.RequestID())
	r.Use(middlewares.RequestLogger(log))
	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddleware(cfg.CORSAllowedOrigins))
	r.Use(middlewares.MaxBodyBytes(cfg.MaxBodyBytes))

	if deps.Prom != nil {
		r.Use(deps.Prom.GinHandleMiddleware())
	}

	// health
	h := handlers.NewHealthHandler(deps.Ping)
	r.GET("/healthz", h.Healthz)
	r.GET("/readyz", h.Readyz)

	if deps.Metrics != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(deps.Metrics, promhttp.HandlerOpts{})))
	}

	// users
	usersHandler := handlers.NewUsersHandler(deps.Users, deps.Tokens)
	authLimiter := middlewares.NewRateLimiter(cfg.AuthRateLimit, cfg.AuthRateWindow)

	users := r.Group("/users")
	users.Use(authLimiter.RateLimiterMiddleware(middlewares.KeyByIP))
	users.POST("/register", usersHandler.Register)
	users.POST("/login", usersHandler.Login)

	// articles, all behind the auth gate
	var articlesHandler *handlers.ArticlesHandler
	if deps.Cache != nil {
		articlesHandler = handlers.NewArticlesHandlerWithCache(deps.Articles, deps.Cache, deps.Prom)
	} else {
		articlesHandler = handlers.NewArticlesHandler(deps.Articles)
	}

	authMW := middlewares.NewAuthMiddleware(deps.Tokens, deps.Users, deps.Prom)

	articles := r.Group("/articles")
	articles.Use(authMW.RequireAuth())
	articles.GET("", articlesHandler.ListArticles)
	articles.GET("/:id", articlesHandler.GetArticleByID)
	articles.POST("", articlesHandler.CreateArticle)
	articles.PUT("/:id", articlesHandler.UpdateArticle)
	articles.DELETE("/:id", articlesHandler.DeleteArticle)

	r.NoRoute(handlers.NoRoute)

	return r
}
