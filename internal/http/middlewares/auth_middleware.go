package middlewares

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lukirizki/articlehub/internal/actorctx"
	"github.com/lukirizki/articlehub/internal/apperr"
	"github.com/lukirizki/articlehub/internal/auth"
	"github.com/lukirizki/articlehub/internal/domain/user"
	"github.com/lukirizki/articlehub/internal/observability"
)

// Keep these interfaces small so tests can fake them easily.
type TokenVerifier interface {
	Verify(token string) (*auth.Claims, error)
}

type UserResolver interface {
	GetByID(ctx context.Context, id string) (user.User, error)
}

type AuthMiddleware struct {
	jwt   TokenVerifier
	users UserResolver
	prom  *observability.Prom
}

func NewAuthMiddleware(jwt TokenVerifier, users UserResolver, prom *observability.Prom) *AuthMiddleware {
	return &AuthMiddleware{jwt: jwt, users: users, prom: prom}
}

const userLookupTimeout = 2 * time.Second

// RequireAuth stops at the first failing step: missing header, malformed
// header, bad token, token for a user that no longer matches.
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			m.reject(c, "no_authorization", apperr.New(apperr.KindNoAuthorization))
			return
		}

		// exactly "Bearer <token>", one separating space
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" || strings.ContainsAny(parts[1], " \t") {
			m.reject(c, "invalid_header", apperr.New(apperr.KindInvalidToken))
			return
		}

		claims, err := m.jwt.Verify(parts[1])
		if err != nil {
			m.reject(c, "invalid_token", apperr.Wrap(apperr.KindInvalidToken, err))
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), userLookupTimeout)
		defer cancel()

		u, err := m.users.GetByID(ctx, claims.ID)
		if err != nil {
			if errors.Is(err, user.ErrNotFound) {
				m.reject(c, "unknown_user", apperr.Wrap(apperr.KindUnauthorized, err))
				return
			}
			_ = c.Error(err)
			m.reject(c, "lookup_failed", err)
			return
		}

		if u.Email != claims.Email {
			m.reject(c, "email_mismatch", apperr.New(apperr.KindUnauthorized))
			return
		}

		// Stash the identity for handlers and for code further down
		c.Set(ctxUserIDKey, u.ID)
		c.Set(ctxEmailKey, u.Email)
		c.Request = c.Request.WithContext(actorctx.WithIdentity(c.Request.Context(), actorctx.Identity{
			UserID: u.ID,
			Email:  u.Email,
		}))

		c.Next()
	}
}

func (m *AuthMiddleware) reject(c *gin.Context, reason string, err error) {
	m.prom.ObserveAuthFailure(reason)
	Abort(c, err)
}

// Abort translates err and stops the handler chain.
func Abort(c *gin.Context, err error) {
	status, body := apperr.Translate(err)
	c.AbortWithStatusJSON(status, body)
}

// Helpers so handlers don't need to know the magic keys.

func UserIDFromContext(c *gin.Context) (string, bool) {
	v, ok := c.Get(ctxUserIDKey)
	if !ok {
		return "", false
	}
	id, ok := v.(string)
	return id, ok
}

func EmailFromContext(c *gin.Context) (string, bool) {
	v, ok := c.Get(ctxEmailKey)
	if !ok {
		return "", false
	}
	email, ok := v.(string)
	return email, ok
}
