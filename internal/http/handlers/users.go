package handlers

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lukirizki/articlehub/internal/apperr"
	"github.com/lukirizki/articlehub/internal/domain/user"
	"github.com/lukirizki/articlehub/internal/security"
)

type UserReader interface {
	GetByEmail(ctx context.Context, email string) (user.User, error)
}

type UserWriter interface {
	Create(ctx context.Context, req user.RegisterRequest) (user.User, error)
}

type UserStore interface {
	UserReader
	UserWriter
}

type TokenSigner interface {
	Sign(id, email string) (string, error)
}

type UsersHandler struct {
	users UserStore
	jwt   TokenSigner
}

func NewUsersHandler(users UserStore, jwt TokenSigner) *UsersHandler {
	return &UsersHandler{
		users: users,
		jwt:   jwt,
	}
}

const storeTimeout = 3 * time.Second

func (h *UsersHandler) Register(ctx *gin.Context) {
	var req user.RegisterRequest

	if !BindBody(ctx, &req) {
		return
	}

	cctx, cancel := context.WithTimeout(ctx.Request.Context(), storeTimeout)
	defer cancel()

	u, err := h.users.Create(cctx, req)

	if err != nil {
		RespondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, u.RegisterResponse())
}

// Login answers every credential problem with the same message.
func (h *UsersHandler) Login(ctx *gin.Context) {
	var req user.LoginRequest

	if !BindBody(ctx, &req) {
		return
	}

	if req.Email == nil || req.Password == nil || *req.Email == "" || *req.Password == "" {
		RespondError(ctx, apperr.New(apperr.KindEmailOrPasswordEmpty))
		return
	}

	// short timeout for DB lookup
	cctx, cancel := context.WithTimeout(ctx.Request.Context(), storeTimeout)
	defer cancel()

	foundUser, err := h.users.GetByEmail(cctx, *req.Email)

	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			// spend the same bcrypt time as a real comparison
			security.ComparePassword(*req.Password, dummyDigest())
			RespondError(ctx, apperr.Wrap(apperr.KindEmailNotFound, err))
			return
		}

		RespondError(ctx, err)
		return
	}

	if !security.ComparePassword(*req.Password, foundUser.PasswordHash) {
		RespondError(ctx, apperr.New(apperr.KindWrongPassword))
		return
	}

	token, err := h.jwt.Sign(foundUser.ID, foundUser.Email)

	if err != nil {
		RespondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"token": token,
	})
}

var dummyDigest = sync.OnceValue(func() string {
	digest, _ := security.HashPassword("articlehub-timing-equalizer")
	return digest
})
