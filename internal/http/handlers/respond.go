package handlers

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/lukirizki/articlehub/internal/apperr"
)

func requestIDFrom(ctx *gin.Context) string {
	v, ok := ctx.Get("request_id")

	if ok {
		s, ok := v.(string)
		if ok && s != "" {
			return s
		}
	}

	// fallback header
	return ctx.GetHeader("X-Request-Id")
}

// RespondError is the only way handlers report failures. Errors without a
// client-facing kind are logged, then answered as a generic bad request.
func RespondError(ctx *gin.Context, err error) {
	if apperr.KindOf(err) == apperr.KindUnknown {
		slog.Default().ErrorContext(ctx.Request.Context(), "unhandled request error",
			"err", err,
			"route", ctx.FullPath(),
			"request_id", requestIDFrom(ctx),
		)
	}

	_ = ctx.Error(err)

	status, body := apperr.Translate(err)
	ctx.AbortWithStatusJSON(status, body)
}

// NoRoute answers every unmatched path, whatever the method.
func NoRoute(ctx *gin.Context) {
	RespondError(ctx, apperr.New(apperr.KindPageNotFound))
}
