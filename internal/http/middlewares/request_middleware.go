package middlewares

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const requestIDHeader = "X-Request-Id"

func RequestID() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		id := ctx.GetHeader(requestIDHeader)

		if id == "" {
			id = uuid.NewString()
		}

		ctx.Writer.Header().Set(requestIDHeader, id)
		ctx.Set(CtxRequestID, id)

		ctx.Next()
	}
}

func RequestLogger(log *slog.Logger) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		start := time.Now()

		// unmatched requests have no route template
		route := ctx.FullPath()
		if route == "" {
			route = ctx.Request.URL.Path
		}

		method := ctx.Request.Method

		ctx.Next()

		lat := time.Since(start)
		status := ctx.Writer.Status()

		reqID, _ := ctx.Get(CtxRequestID)

		logAttrs := []any{
			"method", method,
			"route", route,
			"status", status,
			"latency_ms", lat.Milliseconds(),
			"request_id", reqID,
		}

		if errs := ctx.Errors.ByType(gin.ErrorTypeAny); len(errs) > 0 {
			logAttrs = append(logAttrs, "errors", errs.String())
			log.WarnContext(ctx.Request.Context(), "http_request", logAttrs...)
			return
		}

		log.InfoContext(ctx.Request.Context(), "http_request", logAttrs...)
	}
}
