package handlers

import (
	"errors"
	"fmt"
	"io"

	"github.com/gin-gonic/gin"
)

var ErrMalformedBody = errors.New("malformed request body")

// BindBody decodes a JSON or form body into out. A missing body leaves out
// untouched so field rules can report the omissions. On failure the error
// response has already been written.
func BindBody(ctx *gin.Context, out interface{}) bool {
	err := ctx.ShouldBind(out)

	if err != nil && !errors.Is(err, io.EOF) {
		RespondError(ctx, fmt.Errorf("%w: %v", ErrMalformedBody, err))
		return false
	}

	return true
}
