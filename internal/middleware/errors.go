package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/marginlab/ccpmargin/internal/domain/dto"
	"github.com/marginlab/ccpmargin/internal/logger"
)

// ErrorHandler turns errors attached via c.Error() into a 500 with the
// standard error envelope, unless a handler already wrote a response.
func ErrorHandler(c *gin.Context) {
	c.Next()

	if len(c.Errors) == 0 || c.Writer.Written() {
		return
	}

	err := c.Errors.Last().Err
	logger.L().Error().Err(err).Str("path", c.Request.URL.Path).Msg("unhandled request error")
	c.JSON(http.StatusInternalServerError, dto.NewErrorResponse("Internal server error", err))
}

// AbortWithError logs err and aborts the request with the given status and
// a dto.ErrorResponse body. Handlers use it for every non-200 exit.
func AbortWithError(c *gin.Context, status int, message string, err error) {
	logger.L().Warn().Err(err).Int("status", status).Str("path", c.Request.URL.Path).Msg(message)
	c.AbortWithStatusJSON(status, dto.NewErrorResponse(message, err))
}
