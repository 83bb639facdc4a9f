package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"token-pulse-go/internal/api/constant"
	"token-pulse-go/internal/api/dto"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// Error turns the first error recorded on the context into the response
// envelope. It must be registered before Timeout.
func Error() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		// Timeout already answered, or the handler wrote its own response.
		if c.Writer.Written() {
			return
		}

		if errors.Is(c.Request.Context().Err(), context.DeadlineExceeded) {
			c.AbortWithStatusJSON(http.StatusGatewayTimeout, dto.Res{
				Success: false,
				Error:   "request timed out",
			})
			return
		}

		if len(c.Errors) == 0 {
			return
		}
		err := c.Errors[0].Err

		// binding tags
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			fields := make([]dto.ErrorType, 0, len(ve))
			for _, fe := range ve {
				fields = append(fields, dto.ErrorType{
					Field:   fe.Field(),
					Message: fe.Error(),
				})
			}
			c.AbortWithStatusJSON(http.StatusBadRequest, dto.Res{
				Success: false,
				Error:   fields,
			})
			return
		}

		// unparsable body
		var se *json.SyntaxError
		var te *json.UnmarshalTypeError
		if errors.As(err, &se) || errors.As(err, &te) || errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			c.AbortWithStatusJSON(http.StatusBadRequest, dto.Res{
				Success: false,
				Error:   "malformed request body",
			})
			return
		}

		var ce constant.CustomError
		if errors.As(err, &ce) {
			c.AbortWithStatusJSON(ce.StatusCode, dto.Res{
				Success: false,
				Error:   ce.Error(),
			})
			return
		}

		c.AbortWithStatusJSON(http.StatusInternalServerError, dto.Res{
			Success: false,
			Error:   err.Error(),
		})
	}
}
