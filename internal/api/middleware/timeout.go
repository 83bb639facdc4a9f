package middleware

import (
	"bytes"
	"context"
	"errors"
	"maps"
	"net/http"
	"time"

	"token-pulse-go/internal/api/dto"

	"github.com/gin-gonic/gin"
)

// Timeout bounds request handling. The handler runs on the request goroutine
// with a deadline context and writes into a buffer; whatever it produced after
// the deadline is dropped for a 504. Long-lived routes such as the snapshot
// stream must not be registered behind it.
func Timeout(duration time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), duration)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)

		original := c.Writer
		header := original.Header().Clone()
		buffered := &bufferedWriter{ResponseWriter: original, status: http.StatusOK}
		c.Writer = buffered

		c.Next()

		c.Writer = original
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			clear(original.Header())
			maps.Copy(original.Header(), header)
			c.AbortWithStatusJSON(http.StatusGatewayTimeout, dto.Res{
				Success: false,
				Error:   "request timed out",
			})
			return
		}
		buffered.flush()
	}
}

// bufferedWriter holds the response until the handler chain returns.
type bufferedWriter struct {
	gin.ResponseWriter
	body   bytes.Buffer
	status int
	wrote  bool
}

func (w *bufferedWriter) WriteHeader(code int) {
	if code > 0 && !w.wrote {
		w.status = code
	}
}

func (w *bufferedWriter) WriteHeaderNow() { w.wrote = true }

func (w *bufferedWriter) Write(data []byte) (int, error) {
	w.wrote = true
	return w.body.Write(data)
}

func (w *bufferedWriter) WriteString(s string) (int, error) {
	w.wrote = true
	return w.body.WriteString(s)
}

func (w *bufferedWriter) Status() int { return w.status }

func (w *bufferedWriter) Written() bool { return w.wrote }

func (w *bufferedWriter) Size() int {
	if !w.wrote {
		return -1
	}
	return w.body.Len()
}

func (w *bufferedWriter) Flush() {}

func (w *bufferedWriter) flush() {
	if !w.wrote {
		return
	}
	w.ResponseWriter.WriteHeader(w.status)
	w.ResponseWriter.WriteHeaderNow()
	_, _ = w.ResponseWriter.Write(w.body.Bytes())
}
