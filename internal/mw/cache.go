package mw

import (
	"bytes"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
)

type cachedResponse struct {
	status int
	header http.Header
	body   []byte
}

// captureWriter tees the response body so a successful reply can be cached.
type captureWriter struct {
	gin.ResponseWriter
	buf *bytes.Buffer
}

func (w *captureWriter) Write(b []byte) (int, error) {
	w.buf.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w *captureWriter) WriteString(s string) (int, error) {
	w.buf.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}

// Cache is a middleware serving repeated GETs of the same URI from memory for
// the given duration. Only 200 responses are cached.
func Cache(store *cache.Cache, duration time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodGet {
			c.Next()
			return
		}

		key := c.Request.RequestURI
		if hit, found := store.Get(key); found {
			resp := hit.(cachedResponse)
			for k, v := range resp.header {
				c.Writer.Header()[k] = v
			}
			c.Writer.WriteHeader(resp.status)
			c.Writer.Write(resp.body)
			c.Abort()
			return
		}

		cw := &captureWriter{ResponseWriter: c.Writer, buf: bytes.NewBuffer(nil)}
		c.Writer = cw

		c.Next()

		if cw.Status() == http.StatusOK {
			store.Set(key, cachedResponse{
				status: cw.Status(),
				header: cw.Header().Clone(),
				body:   cw.buf.Bytes(),
			}, duration)
		}
	}
}
