package cache

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

type cachedPage struct {
	ContentType string `json:"contentType"`
	Body        []byte `json:"body"`
}

type recordingWriter struct {
	gin.ResponseWriter
	body bytes.Buffer
}

func (rw *recordingWriter) Write(b []byte) (int, error) {
	rw.body.Write(b)
	return rw.ResponseWriter.Write(b)
}

func (rw *recordingWriter) WriteString(s string) (int, error) {
	rw.body.WriteString(s)
	return rw.ResponseWriter.WriteString(s)
}

const servedPageKey = "cache.servedPage"

// ServedPage records the page number the handler rendered. Responses for a
// clamped page number are not stored
func ServedPage(c *gin.Context, number int) {
	c.Set(servedPageKey, number)
}

// pageKey keeps only the path and the page number, read the way the paginator reads it
func pageKey(c *gin.Context) (string, int) {
	number, err := strconv.Atoi(c.Query("page"))
	if err != nil || number < 1 {
		number = 1
	}
	return fmt.Sprintf("page:%s?page=%d", c.Request.URL.Path, number), number
}

// Page serves successful GET responses from store for ttl. Requests for which
// skip returns true (signed in users) always reach the handler
func Page(store Store, ttl time.Duration, skip func(c *gin.Context) bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		if store == nil || ttl <= 0 || c.Request.Method != http.MethodGet || (skip != nil && skip(c)) {
			c.Next()
			return
		}
		key, number := pageKey(c)

		if raw, ok, err := store.Get(c, key); err != nil {
			slog.Warn("page cache read failed", "key", key, "err", err)
		} else if ok {
			var page cachedPage
			if err := json.Unmarshal(raw, &page); err == nil {
				c.Header("X-Cache", "HIT")
				c.Data(http.StatusOK, page.ContentType, page.Body)
				c.Abort()
				return
			}
		}

		writer := &recordingWriter{ResponseWriter: c.Writer}
		c.Writer = writer
		c.Next()

		if writer.Status() != http.StatusOK || c.IsAborted() {
			return
		}
		if served, ok := c.Get(servedPageKey); ok && served != number {
			return
		}
		raw, err := json.Marshal(&cachedPage{
			ContentType: writer.Header().Get("Content-Type"),
			Body:        writer.body.Bytes(),
		})
		if err != nil {
			return
		}
		if err := store.Set(c, key, raw, ttl); err != nil {
			slog.Warn("page cache write failed", "key", key, "err", err)
		}
	}
}
