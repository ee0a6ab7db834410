package middlewares

import (
	"compress/gzip"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// gzipWriter обертка над gin.ResponseWriter, пишет ответ через gzip.Writer.
type gzipWriter struct {
	gin.ResponseWriter
	writer *gzip.Writer
}

func (g *gzipWriter) Write(data []byte) (int, error) {
	return g.writer.Write(data) //nolint:wrapcheck
}

// GzipMiddleware распаковывает тела запросов с Content-Encoding: gzip и
// сжимает ответы, если клиент прислал Accept-Encoding: gzip.
func GzipMiddleware() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if hasGzipBody(ctx.Request) {
			gzReader, gzErr := gzip.NewReader(ctx.Request.Body)
			if gzErr != nil {
				_ = ctx.Error(fmt.Errorf("read gzip body: %w", gzErr))
				ctx.AbortWithStatus(http.StatusBadRequest)
				return
			}
			defer gzReader.Close() //nolint:errcheck
			ctx.Request.Body = io.NopCloser(gzReader)
		}

		if !strings.Contains(ctx.Request.Header.Get("Accept-Encoding"), "gzip") {
			ctx.Next()
			return
		}

		ctx.Header("Content-Encoding", "gzip")
		ctx.Header("Vary", "Accept-Encoding")

		gzw := gzip.NewWriter(ctx.Writer)
		defer func() {
			if closeErr := gzw.Close(); closeErr != nil {
				_ = ctx.Error(fmt.Errorf("close gzip writer: %w", closeErr))
			}
		}()

		ctx.Writer = &gzipWriter{ResponseWriter: ctx.Writer, writer: gzw}
		ctx.Next()
	}
}

func hasGzipBody(r *http.Request) bool {
	switch r.Method {
	case http.MethodPost, http.MethodPut, http.MethodPatch:
		return strings.Contains(r.Header.Get("Content-Encoding"), "gzip")
	default:
		return false
	}
}
