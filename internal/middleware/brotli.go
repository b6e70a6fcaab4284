package middleware

import (
	"bytes"
	"net/http"
	"strings"

	"github.com/andybalholm/brotli"
	"github.com/gin-gonic/gin"
)

// DefaultBrotliMinLength keeps small JSON bodies uncompressed.
const DefaultBrotliMinLength = 1024

// brotliWriter buffers the body until it reaches minLength, then switches
// to streaming through a brotli encoder.
type brotliWriter struct {
	gin.ResponseWriter
	buf       bytes.Buffer
	minLength int
	quality   int
	encoder   *brotli.Writer
}

func (w *brotliWriter) Write(data []byte) (int, error) {
	if w.encoder != nil {
		return w.encoder.Write(data)
	}

	w.buf.Write(data)
	if w.buf.Len() < w.minLength {
		return len(data), nil
	}

	h := w.ResponseWriter.Header()
	h.Set("Content-Encoding", "br")
	h.Del("Content-Length")
	w.encoder = brotli.NewWriterLevel(w.ResponseWriter, w.quality)
	if _, err := w.encoder.Write(w.buf.Bytes()); err != nil {
		return 0, err
	}
	w.buf.Reset()
	return len(data), nil
}

func (w *brotliWriter) WriteString(s string) (int, error) {
	return w.Write([]byte(s))
}

// finish closes the encoder or, for short bodies, writes them as-is.
func (w *brotliWriter) finish() error {
	if w.encoder != nil {
		return w.encoder.Close()
	}
	if w.buf.Len() == 0 {
		return nil
	}
	_, err := w.ResponseWriter.Write(w.buf.Bytes())
	return err
}

// Brotli compresses response bodies of at least minLength bytes for
// clients that send "Accept-Encoding: br".
func Brotli(minLength int) gin.HandlerFunc {
	if minLength <= 0 {
		minLength = DefaultBrotliMinLength
	}

	return func(c *gin.Context) {
		if c.Request.Method == http.MethodHead || !acceptsBrotli(c.Request) {
			c.Next()
			return
		}

		c.Header("Vary", "Accept-Encoding")

		original := c.Writer
		bw := &brotliWriter{
			ResponseWriter: original,
			minLength:      minLength,
			quality:        brotli.DefaultCompression,
		}
		c.Writer = bw

		defer func() {
			if err := bw.finish(); err != nil {
				_ = c.Error(err)
			}
			c.Writer = original
		}()

		c.Next()
	}
}

func acceptsBrotli(r *http.Request) bool {
	for _, enc := range strings.Split(r.Header.Get("Accept-Encoding"), ",") {
		// "br;q=0.8" still counts.
		name, _, _ := strings.Cut(strings.TrimSpace(enc), ";")
		if strings.EqualFold(name, "br") {
			return true
		}
	}
	return false
}
