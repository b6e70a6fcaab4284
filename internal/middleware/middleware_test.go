package middleware

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/andybalholm/brotli"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stemsi/elearning-backend/internal/apperror"
	"github.com/stemsi/elearning-backend/internal/response"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newEngine(handlers ...gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	r.Use(Recovery(zerolog.Nop()), response.RequestIDMiddleware(), ErrorHandler(zerolog.Nop()))
	r.Use(handlers...)
	return r
}

func serve(r http.Handler, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) response.Response {
	t.Helper()
	var body response.Response
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v; body=%s", err, w.Body.String())
	}
	if body.Error == nil {
		t.Fatalf("missing error body: %s", w.Body.String())
	}
	return body
}

func TestErrorHandlerMapsKinds(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		code   response.ErrCode
	}{
		{"not found", apperror.CourseNotFound(9), http.StatusNotFound, response.ErrNotFound},
		{"mismatch", apperror.IDMismatch(), http.StatusBadRequest, response.ErrIDMismatch},
		{"invalid id", apperror.InvalidID("x"), http.StatusBadRequest, response.ErrInvalidID},
		{"validation", apperror.Validation(map[string]string{"title": "required"}), http.StatusBadRequest, response.ErrValidation},
		{"untyped", errors.New("db exploded"), http.StatusInternalServerError, response.ErrInternal},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := newEngine()
			r.GET("/", func(c *gin.Context) { _ = c.Error(tc.err) })

			w := serve(r, httptest.NewRequest(http.MethodGet, "/", nil))
			if w.Code != tc.status {
				t.Fatalf("status = %d, want %d", w.Code, tc.status)
			}
			body := decodeError(t, w)
			if body.Error.Code != tc.code {
				t.Errorf("code = %s, want %s", body.Error.Code, tc.code)
			}
		})
	}
}

func TestErrorHandlerHidesInternalCause(t *testing.T) {
	r := newEngine()
	r.GET("/", func(c *gin.Context) {
		_ = c.Error(apperror.Internal(errors.New("pq: password authentication failed"), "An error occurred while retrieving courses"))
	})

	w := serve(r, httptest.NewRequest(http.MethodGet, "/", nil))
	if strings.Contains(w.Body.String(), "password") {
		t.Errorf("internal cause leaked: %s", w.Body.String())
	}
	if body := decodeError(t, w); body.Error.Message != "An error occurred while retrieving courses" {
		t.Errorf("message = %q", body.Error.Message)
	}
}

func TestErrorHandlerLeavesWrittenResponses(t *testing.T) {
	r := newEngine()
	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusTeapot, "short and stout")
		_ = c.Error(errors.New("late"))
	})

	w := serve(r, httptest.NewRequest(http.MethodGet, "/", nil))
	if w.Code != http.StatusTeapot || w.Body.String() != "short and stout" {
		t.Errorf("response rewritten: %d %s", w.Code, w.Body.String())
	}
}

func TestRecovery(t *testing.T) {
	r := newEngine()
	r.GET("/", func(c *gin.Context) { panic("boom") })

	w := serve(r, httptest.NewRequest(http.MethodGet, "/", nil))
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d", w.Code)
	}
	if body := decodeError(t, w); body.Error.Code != response.ErrInternal {
		t.Errorf("code = %s", body.Error.Code)
	}
}

func TestRequestIDEchoedOrGenerated(t *testing.T) {
	r := newEngine()
	r.GET("/", func(c *gin.Context) { response.Success(c, http.StatusOK, nil) })

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(response.HeaderRequestID, "abc-123")
	w := serve(r, req)
	if got := w.Header().Get(response.HeaderRequestID); got != "abc-123" {
		t.Errorf("echoed id = %q", got)
	}
	if !strings.Contains(w.Body.String(), `"request_id":"abc-123"`) {
		t.Errorf("body = %s", w.Body.String())
	}

	w = serve(r, httptest.NewRequest(http.MethodGet, "/", nil))
	if got := w.Header().Get(response.HeaderRequestID); len(got) != 36 {
		t.Errorf("generated id = %q, want uuid", got)
	}
}

func TestBrotliCompressesLargeBodies(t *testing.T) {
	payload := strings.Repeat("course catalog ", 200)
	r := newEngine(Brotli(DefaultBrotliMinLength))
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, payload) })

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Accept-Encoding", "gzip, br;q=0.9")
	w := serve(r, req)

	if w.Header().Get("Content-Encoding") != "br" {
		t.Fatalf("Content-Encoding = %q", w.Header().Get("Content-Encoding"))
	}
	if w.Header().Get("Vary") != "Accept-Encoding" {
		t.Errorf("Vary = %q", w.Header().Get("Vary"))
	}

	decoded, err := io.ReadAll(brotli.NewReader(bytes.NewReader(w.Body.Bytes())))
	if err != nil {
		t.Fatalf("decode brotli: %v", err)
	}
	if string(decoded) != payload {
		t.Error("decompressed body does not match")
	}
}

func TestBrotliSkipsSmallBodiesAndOtherClients(t *testing.T) {
	r := newEngine(Brotli(DefaultBrotliMinLength))
	r.GET("/small", func(c *gin.Context) { c.String(http.StatusOK, "tiny") })
	r.GET("/large", func(c *gin.Context) { c.String(http.StatusOK, strings.Repeat("x", 4096)) })

	req := httptest.NewRequest(http.MethodGet, "/small", nil)
	req.Header.Set("Accept-Encoding", "br")
	w := serve(r, req)
	if w.Header().Get("Content-Encoding") != "" || w.Body.String() != "tiny" {
		t.Errorf("small body altered: %q %q", w.Header().Get("Content-Encoding"), w.Body.String())
	}

	req = httptest.NewRequest(http.MethodGet, "/large", nil)
	req.Header.Set("Accept-Encoding", "gzip")
	w = serve(r, req)
	if w.Header().Get("Content-Encoding") != "" || w.Body.Len() != 4096 {
		t.Errorf("non-br client got encoding %q", w.Header().Get("Content-Encoding"))
	}
}

func TestRateLimiterRefills(t *testing.T) {
	rl := NewRateLimiter(2, time.Minute)
	now := time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return now }

	if !rl.Allow("a") || !rl.Allow("a") {
		t.Fatal("expected first two requests to pass")
	}
	if rl.Allow("a") {
		t.Fatal("expected third request to be limited")
	}
	if !rl.Allow("b") {
		t.Error("limit leaked across clients")
	}

	now = now.Add(time.Minute)
	if !rl.Allow("a") {
		t.Error("expected tokens to refill after an interval")
	}

	now = now.Add(visitorTTL + time.Second)
	rl.cleanup()
	if len(rl.visitors) != 0 {
		t.Errorf("visitors = %d after cleanup, want 0", len(rl.visitors))
	}
}

func TestRateLimiterMiddleware(t *testing.T) {
	rl := NewRateLimiter(1, time.Hour)
	r := newEngine(rl.Middleware())
	r.POST("/", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	if w := serve(r, httptest.NewRequest(http.MethodPost, "/", nil)); w.Code != http.StatusNoContent {
		t.Fatalf("first status = %d", w.Code)
	}
	w := serve(r, httptest.NewRequest(http.MethodPost, "/", nil))
	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("second status = %d", w.Code)
	}
	if body := decodeError(t, w); body.Error.Code != response.ErrRateLimitExceeded {
		t.Errorf("code = %s", body.Error.Code)
	}
}

func TestCacheHeaders(t *testing.T) {
	r := newEngine()
	r.GET("/docs", CacheControl(60), func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/data", NoStore(), func(c *gin.Context) { c.Status(http.StatusOK) })

	if got := serve(r, httptest.NewRequest(http.MethodGet, "/docs", nil)).Header().Get("Cache-Control"); got != "public, max-age=60" {
		t.Errorf("docs Cache-Control = %q", got)
	}
	if got := serve(r, httptest.NewRequest(http.MethodGet, "/data", nil)).Header().Get("Cache-Control"); got != "no-store" {
		t.Errorf("data Cache-Control = %q", got)
	}
}
