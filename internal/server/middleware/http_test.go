package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/skillsenselab/localstt/internal/logger"
)

func newRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

func TestRecovery_NoPanic(t *testing.T) {
	router := newRouter()
	router.Use(Recovery(logger.NewDefault("test")))
	router.GET("/ok", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ok", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
}

func TestRecovery_Panic(t *testing.T) {
	router := newRouter()
	router.Use(Recovery(logger.NewDefault("test")))
	router.GET("/boom", func(c *gin.Context) {
		panic("unexpected fault")
	})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/boom", nil))
	if rec.Code != http.StatusInternalServerError {
		t.Errorf("expected 500, got %d", rec.Code)
	}
	if !bytes.Contains(rec.Body.Bytes(), []byte("detail")) {
		t.Errorf("expected detail body, got %s", rec.Body.String())
	}
}

func TestRequestID_GeneratesID(t *testing.T) {
	router := newRouter()
	router.Use(RequestID())
	router.GET("/", func(c *gin.Context) {
		if c.GetString(ContextKeyRequestID) == "" {
			t.Error("expected request id in context")
		}
		c.Status(http.StatusOK)
	})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Header().Get("X-Request-Id") == "" {
		t.Error("expected X-Request-Id response header")
	}
}

func TestRequestID_PreservesExisting(t *testing.T) {
	router := newRouter()
	router.Use(RequestID())
	router.GET("/", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-Id", "client-id-123")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if got := rec.Header().Get("X-Request-Id"); got != "client-id-123" {
		t.Errorf("expected client-id-123, got %q", got)
	}
}

func TestCORS_SetHeaders(t *testing.T) {
	router := newRouter()
	router.Use(CORS(CORSConfig{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
	}))
	router.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "https://example.com")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "https://example.com" {
		t.Errorf("expected origin echoed, got %q", got)
	}
	if rec.Header().Get("Access-Control-Allow-Methods") == "" {
		t.Error("expected allowed methods header")
	}
}

func TestCORS_Preflight(t *testing.T) {
	router := newRouter()
	router.Use(CORS(CORSConfig{AllowedOrigins: []string{"*"}}))
	router.POST("/transcribe", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodOptions, "/transcribe", nil)
	req.Header.Set("Origin", "https://example.com")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Errorf("expected 204 for preflight, got %d", rec.Code)
	}
}

func TestCORS_DisallowedOrigin(t *testing.T) {
	router := newRouter()
	router.Use(CORS(CORSConfig{AllowedOrigins: []string{"https://allowed.example"}}))
	router.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "https://other.example")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Header().Get("Access-Control-Allow-Origin") != "" {
		t.Error("disallowed origin must not receive CORS headers")
	}
}

func TestCORS_Credentials(t *testing.T) {
	router := newRouter()
	router.Use(CORS(CORSConfig{
		AllowedOrigins:   []string{"https://allowed.example"},
		AllowCredentials: true,
	}))
	router.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "https://allowed.example")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Header().Get("Access-Control-Allow-Credentials") != "true" {
		t.Error("expected credentials header")
	}
}

func TestBodySizeLimit_RejectsOversizedBody(t *testing.T) {
	router := newRouter()
	router.Use(BodySizeLimit("1KB"))
	router.POST("/", func(c *gin.Context) {
		if _, err := c.GetRawData(); err != nil {
			c.AbortWithStatus(http.StatusRequestEntityTooLarge)
			return
		}
		c.Status(http.StatusOK)
	})

	big := bytes.Repeat([]byte("a"), 2048)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", bytes.NewReader(big)))
	if rec.Code != http.StatusRequestEntityTooLarge {
		t.Errorf("expected 413, got %d", rec.Code)
	}
}

func TestParseSize(t *testing.T) {
	cases := []struct {
		input    string
		expected int64
	}{
		{"25MB", 25 * 1024 * 1024},
		{"512KB", 512 * 1024},
		{"1GB", 1024 * 1024 * 1024},
		{"100", 100},
		{"", 42},
		{"garbage", 42},
		{"-5MB", 42},
	}
	for _, tc := range cases {
		if got := ParseSize(tc.input, 42); got != tc.expected {
			t.Errorf("ParseSize(%q): expected %d, got %d", tc.input, tc.expected, got)
		}
	}
}

func TestRequestLogger_PassesThrough(t *testing.T) {
	router := newRouter()
	router.Use(RequestID(), RequestLogger(logger.NewDefault("test")))
	router.GET("/health", func(c *gin.Context) { c.Status(http.StatusOK) })
	router.GET("/transcribe", func(c *gin.Context) { c.Status(http.StatusOK) })

	for _, path := range []string{"/health", "/transcribe"} {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		if rec.Code != http.StatusOK {
			t.Errorf("%s: expected 200, got %d", path, rec.Code)
		}
	}
}
