package main

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func newBareApplication(cfg *Config) *application {
	return &application{
		config: cfg,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestExtractTokenFromHeader(t *testing.T) {
	app := newBareApplication(&Config{})

	testCases := []struct {
		name   string
		header string
		want   string
	}{
		{name: "valid", header: "Token abc.def.ghi", want: "abc.def.ghi"},
		{name: "wrong scheme", header: "Bearer abc.def.ghi", want: ""},
		{name: "no scheme", header: "abc.def.ghi", want: ""},
		{name: "trailing parts", header: "Token abc def", want: ""},
		{name: "empty", header: "", want: ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, app.extractTokenFromHeader(tc.header))
		})
	}
}

func TestEnableCORS(t *testing.T) {
	app := newBareApplication(&Config{TrustedOrigins: []string{"http://localhost:3000"}})

	handler := app.enableCORS(okHandler())

	t.Run("trusted origin", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/tags", nil)
		req.Header.Set("Origin", "http://localhost:3000")

		handler.ServeHTTP(rec, req)

		assert.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("untrusted origin", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/tags", nil)
		req.Header.Set("Origin", "http://evil.example.com")

		handler.ServeHTTP(rec, req)

		assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("preflight", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodOptions, "/api/articles", nil)
		req.Header.Set("Origin", "http://localhost:3000")
		req.Header.Set("Access-Control-Request-Method", http.MethodPut)

		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.NotEmpty(t, rec.Header().Get("Access-Control-Allow-Methods"))
		assert.Contains(t, rec.Header().Get("Access-Control-Allow-Headers"), "Authorization")
	})
}

func TestRateLimit(t *testing.T) {
	app := newBareApplication(&Config{
		RateLimitEnabled: true,
		RateLimitRPS:     2,
		RateLimitBurst:   4,
	})

	handler := app.rateLimit(okHandler())

	statuses := make([]int, 0, 6)
	for i := 0; i < 6; i++ {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/tags", nil)
		req.RemoteAddr = "10.0.0.1:42000"

		handler.ServeHTTP(rec, req)
		statuses = append(statuses, rec.Code)
	}

	for i := 0; i < 4; i++ {
		assert.Equal(t, http.StatusOK, statuses[i])
	}
	assert.Equal(t, http.StatusTooManyRequests, statuses[5])

	// a different client gets its own limiter
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/tags", nil)
	req.RemoteAddr = "10.0.0.2:42000"

	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRateLimitDisabled(t *testing.T) {
	app := newBareApplication(&Config{RateLimitEnabled: false})

	handler := app.rateLimit(okHandler())

	for i := 0; i < 20; i++ {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/tags", nil)
		req.RemoteAddr = "10.0.0.1:42000"

		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
	}
}
