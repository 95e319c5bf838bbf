package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/sushihentaime/conduit/internal/articleservice"
	"github.com/sushihentaime/conduit/internal/authservice"
	"github.com/sushihentaime/conduit/internal/common"
	"github.com/sushihentaime/conduit/internal/docstore"
	"github.com/sushihentaime/conduit/internal/userservice"
)

type testServer struct {
	*httptest.Server
}

type testProducer struct{}

func (testProducer) Publish(ctx context.Context, msg []byte, key common.BindingKey, exchange common.Exchange) error {
	return nil
}

func newTestApplication(t *testing.T) *application {
	dsn := common.TestPostgres("file://../migrations", t)

	store, err := docstore.Open(dsn, 10, 5, 15*time.Minute)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	cfg := &Config{
		Port:             ":0",
		Environment:      "test",
		Version:          "test",
		JWTSecret:        "test-secret",
		JWTTTLMinutes:    30,
		RateLimitEnabled: false,
	}

	userService := userservice.NewUserService(store, testProducer{})

	return &application{
		config:         cfg,
		logger:         logger,
		store:          store,
		auth:           authservice.New(cfg.JWTSecret, time.Duration(cfg.JWTTTLMinutes)*time.Minute),
		userService:    userService,
		articleService: articleservice.NewArticleService(store, userService, common.NewCache(time.Minute, 5*time.Minute)),
	}
}

func newTestServer(t *testing.T, h http.Handler) *testServer {
	ts := httptest.NewServer(h)

	t.Cleanup(ts.Close)

	return &testServer{ts}
}

func readResponse(t *testing.T, res *http.Response) (int, http.Header, envelope) {
	defer res.Body.Close()

	responseBody, err := io.ReadAll(res.Body)
	if err != nil {
		t.Fatal(err)
	}

	var envelope envelope
	err = json.Unmarshal(responseBody, &envelope)
	if err != nil {
		t.Fatal(err)
	}

	return res.StatusCode, res.Header, envelope
}

func (ts *testServer) request(t *testing.T, method, path string, payload any, token string) (int, http.Header, envelope) {
	var body io.Reader
	if payload != nil {
		jsonPayload, err := json.Marshal(payload)
		if err != nil {
			t.Fatal(err)
		}
		body = bytes.NewReader(jsonPayload)
	}

	req, err := http.NewRequest(method, ts.URL+path, body)
	if err != nil {
		t.Fatal(err)
	}

	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", fmt.Sprintf("Token %s", token))
	}

	res, err := ts.Client().Do(req)
	if err != nil {
		t.Fatal(err)
	}

	return readResponse(t, res)
}

func (ts *testServer) post(t *testing.T, path string, payload any, token string) (int, http.Header, envelope) {
	return ts.request(t, http.MethodPost, path, payload, token)
}

func (ts *testServer) get(t *testing.T, path string, token string) (int, http.Header, envelope) {
	return ts.request(t, http.MethodGet, path, nil, token)
}

func (ts *testServer) put(t *testing.T, path string, payload any, token string) (int, http.Header, envelope) {
	return ts.request(t, http.MethodPut, path, payload, token)
}

func (ts *testServer) delete(t *testing.T, path string, token string) (int, http.Header, envelope) {
	return ts.request(t, http.MethodDelete, path, nil, token)
}

// registerAccount signs up a user through the API and returns the issued
// token.
func (ts *testServer) registerAccount(t *testing.T, username string) string {
	payload := map[string]any{
		"user": map[string]any{
			"username": username,
			"email":    username + "@example.com",
			"password": "securepassword",
		},
	}

	status, _, body := ts.post(t, "/api/users", payload, "")
	require.Equal(t, http.StatusOK, status)

	user, ok := body["user"].(map[string]any)
	require.True(t, ok)

	token, ok := user["token"].(string)
	require.True(t, ok)
	require.NotEmpty(t, token)

	return token
}

// createTestArticle creates an article through the API and returns its slug.
func (ts *testServer) createTestArticle(t *testing.T, token, title string, tags []string) string {
	payload := map[string]any{
		"article": map[string]any{
			"title":       title,
			"description": "Ever wonder how?",
			"body":        "You have to believe",
			"tagList":     tags,
		},
	}

	status, _, body := ts.post(t, "/api/articles", payload, token)
	require.Equal(t, http.StatusCreated, status)

	article, ok := body["article"].(map[string]any)
	require.True(t, ok)

	slug, ok := article["slug"].(string)
	require.True(t, ok)
	require.NotEmpty(t, slug)

	return slug
}
