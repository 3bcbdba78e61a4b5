package http

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/freshfold/freshfold-server/internal/auth"
	"github.com/freshfold/freshfold-server/internal/config"
	"github.com/freshfold/freshfold-server/internal/core"
	"github.com/freshfold/freshfold-server/internal/store"
	"github.com/freshfold/freshfold-server/internal/store/sqlite"
)

// testServer bundles the pieces integration tests need.
type testServer struct {
	ts   *httptest.Server
	auth *auth.Service
	st   store.Store
}

func startTestServer(t *testing.T) *testServer {
	t.Helper()

	st, err := sqlite.New(":memory:")
	if err != nil {
		t.Fatalf("failed to create test store: %v", err)
	}
	t.Cleanup(func() { _ = st.Close() })

	jwtConfig := &auth.JWTConfig{
		Secret:   []byte("test-secret-change-me"),
		Issuer:   "test",
		Audience: "test",
		TTL:      24 * time.Hour,
	}
	authService := auth.NewService(st, jwtConfig)

	logger := zerolog.Nop()
	hub := core.NewHub(st, &logger)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go hub.Run(ctx)

	server := NewServer(hub, authService, st, config.Config{
		Addr:              ":0",
		ReadHeaderTimeout: time.Second,
		ShutdownTimeout:   time.Second,
	}, &logger)

	ts := httptest.NewServer(server.Handler)
	t.Cleanup(ts.Close)

	return &testServer{ts: ts, auth: authService, st: st}
}

// newToken registers a fresh user of the given kind and returns its token.
func (s *testServer) newToken(t *testing.T, displayName, kind string) string {
	t.Helper()

	email := uuid.NewString() + "@example.com"
	token, err := s.auth.Register(context.Background(), email, displayName, "password123", kind)
	if err != nil {
		t.Fatalf("register test user: %v", err)
	}
	return token
}
