package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/recipebook/backend/config"
	"github.com/pageza/recipebook/backend/internal/testhelpers"
)

func TestNew(t *testing.T) {
	st := testhelpers.NewSQLiteStore(t)

	cfg := &config.Config{
		ServerHost: "localhost",
		ServerPort: "8080",
	}

	server := New(cfg, st)
	require.NotNil(t, server)
	assert.Equal(t, "localhost:8080", server.http.Addr)

	tests := []struct {
		path string
		code int
	}{
		{"/health", http.StatusOK},
		{"/recipes", http.StatusOK},
		{"/cuisines", http.StatusOK},
		{"/metrics", http.StatusOK},
		{"/nowhere", http.StatusNotFound},
	}
	for _, tt := range tests {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, tt.path, nil)
		server.Handler().ServeHTTP(w, req)
		assert.Equal(t, tt.code, w.Code, tt.path)
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/recipes", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	server.Handler().ServeHTTP(w, req)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestShutdownClosesStore(t *testing.T) {
	st := testhelpers.NewSQLiteStore(t)
	server := New(&config.Config{ServerPort: "0"}, st)

	require.NoError(t, server.Shutdown(context.Background()))
	assert.Error(t, st.Ping(context.Background()))
}
