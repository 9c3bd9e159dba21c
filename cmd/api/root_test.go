package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"credit-app/config"
)

func testConfig() *config.Config {
	return &config.Config{
		Server:    config.ServerConfig{Host: "127.0.0.1", Port: 8080, Mode: gin.TestMode},
		JWT:       config.JWTConfig{Secret: "test-jwt-secret-key-32bytes!!", Expiry: time.Hour, Issuer: "credit-app"},
		Log:       config.LogConfig{Level: "error"},
		RateLimit: config.RateLimitConfig{Enabled: true},
		Export:    config.ExportConfig{DefaultFormat: "csv", SheetName: "Credit Requests"},
	}
}

func TestRootCmd_Subcommands(t *testing.T) {
	root := newRootCmd()

	names := map[string]bool{}
	for _, c := range root.Commands() {
		names[c.Name()] = true
	}
	assert.True(t, names["serve"])
	assert.True(t, names["migrate"])
	assert.True(t, names["seed"])

	assert.NotNil(t, root.PersistentFlags().Lookup("config"))
	assert.NotNil(t, root.PersistentFlags().Lookup("in-memory"))
}

func TestRootCmd_RejectsArgs(t *testing.T) {
	root := newRootCmd()
	root.SetArgs([]string{"seed", "extra"})
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})

	assert.Error(t, root.Execute())
}

func TestSeedCmd_InMemory(t *testing.T) {
	t.Setenv("CRA_LOG_LEVEL", "error")
	t.Setenv("CRA_RATELIMIT_ENABLED", "false")

	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"seed", "--in-memory"})

	require.NoError(t, root.Execute())
	assert.Equal(t, "seeded: true\n", out.String())
}

func TestOpenStorage_InMemoryWithEmbeddedRedis(t *testing.T) {
	st, err := openStorage(t.Context(), testConfig(), true, zerolog.Nop())
	require.NoError(t, err)
	defer st.Close()

	require.NotNil(t, st.redis)
	require.Len(t, st.checkers, 2)
	for _, c := range st.checkers {
		assert.NoError(t, c.Ping(t.Context()), c.Name())
	}
}

func TestNewRouter_RequiresJWTSecret(t *testing.T) {
	cfg := testConfig()
	cfg.JWT.Secret = ""
	cfg.RateLimit.Enabled = false

	st, err := openStorage(t.Context(), cfg, true, zerolog.Nop())
	require.NoError(t, err)
	defer st.Close()

	_, err = newRouter(cfg, st, zerolog.Nop())
	assert.Error(t, err)
}

func TestNewRouter_ServesSeededStore(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cfg := testConfig()
	log := zerolog.Nop()

	st, err := openStorage(t.Context(), cfg, true, log)
	require.NoError(t, err)
	defer st.Close()

	seeded, err := newSeeder(st, log).Seed(t.Context())
	require.NoError(t, err)
	require.True(t, seeded)

	router, err := newRouter(cfg, st, log)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	body, _ := json.Marshal(map[string]string{"email": "analyst1@example.com", "password": "Password123!"})
	w = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-RateLimit-Limit"))
}
