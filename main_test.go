package main

import (
	"bytes"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"enibar/internal/config"
	"enibar/internal/database"
	"enibar/internal/models"
	"enibar/internal/services"
)

// MockEventPublisher is a mock implementation of services.EventPublisher
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) PublishCatalogEvent(event models.CatalogEvent) error {
	args := m.Called(event)
	return args.Error(0)
}

func TestMain(m *testing.M) {
	log.SetOutput(io.Discard)
	os.Exit(m.Run())
}

func testConfig(name string) *config.Config {
	return &config.Config{
		HTTP: config.HTTP{Port: ":0"},
		Database: config.Database{
			Driver:   config.DriverSQLite,
			DSN:      "file:" + name + "?mode=memory&cache=shared",
			LogLevel: "silent",
		},
		Auth:      config.Auth{JWTSecret: "test_jwt_secret", TokenTTL: time.Hour, BcryptCost: 4},
		Bootstrap: config.Bootstrap{AdminLogin: "admin", AdminPassword: "admin-password"},
	}
}

func setup(t *testing.T, events services.EventPublisher) (*config.Config, *fiber.App) {
	cfg := testConfig(t.Name())
	db, err := database.Open(cfg.Database)
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	t.Cleanup(func() { database.Close(db) })

	app, err := newApp(cfg, db, events)
	require.NoError(t, err)
	return cfg, app
}

func TestServerStartupAndHealthCheck(t *testing.T) {
	_, app := setup(t, nil)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/health", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `"status":"healthy"`)
	assert.Contains(t, string(body), `"database":"sqlite"`)
}

func TestNewAppRequiresJWTSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	cfg := config.NewConfig()
	cfg.Database = testConfig(t.Name()).Database
	db, err := database.Open(cfg.Database)
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	t.Cleanup(func() { database.Close(db) })

	app, err := newApp(cfg, db, nil)

	assert.Nil(t, app)
	assert.ErrorIs(t, err, services.ErrMissingJWTSecret)
	var admins int64
	require.NoError(t, db.Model(&models.Admin{}).Count(&admins).Error)
	assert.Zero(t, admins)
}

func TestForgedTokenIsRejected(t *testing.T) {
	cfg, app := setup(t, nil)

	forged := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"login": cfg.Bootstrap.AdminLogin,
		"exp":   time.Now().Add(time.Hour).Unix(),
	})
	token, err := forged.SignedString([]byte("change-me"))
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/admins/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestUnauthenticatedAccess(t *testing.T) {
	_, app := setup(t, nil)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/products", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestBootstrapAdminCanPublishCatalogChanges(t *testing.T) {
	events := new(MockEventPublisher)
	events.On("PublishCatalogEvent", mock.MatchedBy(func(event models.CatalogEvent) bool {
		return event.RoutingKey() == "catalog.panel.created" && event.Name == "Menu1"
	})).Return(nil).Once()
	cfg, app := setup(t, events)

	credentials, _ := json.Marshal(map[string]string{
		"login":    cfg.Bootstrap.AdminLogin,
		"password": cfg.Bootstrap.AdminPassword,
	})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", bytes.NewReader(credentials))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var loginResp map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&loginResp))
	resp.Body.Close()

	req = httptest.NewRequest(http.MethodPost, "/api/v1/panels", bytes.NewReader([]byte(`{"name":"Menu1"}`)))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+loginResp["token"])
	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	events.AssertExpectations(t)
}
