package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	httptransport "github.com/spec-kit/shop-service/internal/api/http"
	"github.com/spec-kit/shop-service/internal/api/http/handlers"
	"github.com/spec-kit/shop-service/internal/config"
	"github.com/spec-kit/shop-service/internal/domain"
	"github.com/spec-kit/shop-service/internal/observability"
	"github.com/spec-kit/shop-service/internal/service"
)

type memoryUserRepo struct {
	byEmail map[string]*domain.User
	nextID  int64
}

func newMemoryUserRepo() *memoryUserRepo {
	return &memoryUserRepo{byEmail: map[string]*domain.User{}, nextID: 1}
}

func (m *memoryUserRepo) Create(_ context.Context, user *domain.User) error {
	user.ID = m.nextID
	m.nextID++
	user.CreatedAt = time.Now()
	m.byEmail[user.Email] = user
	return nil
}

func (m *memoryUserRepo) UpdateProfile(_ context.Context, _ int64, _, _ string) error { return nil }
func (m *memoryUserRepo) UpdateRole(_ context.Context, _ int64, _ domain.UserRole) error {
	return nil
}

func (m *memoryUserRepo) GetByID(_ context.Context, id int64) (*domain.User, error) {
	for _, user := range m.byEmail {
		if user.ID == id {
			return user, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (m *memoryUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	if user, ok := m.byEmail[email]; ok {
		return user, nil
	}
	return nil, pgx.ErrNoRows
}

func (m *memoryUserRepo) List(_ context.Context) ([]domain.User, error) { return nil, nil }
func (m *memoryUserRepo) Count(_ context.Context) (int64, error)        { return 0, nil }

func newAuthApp(t *testing.T) *fiber.App {
	t.Helper()

	cfg := config.Config{}
	cfg.Auth.JWTSecret = "test-secret"
	cfg.Auth.AccessTokenTTLMinutes = 5
	cfg.Auth.BcryptCost = bcrypt.MinCost

	authService := service.NewAuthService(cfg, service.AuthDependencies{UserRepo: newMemoryUserRepo()})
	handler := handlers.NewAuthHandler(authService)

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, zap.NewNop(), observability.NewMetrics(), 0)
	app.Post("/register", handler.Register)
	app.Post("/login", handler.Login)
	return app
}

func postJSON(t *testing.T, app *fiber.App, path string, body any) *http.Response {
	t.Helper()

	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))
	return decoded
}

// deadlineUserRepo records whether the context it receives carries a deadline.
type deadlineUserRepo struct {
	*memoryUserRepo
	sawDeadline bool
}

func (d *deadlineUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	_, d.sawDeadline = ctx.Deadline()
	return d.memoryUserRepo.GetByEmail(ctx, email)
}

func TestRequestDeadlineReachesStore(t *testing.T) {
	cfg := config.Config{}
	cfg.Auth.JWTSecret = "test-secret"
	cfg.Auth.AccessTokenTTLMinutes = 5
	cfg.Auth.BcryptCost = bcrypt.MinCost

	repo := &deadlineUserRepo{memoryUserRepo: newMemoryUserRepo()}
	authService := service.NewAuthService(cfg, service.AuthDependencies{UserRepo: repo})
	handler := handlers.NewAuthHandler(authService)

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, zap.NewNop(), observability.NewMetrics(), 5*time.Second)
	app.Post("/login", handler.Login)

	resp := postJSON(t, app, "/login", map[string]any{
		"email":    "alice@example.com",
		"password": "Passw0rd!",
	})
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.True(t, repo.sawDeadline)
}

func TestRegisterRejectsWeakPassword(t *testing.T) {
	app := newAuthApp(t)

	resp := postJSON(t, app, "/register", map[string]any{
		"name":     "Alice",
		"email":    "alice@example.com",
		"password": "password",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	body := decodeBody(t, resp)
	errObj, ok := body["error"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "VALIDATION_FAILED", errObj["code"])
}

func TestRegisterRejectsMissingFields(t *testing.T) {
	app := newAuthApp(t)

	resp := postJSON(t, app, "/register", map[string]any{"email": "alice@example.com"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	body := decodeBody(t, resp)
	require.Contains(t, body, "error")
	assert.NotContains(t, body, "data")
}

func TestRegisterThenDuplicateConflicts(t *testing.T) {
	app := newAuthApp(t)
	payload := map[string]any{
		"name":     "Alice",
		"email":    "Alice@Example.com",
		"password": "Passw0rd!",
	}

	resp := postJSON(t, app, "/register", payload)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	body := decodeBody(t, resp)
	data, ok := body["data"].(map[string]any)
	require.True(t, ok)
	assert.NotZero(t, data["user_id"])

	// normalized email collides regardless of case
	payload["email"] = "alice@example.com"
	resp = postJSON(t, app, "/register", payload)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestLoginResponseOmitsPasswordHash(t *testing.T) {
	app := newAuthApp(t)

	resp := postJSON(t, app, "/register", map[string]any{
		"name":     "Alice",
		"email":    "alice@example.com",
		"password": "Passw0rd!",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = postJSON(t, app, "/login", map[string]any{
		"email":    "alice@example.com",
		"password": "Passw0rd!",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	data := body["data"].(map[string]any)
	user := data["user"].(map[string]any)

	assert.NotContains(t, user, "password")
	assert.NotContains(t, user, "password_hash")
	assert.Equal(t, "alice@example.com", user["email"])

	auth := data["auth"].(map[string]any)
	assert.NotEmpty(t, auth["token"])
}

func TestLoginFailureResponsesMatch(t *testing.T) {
	app := newAuthApp(t)

	resp := postJSON(t, app, "/register", map[string]any{
		"name":     "Alice",
		"email":    "alice@example.com",
		"password": "Passw0rd!",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	wrongPassword := postJSON(t, app, "/login", map[string]any{
		"email":    "alice@example.com",
		"password": "Wr0ngPass!",
	})
	unknownEmail := postJSON(t, app, "/login", map[string]any{
		"email":    "nobody@example.com",
		"password": "Passw0rd!",
	})

	assert.Equal(t, http.StatusUnauthorized, wrongPassword.StatusCode)
	assert.Equal(t, wrongPassword.StatusCode, unknownEmail.StatusCode)

	wrongBody := decodeBody(t, wrongPassword)
	unknownBody := decodeBody(t, unknownEmail)
	assert.Equal(t, wrongBody, unknownBody)
}
