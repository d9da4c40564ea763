package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/shop-service/internal/domain"
	apperrors "github.com/spec-kit/shop-service/pkg/util"
)

type stubUserRepo struct {
	users map[int64]*domain.User
}

func (s *stubUserRepo) Create(_ context.Context, _ *domain.User) error { return nil }
func (s *stubUserRepo) UpdateProfile(_ context.Context, _ int64, _, _ string) error {
	return nil
}
func (s *stubUserRepo) UpdateRole(_ context.Context, _ int64, _ domain.UserRole) error {
	return nil
}

func (s *stubUserRepo) GetByID(_ context.Context, id int64) (*domain.User, error) {
	if user, ok := s.users[id]; ok {
		return user, nil
	}
	return nil, pgx.ErrNoRows
}

func (s *stubUserRepo) GetByEmail(_ context.Context, _ string) (*domain.User, error) {
	return nil, pgx.ErrNoRows
}

func (s *stubUserRepo) List(_ context.Context) ([]domain.User, error) { return nil, nil }
func (s *stubUserRepo) Count(_ context.Context) (int64, error)        { return 0, nil }

type stubRevocationList struct {
	revoked map[string]bool
}

func (s *stubRevocationList) Revoke(_ context.Context, tokenID string, _ time.Time) error {
	if s.revoked == nil {
		s.revoked = map[string]bool{}
	}
	s.revoked[tokenID] = true
	return nil
}

func (s *stubRevocationList) IsRevoked(_ context.Context, tokenID string) (bool, error) {
	return s.revoked[tokenID], nil
}

func newGuardedApp(t *testing.T, users *stubUserRepo, revoked RevocationList, tokens *TokenManager) *fiber.App {
	t.Helper()

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			domainErr := apperrors.ToDomainError(err)
			return c.Status(domainErr.HTTPStatus).JSON(fiber.Map{
				"error": fiber.Map{"code": domainErr.Code, "message": domainErr.Message},
			})
		},
	})

	middleware := NewAuthMiddleware(tokens, users, revoked)
	app.Get("/admin/dashboard", middleware.Handle, RequireAdmin(), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"data": "ok"})
	})
	return app
}

func adminGateRequest(t *testing.T, app *fiber.App, token string) *http.Response {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, "/admin/dashboard", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func TestAdminGateAllowsAdmin(t *testing.T) {
	tokens := NewTokenManager("secret", 5)
	admin := &domain.User{ID: 1, Role: domain.RoleAdmin}
	users := &stubUserRepo{users: map[int64]*domain.User{1: admin}}

	token, _, err := tokens.GenerateToken(admin)
	require.NoError(t, err)

	resp := adminGateRequest(t, newGuardedApp(t, users, &stubRevocationList{}, tokens), token)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestAdminGateDeniesPlainUser(t *testing.T) {
	tokens := NewTokenManager("secret", 5)
	user := &domain.User{ID: 2, Role: domain.RoleUser}
	users := &stubUserRepo{users: map[int64]*domain.User{2: user}}

	token, _, err := tokens.GenerateToken(user)
	require.NoError(t, err)

	resp := adminGateRequest(t, newGuardedApp(t, users, &stubRevocationList{}, tokens), token)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestAdminGateDeniesMissingUser(t *testing.T) {
	tokens := NewTokenManager("secret", 5)
	ghost := &domain.User{ID: 99, Role: domain.RoleAdmin}
	users := &stubUserRepo{users: map[int64]*domain.User{}}

	token, _, err := tokens.GenerateToken(ghost)
	require.NoError(t, err)

	resp := adminGateRequest(t, newGuardedApp(t, users, &stubRevocationList{}, tokens), token)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAdminGateDeniesMissingOrForgedToken(t *testing.T) {
	tokens := NewTokenManager("secret", 5)
	users := &stubUserRepo{users: map[int64]*domain.User{}}
	app := newGuardedApp(t, users, &stubRevocationList{}, tokens)

	resp := adminGateRequest(t, app, "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	forged := NewTokenManager("other-secret", 5)
	token, _, err := forged.GenerateToken(&domain.User{ID: 1, Role: domain.RoleAdmin})
	require.NoError(t, err)

	resp = adminGateRequest(t, app, token)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAdminGateDeniesRevokedToken(t *testing.T) {
	tokens := NewTokenManager("secret", 5)
	admin := &domain.User{ID: 1, Role: domain.RoleAdmin}
	users := &stubUserRepo{users: map[int64]*domain.User{1: admin}}
	revoked := &stubRevocationList{}

	token, exp, err := tokens.GenerateToken(admin)
	require.NoError(t, err)

	claims, err := tokens.ParseToken(token)
	require.NoError(t, err)
	require.NoError(t, revoked.Revoke(context.Background(), claims.ID, exp))

	resp := adminGateRequest(t, newGuardedApp(t, users, revoked, tokens), token)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestTokenRoundTrip(t *testing.T) {
	tokens := NewTokenManager("secret", 5)
	user := &domain.User{ID: 7, Role: domain.RoleUser}

	token, exp, err := tokens.GenerateToken(user)
	require.NoError(t, err)
	assert.True(t, exp.After(time.Now()))

	claims, err := tokens.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, int64(7), claims.UserID)
	assert.Equal(t, domain.RoleUser, claims.Role)
	assert.NotEmpty(t, claims.ID)
}
