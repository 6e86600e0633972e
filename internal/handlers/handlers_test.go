package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"designmatch_backend/internal/auth"
	"designmatch_backend/internal/handlers"
	"designmatch_backend/internal/models"
	"designmatch_backend/internal/services/dto"
	"designmatch_backend/internal/validator"
	"designmatch_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestRouter() (*gin.Engine, *handlers.BaseHandler) {
	router := gin.New()
	base := handlers.NewBaseHandler(validator.New())
	return router, base
}

func doJSON(t *testing.T, router *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

// stubAuthService satisfies services.AuthService with canned behavior.
type stubAuthService struct {
	registered  []dto.RegisterRequest
	deactivated []string
	confirmed   []string
	loginErr    error
}

func (s *stubAuthService) Register(ctx context.Context, req *dto.RegisterRequest) error {
	s.registered = append(s.registered, *req)
	return nil
}

func (s *stubAuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	if s.loginErr != nil {
		return nil, s.loginErr
	}
	return &dto.AuthResponse{AccessToken: "access", RefreshToken: "refresh"}, nil
}

func (s *stubAuthService) RefreshToken(ctx context.Context, refreshToken string) (*dto.AuthResponse, error) {
	return &dto.AuthResponse{AccessToken: "access2", RefreshToken: "refresh2"}, nil
}

func (s *stubAuthService) Logout(ctx context.Context, refreshToken string) error { return nil }
func (s *stubAuthService) VerifyEmail(ctx context.Context, token string) error   { return nil }
func (s *stubAuthService) RequestPasswordReset(ctx context.Context, emailAddr string) error {
	return nil
}
func (s *stubAuthService) ResetPassword(ctx context.Context, token, newPassword string) error {
	return nil
}
func (s *stubAuthService) ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error {
	return nil
}

func (s *stubAuthService) Deactivate(ctx context.Context, userID, confirmation string) error {
	if confirmation != "DEACTIVATE" {
		return apperrors.ErrDeactivateConfirmation
	}
	s.deactivated = append(s.deactivated, userID)
	return nil
}

func (s *stubAuthService) AuthStatus(ctx context.Context, userID string) (*dto.AuthStatusResponse, error) {
	return &dto.AuthStatusResponse{Authenticated: true, UserID: userID}, nil
}

func (s *stubAuthService) CheckUserStatus(ctx context.Context, emailAddr string) (*dto.UserStatusResponse, error) {
	return &dto.UserStatusResponse{Found: true, Email: emailAddr}, nil
}

func (s *stubAuthService) ConfirmUserByEmail(ctx context.Context, emailAddr string) error {
	s.confirmed = append(s.confirmed, emailAddr)
	return nil
}

func setupAuthRoutes(t *testing.T) (*gin.Engine, *stubAuthService) {
	t.Helper()
	router, base := newTestRouter()
	svc := &stubAuthService{}
	api := router.Group("/api/v1")
	handlers.NewAuthHandler(base, svc).RegisterRoutes(api)
	return router, svc
}

func TestRegisterEndpoint(t *testing.T) {
	router, svc := setupAuthRoutes(t)

	rec := doJSON(t, router, http.MethodPost, "/api/v1/auth/register", "", map[string]interface{}{
		"email":     "sam@example.com",
		"password":  "long-enough-pass",
		"user_type": "client",
		"full_name": "Sam Example",
	})

	assert.Equal(t, http.StatusCreated, rec.Code)
	require.Len(t, svc.registered, 1)
	assert.Equal(t, "sam@example.com", svc.registered[0].Email)
}

func TestRegisterEndpoint_ValidationErrors(t *testing.T) {
	router, svc := setupAuthRoutes(t)

	rec := doJSON(t, router, http.MethodPost, "/api/v1/auth/register", "", map[string]interface{}{
		"email":     "not-an-email",
		"password":  "short",
		"user_type": "admin",
		"full_name": "",
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, svc.registered, "invalid payloads never reach the service")
	assert.Contains(t, rec.Body.String(), "error")
}

func TestLoginEndpoint_ServiceErrorMapped(t *testing.T) {
	router, svc := setupAuthRoutes(t)
	svc.loginErr = apperrors.ErrInvalidCredentials

	rec := doJSON(t, router, http.MethodPost, "/api/v1/auth/login", "", map[string]interface{}{
		"email":    "sam@example.com",
		"password": "wrong-password",
	})

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid email or password")
}

func TestDeactivateEndpoint_RequiresAuth(t *testing.T) {
	router, svc := setupAuthRoutes(t)

	// No bearer token at all.
	rec := doJSON(t, router, http.MethodPost, "/api/v1/auth/deactivate", "", map[string]interface{}{
		"confirmation": "DEACTIVATE",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Empty(t, svc.deactivated)

	token, err := auth.GenerateToken("user-1", string(models.UserTypeClient))
	require.NoError(t, err)

	// Wrong literal is a 400 from the service.
	rec = doJSON(t, router, http.MethodPost, "/api/v1/auth/deactivate", token, map[string]interface{}{
		"confirmation": "deactivate",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, svc.deactivated)

	rec = doJSON(t, router, http.MethodPost, "/api/v1/auth/deactivate", token, map[string]interface{}{
		"confirmation": "DEACTIVATE",
	})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"user-1"}, svc.deactivated)
}

func TestAuthStatusEndpoint(t *testing.T) {
	router, _ := setupAuthRoutes(t)

	token, err := auth.GenerateToken("user-7", string(models.UserTypeDesigner))
	require.NoError(t, err)

	rec := doJSON(t, router, http.MethodGet, "/api/v1/auth/status", token, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	var status dto.AuthStatusResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &status))
	assert.True(t, status.Authenticated)
	assert.Equal(t, "user-7", status.UserID)
}

func TestAdminConfirmUserEndpoint(t *testing.T) {
	router, svc := setupAuthRoutes(t)

	adminToken, err := auth.GenerateToken("admin-1", "admin")
	require.NoError(t, err)
	clientToken, err := auth.GenerateToken("user-1", "client")
	require.NoError(t, err)

	body := map[string]interface{}{"email": "lost@example.com"}

	rec := doJSON(t, router, http.MethodPost, "/api/v1/admin/users/confirm", "", body)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doJSON(t, router, http.MethodPost, "/api/v1/admin/users/confirm", clientToken, body)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Empty(t, svc.confirmed)

	rec = doJSON(t, router, http.MethodPost, "/api/v1/admin/users/confirm", adminToken, body)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"lost@example.com"}, svc.confirmed)
}

func TestAdminCheckUserStatusEndpoint(t *testing.T) {
	router, _ := setupAuthRoutes(t)

	adminToken, err := auth.GenerateToken("admin-1", "admin")
	require.NoError(t, err)

	rec := doJSON(t, router, http.MethodPost, "/api/v1/admin/users/check-status", adminToken, map[string]interface{}{
		"email": "sam@example.com",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var status dto.UserStatusResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &status))
	assert.True(t, status.Found)
	assert.Equal(t, "sam@example.com", status.Email)
}
