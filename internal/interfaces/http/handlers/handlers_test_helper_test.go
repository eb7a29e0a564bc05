package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"legal-city.backend/internal/domain/entities"
	"legal-city.backend/internal/infrastructure/oauth"
	"legal-city.backend/internal/infrastructure/repositories"
	"legal-city.backend/internal/interfaces/http/handlers"
	"legal-city.backend/internal/interfaces/http/middleware"
	"legal-city.backend/internal/usecases"
	"legal-city.backend/pkg/jwt"
	"legal-city.backend/pkg/logger"
)

// captureMailer records the codes and tokens that would have been mailed.
type captureMailer struct {
	codes  map[string]string
	resets map[string]string
}

func newCaptureMailer() *captureMailer {
	return &captureMailer{codes: make(map[string]string), resets: make(map[string]string)}
}

func (m *captureMailer) SendVerificationCode(_ context.Context, email, code string) error {
	m.codes[email] = code
	return nil
}

func (m *captureMailer) SendPasswordReset(_ context.Context, email, token string) error {
	m.resets[email] = token
	return nil
}

type stubOAuthClient struct {
	profile *entities.OAuthProfile
}

func (s *stubOAuthClient) ExchangeCode(context.Context, oauth.Provider, string, string) (string, error) {
	return "provider-token", nil
}

func (s *stubOAuthClient) FetchProfile(context.Context, oauth.Provider, string) (*entities.OAuthProfile, error) {
	return s.profile, nil
}

type testEnv struct {
	router *gin.Engine
	mail   *captureMailer
	oauth  *stubOAuthClient
	jwtSvc *jwt.JWTService
	db     *gorm.DB
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)
	logger.Init("test")

	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", t.Name(), time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.Exec(`CREATE TABLE accounts (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		username TEXT,
		email TEXT NOT NULL,
		password_hash TEXT NOT NULL,
		role TEXT NOT NULL DEFAULT 'user',
		is_admin BOOLEAN NOT NULL DEFAULT FALSE,
		email_verified BOOLEAN NOT NULL DEFAULT FALSE,
		email_verification_code TEXT,
		reset_token TEXT,
		reset_token_expiry DATETIME,
		address TEXT,
		zip_code TEXT,
		city TEXT,
		state TEXT,
		country TEXT,
		mobile_number TEXT,
		registration_id TEXT,
		law_firm TEXT,
		speciality TEXT,
		lawyer_verified BOOLEAN NOT NULL DEFAULT FALSE,
		created_at DATETIME,
		updated_at DATETIME,
		deleted_at DATETIME
	);`).Error)
	require.NoError(t, db.Exec(`CREATE UNIQUE INDEX idx_accounts_email ON accounts (email)
		WHERE deleted_at IS NULL;`).Error)

	repo := repositories.NewAccountRepository(db)
	uow := repositories.NewUnitOfWork(db)
	mail := newCaptureMailer()
	jwtSvc := jwt.NewJWTService("test-secret", time.Hour)

	oauthClient := &stubOAuthClient{}
	providers := []oauth.Provider{
		oauth.GoogleProvider("client-id", "client-secret"),
		oauth.FacebookProvider("fb-id", "fb-secret"),
	}

	authHandler := handlers.NewAuthHandler(usecases.NewAuthUsecase(repo, uow, mail, jwtSvc))
	profileHandler := handlers.NewProfileHandler(usecases.NewProfileUsecase(repo))
	adminHandler := handlers.NewAdminHandler(usecases.NewAdminUsecase(repo))
	oauthHandler := handlers.NewOAuthHandler(
		usecases.NewOAuthUsecase(repo, uow, providers, oauthClient, oauth.NewMemoryStateStore(), jwtSvc, "http://localhost:8080/api/auth"),
		"http://localhost:3000",
	)

	r := gin.New()
	auth := r.Group("/api/auth")
	{
		auth.POST("/register-user", authHandler.RegisterUser)
		auth.POST("/register-lawyer", authHandler.RegisterLawyer)
		auth.POST("/login", authHandler.Login)
		auth.POST("/verify-email", authHandler.VerifyEmail)
		auth.POST("/forgot-password", authHandler.ForgotPassword)
		auth.POST("/reset-password", authHandler.ResetPassword)

		me := auth.Group("/me", middleware.AuthMiddleware(jwtSvc))
		{
			me.GET("", profileHandler.GetMe)
			me.PUT("", profileHandler.UpdateMe)
			me.DELETE("", profileHandler.DeleteMe)
		}

		auth.GET("/google", oauthHandler.Start("google"))
		auth.GET("/google/callback", oauthHandler.Callback("google"))
		auth.GET("/facebook", oauthHandler.Start("facebook"))
		auth.GET("/facebook/callback", oauthHandler.Callback("facebook"))
	}

	admin := r.Group("/api/admin", middleware.AuthMiddleware(jwtSvc), middleware.RequireAdmin())
	{
		admin.GET("/lawyers/unverified", adminHandler.ListUnverifiedLawyers)
		admin.PUT("/verify-lawyer/:id", adminHandler.VerifyLawyer)
	}

	return &testEnv{router: r, mail: mail, oauth: oauthClient, jwtSvc: jwtSvc, db: db}
}

func (e *testEnv) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func registerAndVerify(t *testing.T, e *testEnv, path, email, password string, extra map[string]interface{}) {
	t.Helper()
	payload := map[string]interface{}{
		"name":     "Test Account",
		"email":    email,
		"password": password,
	}
	for k, v := range extra {
		payload[k] = v
	}

	w := e.do(t, http.MethodPost, path, "", payload)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	code, ok := e.mail.codes[email]
	require.True(t, ok, "no verification code captured for %s", email)

	w = e.do(t, http.MethodPost, "/api/auth/verify-email", "", map[string]interface{}{
		"email": email,
		"code":  code,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
}

func loginToken(t *testing.T, e *testEnv, email, password string) string {
	t.Helper()
	w := e.do(t, http.MethodPost, "/api/auth/login", "", map[string]interface{}{
		"email":    email,
		"password": password,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	body := decodeBody(t, w)
	token, _ := body["token"].(string)
	require.NotEmpty(t, token)
	return token
}
