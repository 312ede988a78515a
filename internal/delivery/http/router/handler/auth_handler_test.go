package handler

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"survey/internal/delivery/http/middleware"
	domainerrors "survey/internal/domain/errors"
	"survey/internal/usecase"
)

// stubAccounts drives the handlers with canned outcomes.
type stubAccounts struct {
	register func(*usecase.RegisterInput) (*usecase.TokenOutput, error)
	login    func(*usecase.LoginInput) (*usecase.TokenOutput, error)
	me       func(authorization string) (*usecase.UserOutput, error)
}

func (s *stubAccounts) Register(_ context.Context, in *usecase.RegisterInput) (*usecase.TokenOutput, error) {
	return s.register(in)
}

func (s *stubAccounts) Login(_ context.Context, in *usecase.LoginInput) (*usecase.TokenOutput, error) {
	return s.login(in)
}

func (s *stubAccounts) Me(_ context.Context, authorization string) (*usecase.UserOutput, error) {
	return s.me(authorization)
}

func newTestServer(uc usecase.AccountUsecase) *echo.Echo {
	e := echo.New()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	e.HTTPErrorHandler = middleware.NewErrorMiddleware(logger).HandleHTTPError

	h := NewAuthHandler(uc)
	e.POST("/auth/register", h.Register)
	e.POST("/auth/login", h.Login)
	e.GET("/auth/me", h.Me)

	return e
}

func TestAuthHandler_Register_ResponseShape(t *testing.T) {
	uc := &stubAccounts{
		register: func(in *usecase.RegisterInput) (*usecase.TokenOutput, error) {
			assert.Equal(t, "ab", in.Nickname)

			return &usecase.TokenOutput{
				AccessToken: "tok",
				TokenType:   "bearer",
				User:        usecase.UserOutput{ID: 1, Nickname: "ab"},
			}, nil
		},
	}
	e := newTestServer(uc)

	req := httptest.NewRequest(http.MethodPost, "/auth/register",
		strings.NewReader(`{"nickname": "ab", "password": "secret1"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.JSONEq(t, `"tok"`, string(body["access_token"]))
	assert.JSONEq(t, `"bearer"`, string(body["token_type"]))
	assert.JSONEq(t, `{"id": 1, "nickname": "ab"}`, string(body["user"]))
	// The password hash has no representation in the response at all.
	assert.NotContains(t, rec.Body.String(), "password")
}

func TestAuthHandler_Register_Conflict(t *testing.T) {
	uc := &stubAccounts{
		register: func(*usecase.RegisterInput) (*usecase.TokenOutput, error) {
			return nil, domainerrors.ErrNicknameTaken
		},
	}
	e := newTestServer(uc)

	req := httptest.NewRequest(http.MethodPost, "/auth/register",
		strings.NewReader(`{"nickname": "ab", "password": "secret1"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "Nickname already registered")
}

func TestAuthHandler_Login_Unauthorized(t *testing.T) {
	uc := &stubAccounts{
		login: func(*usecase.LoginInput) (*usecase.TokenOutput, error) {
			return nil, domainerrors.ErrInvalidCredentials
		},
	}
	e := newTestServer(uc)

	req := httptest.NewRequest(http.MethodPost, "/auth/login",
		strings.NewReader(`{"nickname": "ab", "password": "wrong-1"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid credentials")
}

func TestAuthHandler_Me_PassesRawHeader(t *testing.T) {
	var seen string
	uc := &stubAccounts{
		me: func(authorization string) (*usecase.UserOutput, error) {
			seen = authorization

			return &usecase.UserOutput{ID: 7, Nickname: "ab"}, nil
		},
	}
	e := newTestServer(uc)

	req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer some-token")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Bearer some-token", seen)
	assert.JSONEq(t, `{"id": 7, "nickname": "ab"}`, rec.Body.String())
}

func TestAuthHandler_Me_Unauthenticated(t *testing.T) {
	uc := &stubAccounts{
		me: func(string) (*usecase.UserOutput, error) {
			return nil, domainerrors.ErrNotAuthenticated
		},
	}
	e := newTestServer(uc)

	req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "Not authenticated")
}
