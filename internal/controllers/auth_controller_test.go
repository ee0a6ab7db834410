package controllers

import (
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/fsdevblog/shortlink/internal/controllers/cmocks"
	"github.com/fsdevblog/shortlink/internal/controllers/middlewares"
	"github.com/fsdevblog/shortlink/internal/models"
	"github.com/fsdevblog/shortlink/internal/services"
	"github.com/fsdevblog/shortlink/internal/sessions"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"
)

type AuthControllerSuite struct {
	suite.Suite
	userServMock *cmocks.UserServiceMock
	sessionsMock *cmocks.SessionStoreMock
	router       *gin.Engine
}

func (s *AuthControllerSuite) SetupTest() {
	gin.SetMode(gin.TestMode)

	s.userServMock = new(cmocks.UserServiceMock)
	s.sessionsMock = new(cmocks.SessionStoreMock)
	s.router = SetupRouter(RouterParams{
		RedirectService: new(cmocks.RedirectMock),
		LinkService:     new(cmocks.LinkServiceMock),
		UserService:     s.userServMock,
		PingService:     connCheckerStub{},
		Sessions:        s.sessionsMock,
		BaseURL:         &url.URL{Scheme: "http", Host: "test.com:8080"},
		Logger:          zap.NewNop(),
	})

	s.sessionsMock.On("Get", mock.Anything, "valid-token").Return(uint(7), nil)
	s.sessionsMock.On("Get", mock.Anything, mock.Anything).
		Return(uint(0), sessions.ErrSessionNotFound)
}

func (s *AuthControllerSuite) postJSON(target, body string, cookies ...*http.Cookie) *http.Response {
	return s.request(http.MethodPost, target, body, cookies...)
}

func (s *AuthControllerSuite) request(method, target, body string, cookies ...*http.Cookie) *http.Response {
	var bodyReader io.Reader
	if body != "" {
		bodyReader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, bodyReader)
	req.Header.Set("Content-Type", "application/json")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec.Result()
}

func sessionCookie(value string) *http.Cookie {
	return &http.Cookie{Name: middlewares.SessionCookieName, Value: value}
}

func (s *AuthControllerSuite) TestRegister() {
	s.userServMock.On("Register", mock.Anything, services.RegisterParams{
		Username: "alice",
		Password: "secret123",
	}).Return(&models.User{ID: 1, Username: "alice"}, nil)

	res := s.postJSON("/api/auth/register", `{"username":"alice","password":"secret123"}`)
	defer res.Body.Close()

	s.Equal(http.StatusCreated, res.StatusCode)
	body, readErr := io.ReadAll(res.Body)
	s.Require().NoError(readErr)
	s.Contains(string(body), `"username":"alice"`)
}

func (s *AuthControllerSuite) TestRegister_ValidationErrors() {
	tests := []struct {
		name string
		body string
	}{
		{name: "password too short", body: `{"username":"alice","password":"123"}`},
		{name: "missing username", body: `{"password":"secret123"}`},
		{name: "invalid email", body: `{"username":"alice","password":"secret123","email":"not-an-email"}`},
	}
	for _, tt := range tests {
		s.Run(tt.name, func() {
			res := s.postJSON("/api/auth/register", tt.body)
			defer res.Body.Close()
			s.Equal(http.StatusUnprocessableEntity, res.StatusCode)
		})
	}
	s.userServMock.AssertNotCalled(s.T(), "Register", mock.Anything, mock.Anything)
}

func (s *AuthControllerSuite) TestRegister_DuplicateUsername() {
	s.userServMock.On("Register", mock.Anything, mock.Anything).
		Return(nil, services.ErrDuplicateKey)

	res := s.postJSON("/api/auth/register", `{"username":"alice","password":"secret123"}`)
	defer res.Body.Close()

	s.Equal(http.StatusBadRequest, res.StatusCode)
}

func (s *AuthControllerSuite) TestLogin_SetsSessionCookie() {
	s.userServMock.On("Authenticate", mock.Anything, "alice", "secret123").
		Return(&models.User{ID: 7, Username: "alice"}, nil)
	s.sessionsMock.On("Create", mock.Anything, uint(7)).Return("token-123", nil)
	s.sessionsMock.On("TTL").Return(24 * time.Hour)

	res := s.postJSON("/api/auth/login", `{"username":"alice","password":"secret123"}`)
	defer res.Body.Close()

	s.Equal(http.StatusOK, res.StatusCode)

	var sessionCookie *http.Cookie
	for _, c := range res.Cookies() {
		if c.Name == middlewares.SessionCookieName {
			sessionCookie = c
		}
	}
	s.Require().NotNil(sessionCookie)
	s.Equal("token-123", sessionCookie.Value)
	s.True(sessionCookie.HttpOnly)
}

func (s *AuthControllerSuite) TestLogin_InvalidCredentials() {
	s.userServMock.On("Authenticate", mock.Anything, "alice", "wrong").
		Return(nil, services.ErrInvalidCredentials)

	res := s.postJSON("/api/auth/login", `{"username":"alice","password":"wrong"}`)
	defer res.Body.Close()

	s.Equal(http.StatusUnauthorized, res.StatusCode)
	s.sessionsMock.AssertNotCalled(s.T(), "Create", mock.Anything, mock.Anything)
}

func (s *AuthControllerSuite) TestLogout() {
	s.sessionsMock.On("Destroy", mock.Anything, "token-123").Return(nil)

	res := s.postJSON("/api/auth/logout", "", &http.Cookie{
		Name:  middlewares.SessionCookieName,
		Value: "token-123",
	})
	defer res.Body.Close()

	s.Equal(http.StatusOK, res.StatusCode)
	s.sessionsMock.AssertCalled(s.T(), "Destroy", mock.Anything, "token-123")

	// кука должна быть сброшена
	var cleared bool
	for _, c := range res.Cookies() {
		if c.Name == middlewares.SessionCookieName && c.MaxAge < 0 {
			cleared = true
		}
	}
	s.True(cleared, fmt.Sprintf("expected cleared session cookie, got %v", res.Cookies()))
}

func (s *AuthControllerSuite) TestLogout_WithoutSession() {
	res := s.postJSON("/api/auth/logout", "")
	defer res.Body.Close()

	s.Equal(http.StatusUnauthorized, res.StatusCode)
}

func (s *AuthControllerSuite) TestProfile() {
	s.userServMock.On("GetByID", mock.Anything, uint(7)).
		Return(&models.User{ID: 7, Username: "alice", CreatedAt: time.Now()}, nil)

	res := s.request(http.MethodGet, "/api/auth/profile", "", sessionCookie("valid-token"))
	defer res.Body.Close()

	s.Equal(http.StatusOK, res.StatusCode)
	body, readErr := io.ReadAll(res.Body)
	s.Require().NoError(readErr)
	s.Contains(string(body), `"username":"alice"`)
}

func (s *AuthControllerSuite) TestProfile_WithoutSession() {
	res := s.request(http.MethodGet, "/api/auth/profile", "")
	defer res.Body.Close()

	s.Equal(http.StatusUnauthorized, res.StatusCode)
	s.userServMock.AssertNotCalled(s.T(), "GetByID", mock.Anything, mock.Anything)
}

func (s *AuthControllerSuite) TestProfile_DeletedUserSessionRejected() {
	// сессия еще жива, но пользователя уже нет в хранилище
	s.userServMock.On("GetByID", mock.Anything, uint(7)).
		Return(nil, services.ErrRecordNotFound)

	res := s.request(http.MethodGet, "/api/auth/profile", "", sessionCookie("valid-token"))
	defer res.Body.Close()

	s.Equal(http.StatusUnauthorized, res.StatusCode)
}

func (s *AuthControllerSuite) TestDeleteUser() {
	s.userServMock.On("GetByID", mock.Anything, uint(7)).
		Return(&models.User{ID: 7, Username: "alice"}, nil)
	s.userServMock.On("Delete", mock.Anything, uint(7)).Return(nil)
	s.sessionsMock.On("Destroy", mock.Anything, "valid-token").Return(nil)

	res := s.request(http.MethodDelete, "/api/auth/user", "", sessionCookie("valid-token"))
	defer res.Body.Close()

	s.Equal(http.StatusOK, res.StatusCode)
	s.userServMock.AssertCalled(s.T(), "Delete", mock.Anything, uint(7))
	s.sessionsMock.AssertCalled(s.T(), "Destroy", mock.Anything, "valid-token")

	// кука должна быть сброшена
	var cleared bool
	for _, c := range res.Cookies() {
		if c.Name == middlewares.SessionCookieName && c.MaxAge < 0 {
			cleared = true
		}
	}
	s.True(cleared)
}

func (s *AuthControllerSuite) TestDeleteUser_WithoutSession() {
	res := s.request(http.MethodDelete, "/api/auth/user", "")
	defer res.Body.Close()

	s.Equal(http.StatusUnauthorized, res.StatusCode)
	s.userServMock.AssertNotCalled(s.T(), "Delete", mock.Anything, mock.Anything)
}

func TestAuthControllerSuite(t *testing.T) {
	suite.Run(t, new(AuthControllerSuite))
}
