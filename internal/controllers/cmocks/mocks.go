package cmocks

import (
	"context"
	"time"

	"github.com/fsdevblog/shortlink/internal/models"
	"github.com/fsdevblog/shortlink/internal/services"
	"github.com/stretchr/testify/mock"
)

// RedirectMock мок controllers.RedirectResolver.
type RedirectMock struct {
	mock.Mock
}

func (r *RedirectMock) Resolve(ctx context.Context, shortCode string) (string, error) {
	args := r.Called(ctx, shortCode)
	return args.String(0), args.Error(1) //nolint:wrapcheck
}

// LinkServiceMock мок controllers.LinkManager.
type LinkServiceMock struct {
	mock.Mock
}

func (l *LinkServiceMock) Create(ctx context.Context, ownerID uint, params services.CreateLinkParams) (*models.Link, error) {
	args := l.Called(ctx, ownerID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1) //nolint:wrapcheck
	}
	return args.Get(0).(*models.Link), args.Error(1) //nolint:wrapcheck,errcheck
}

func (l *LinkServiceMock) GetByShortCode(ctx context.Context, shortCode string, ownerID uint) (*models.Link, error) {
	args := l.Called(ctx, shortCode, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1) //nolint:wrapcheck
	}
	return args.Get(0).(*models.Link), args.Error(1) //nolint:wrapcheck,errcheck
}

func (l *LinkServiceMock) GetAllByOwner(ctx context.Context, ownerID uint) ([]models.Link, error) {
	args := l.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1) //nolint:wrapcheck
	}
	return args.Get(0).([]models.Link), args.Error(1) //nolint:wrapcheck,errcheck
}

func (l *LinkServiceMock) Search(ctx context.Context, rawURL string) (*models.Link, error) {
	args := l.Called(ctx, rawURL)
	if args.Get(0) == nil {
		return nil, args.Error(1) //nolint:wrapcheck
	}
	return args.Get(0).(*models.Link), args.Error(1) //nolint:wrapcheck,errcheck
}

func (l *LinkServiceMock) Update(ctx context.Context, shortCode string, ownerID uint, params services.UpdateLinkParams) (*models.Link, error) {
	args := l.Called(ctx, shortCode, ownerID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1) //nolint:wrapcheck
	}
	return args.Get(0).(*models.Link), args.Error(1) //nolint:wrapcheck,errcheck
}

func (l *LinkServiceMock) Delete(ctx context.Context, shortCode string, ownerID uint) error {
	args := l.Called(ctx, shortCode, ownerID)
	return args.Error(0) //nolint:wrapcheck
}

// UserServiceMock мок controllers.UserManager.
type UserServiceMock struct {
	mock.Mock
}

func (u *UserServiceMock) Register(ctx context.Context, params services.RegisterParams) (*models.User, error) {
	args := u.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1) //nolint:wrapcheck
	}
	return args.Get(0).(*models.User), args.Error(1) //nolint:wrapcheck,errcheck
}

func (u *UserServiceMock) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	args := u.Called(ctx, username, password)
	if args.Get(0) == nil {
		return nil, args.Error(1) //nolint:wrapcheck
	}
	return args.Get(0).(*models.User), args.Error(1) //nolint:wrapcheck,errcheck
}

func (u *UserServiceMock) Delete(ctx context.Context, id uint) error {
	args := u.Called(ctx, id)
	return args.Error(0) //nolint:wrapcheck
}

func (u *UserServiceMock) GetByID(ctx context.Context, id uint) (*models.User, error) {
	args := u.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1) //nolint:wrapcheck
	}
	return args.Get(0).(*models.User), args.Error(1) //nolint:wrapcheck,errcheck
}

// SessionStoreMock мок controllers.SessionStore.
type SessionStoreMock struct {
	mock.Mock
}

func (s *SessionStoreMock) Create(ctx context.Context, userID uint) (string, error) {
	args := s.Called(ctx, userID)
	return args.String(0), args.Error(1) //nolint:wrapcheck
}

func (s *SessionStoreMock) Get(ctx context.Context, token string) (uint, error) {
	args := s.Called(ctx, token)
	return args.Get(0).(uint), args.Error(1) //nolint:wrapcheck,errcheck
}

func (s *SessionStoreMock) Destroy(ctx context.Context, token string) error {
	args := s.Called(ctx, token)
	return args.Error(0) //nolint:wrapcheck
}

func (s *SessionStoreMock) TTL() time.Duration {
	args := s.Called()
	return args.Get(0).(time.Duration) //nolint:errcheck
}
