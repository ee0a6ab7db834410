package smocks

import (
	"context"

	"github.com/fsdevblog/shortlink/internal/models"
	"github.com/stretchr/testify/mock"
)

// UserRepoMock мок services.UserRepository.
type UserRepoMock struct {
	mock.Mock
}

func (u *UserRepoMock) Create(ctx context.Context, user *models.User) error {
	args := u.Called(ctx, user)
	return args.Error(0) //nolint:wrapcheck
}

func (u *UserRepoMock) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	args := u.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1) //nolint:wrapcheck
	}
	return args.Get(0).(*models.User), args.Error(1) //nolint:wrapcheck,errcheck
}

func (u *UserRepoMock) Delete(ctx context.Context, id uint) error {
	args := u.Called(ctx, id)
	return args.Error(0) //nolint:wrapcheck
}

func (u *UserRepoMock) GetByID(ctx context.Context, id uint) (*models.User, error) {
	args := u.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1) //nolint:wrapcheck
	}
	return args.Get(0).(*models.User), args.Error(1) //nolint:wrapcheck,errcheck
}
