package smocks

import (
	"context"

	"github.com/fsdevblog/shortlink/internal/models"
	"github.com/stretchr/testify/mock"
)

// LinkRepoMock мок services.LinkRepository.
type LinkRepoMock struct {
	mock.Mock
}

func (l *LinkRepoMock) Create(ctx context.Context, link *models.Link) error {
	args := l.Called(ctx, link)
	return args.Error(0) //nolint:wrapcheck
}

func (l *LinkRepoMock) GetByShortCode(ctx context.Context, shortCode string) (*models.Link, error) {
	args := l.Called(ctx, shortCode)
	if args.Get(0) == nil {
		return nil, args.Error(1) //nolint:wrapcheck
	}
	return args.Get(0).(*models.Link), args.Error(1) //nolint:wrapcheck,errcheck
}

func (l *LinkRepoMock) GetByShortCodeOwner(ctx context.Context, shortCode string, ownerID uint) (*models.Link, error) {
	args := l.Called(ctx, shortCode, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1) //nolint:wrapcheck
	}
	return args.Get(0).(*models.Link), args.Error(1) //nolint:wrapcheck,errcheck
}

func (l *LinkRepoMock) GetByOriginalURL(ctx context.Context, rawURL string) (*models.Link, error) {
	args := l.Called(ctx, rawURL)
	if args.Get(0) == nil {
		return nil, args.Error(1) //nolint:wrapcheck
	}
	return args.Get(0).(*models.Link), args.Error(1) //nolint:wrapcheck,errcheck
}

func (l *LinkRepoMock) GetAllByOwner(ctx context.Context, ownerID uint) ([]models.Link, error) {
	args := l.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1) //nolint:wrapcheck
	}
	return args.Get(0).([]models.Link), args.Error(1) //nolint:wrapcheck,errcheck
}

func (l *LinkRepoMock) Update(ctx context.Context, link *models.Link) error {
	args := l.Called(ctx, link)
	return args.Error(0) //nolint:wrapcheck
}

func (l *LinkRepoMock) Delete(ctx context.Context, shortCode string, ownerID uint) error {
	args := l.Called(ctx, shortCode, ownerID)
	return args.Error(0) //nolint:wrapcheck
}

func (l *LinkRepoMock) IncrementAccessCount(ctx context.Context, shortCode string, delta uint64) error {
	args := l.Called(ctx, shortCode, delta)
	return args.Error(0) //nolint:wrapcheck
}
