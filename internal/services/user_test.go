package services

import (
	"context"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/fsdevblog/shortlink/internal/cache"
	"github.com/fsdevblog/shortlink/internal/models"
	"github.com/fsdevblog/shortlink/internal/repositories"
	"github.com/fsdevblog/shortlink/internal/services/smocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

func newUserService(t *testing.T, userRepo UserRepository, linkRepo LinkRepository) *UserService {
	t.Helper()
	memCache := cache.NewMemory()
	t.Cleanup(memCache.Close)
	return NewUserService(userRepo, linkRepo, memCache, zap.NewNop())
}

func TestUserService_Register(t *testing.T) {
	password := gofakeit.Password(true, true, true, false, false, 10)

	repoMock := new(smocks.UserRepoMock)
	repoMock.On("Create", mock.Anything, mock.MatchedBy(func(u *models.User) bool {
		// в хранилище уходит bcrypt хеш, а не пароль
		return u.Username == "alice" && u.PasswordHash != password &&
			bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
	})).Return(nil)

	service := newUserService(t, repoMock, new(smocks.LinkRepoMock))

	user, err := service.Register(context.Background(), RegisterParams{
		Username: "alice",
		Password: password,
	})
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)
}

func TestUserService_Register_DuplicateUsername(t *testing.T) {
	repoMock := new(smocks.UserRepoMock)
	repoMock.On("Create", mock.Anything, mock.Anything).
		Return(repositories.ErrDuplicateKey)

	service := newUserService(t, repoMock, new(smocks.LinkRepoMock))

	_, err := service.Register(context.Background(), RegisterParams{
		Username: "alice",
		Password: "secret123",
	})
	require.ErrorIs(t, err, ErrDuplicateKey)
}

func TestUserService_Authenticate(t *testing.T) {
	hash, hashErr := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.MinCost)
	require.NoError(t, hashErr)

	user := models.User{ID: 7, Username: "alice", PasswordHash: string(hash)}

	tests := []struct {
		name     string
		username string
		password string
		wantErr  error
	}{
		{name: "valid credentials", username: "alice", password: "secret123"},
		{name: "wrong password", username: "alice", password: "wrong", wantErr: ErrInvalidCredentials},
		{name: "unknown user", username: "bob", password: "secret123", wantErr: ErrInvalidCredentials},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repoMock := new(smocks.UserRepoMock)
			repoMock.On("GetByUsername", mock.Anything, "alice").Return(&user, nil)
			repoMock.On("GetByUsername", mock.Anything, "bob").
				Return(nil, repositories.ErrNotFound)

			service := newUserService(t, repoMock, new(smocks.LinkRepoMock))

			got, err := service.Authenticate(context.Background(), tt.username, tt.password)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, user.ID, got.ID)
		})
	}
}

func TestUserService_Delete_InvalidatesOwnedLinkCache(t *testing.T) {
	links := []models.Link{
		{ID: 1, ShortCode: "abc123", OriginalURL: "https://example.com/1", OwnerID: 7},
		{ID: 2, ShortCode: "def456", OriginalURL: "https://example.com/2", OwnerID: 7},
	}
	linkRepoMock := new(smocks.LinkRepoMock)
	linkRepoMock.On("GetAllByOwner", mock.Anything, uint(7)).Return(links, nil)

	userRepoMock := new(smocks.UserRepoMock)
	userRepoMock.On("Delete", mock.Anything, uint(7)).Return(nil)

	memCache := cache.NewMemory()
	defer memCache.Close()
	ctx := context.Background()
	for i := range links {
		require.NoError(t, memCache.Set(ctx, links[i].ShortCode, links[i].OriginalURL, time.Hour))
	}

	service := NewUserService(userRepoMock, linkRepoMock, memCache, zap.NewNop())

	require.NoError(t, service.Delete(ctx, 7))
	userRepoMock.AssertCalled(t, "Delete", mock.Anything, uint(7))

	// удаленные вместе с пользователем коды не должны резолвиться из кеша
	for i := range links {
		_, cacheErr := memCache.Get(ctx, links[i].ShortCode)
		assert.ErrorIs(t, cacheErr, cache.ErrCacheMiss)
	}
}

func TestUserService_Delete_NotFound(t *testing.T) {
	linkRepoMock := new(smocks.LinkRepoMock)
	linkRepoMock.On("GetAllByOwner", mock.Anything, uint(404)).Return([]models.Link{}, nil)

	userRepoMock := new(smocks.UserRepoMock)
	userRepoMock.On("Delete", mock.Anything, uint(404)).Return(repositories.ErrNotFound)

	service := newUserService(t, userRepoMock, linkRepoMock)

	err := service.Delete(context.Background(), 404)
	require.ErrorIs(t, err, ErrRecordNotFound)
}
