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
)

func newLinkService(repo LinkRepository, c cache.Cache) *LinkService {
	return NewLinkService(repo, c, time.Hour, zap.NewNop())
}

func strPtr(s string) *string { return &s }

func intPtr(i int) *int { return &i }

func TestLinkService_Create_WithCustomAlias(t *testing.T) {
	rawURL := gofakeit.URL()
	repoMock := new(smocks.LinkRepoMock)
	repoMock.On("Create", mock.Anything, mock.MatchedBy(func(l *models.Link) bool {
		return l.ShortCode == "my-alias" && l.OriginalURL == rawURL
	})).Return(nil)

	memCache := cache.NewMemory()
	defer memCache.Close()

	service := newLinkService(repoMock, memCache)

	link, err := service.Create(context.Background(), 1, CreateLinkParams{
		OriginalURL: rawURL,
		CustomAlias: strPtr("my-alias"),
	})
	require.NoError(t, err)
	assert.Equal(t, "my-alias", link.ShortCode)

	// мутация наполняет кеш сразу, без ожидания первого редиректа
	cachedURL, cacheErr := memCache.Get(context.Background(), "my-alias")
	require.NoError(t, cacheErr)
	assert.Equal(t, rawURL, cachedURL)
}

func TestLinkService_Create_AliasTaken(t *testing.T) {
	repoMock := new(smocks.LinkRepoMock)
	repoMock.On("Create", mock.Anything, mock.Anything).
		Return(repositories.ErrDuplicateKey)

	memCache := cache.NewMemory()
	defer memCache.Close()

	service := newLinkService(repoMock, memCache)

	_, err := service.Create(context.Background(), 1, CreateLinkParams{
		OriginalURL: gofakeit.URL(),
		CustomAlias: strPtr("taken"),
	})
	require.ErrorIs(t, err, ErrDuplicateKey)
}

func TestLinkService_Create_GeneratedCodeRetriesOnCollision(t *testing.T) {
	repoMock := new(smocks.LinkRepoMock)
	// первая генерация сталкивается с коллизией, вторая проходит
	repoMock.On("Create", mock.Anything, mock.Anything).
		Return(repositories.ErrDuplicateKey).Once()
	repoMock.On("Create", mock.Anything, mock.Anything).
		Return(nil).Once()

	memCache := cache.NewMemory()
	defer memCache.Close()

	service := newLinkService(repoMock, memCache)

	link, err := service.Create(context.Background(), 1, CreateLinkParams{
		OriginalURL: gofakeit.URL(),
	})
	require.NoError(t, err)
	assert.Len(t, link.ShortCode, models.GeneratedCodeLength)
	repoMock.AssertNumberOfCalls(t, "Create", 2)
}

func TestLinkService_Create_ExpiresInDays(t *testing.T) {
	repoMock := new(smocks.LinkRepoMock)
	repoMock.On("Create", mock.Anything, mock.Anything).Return(nil)

	memCache := cache.NewMemory()
	defer memCache.Close()

	service := newLinkService(repoMock, memCache)

	link, err := service.Create(context.Background(), 1, CreateLinkParams{
		OriginalURL:   gofakeit.URL(),
		ExpiresInDays: intPtr(7),
	})
	require.NoError(t, err)
	require.NotNil(t, link.ExpiresAt)
	assert.WithinDuration(t, time.Now().UTC().AddDate(0, 0, 7), *link.ExpiresAt, time.Minute)
}

func TestLinkService_Update_RefreshesCache(t *testing.T) {
	oldURL := "https://example.com/old"
	newURL := "https://example.com/new"

	link := models.Link{ShortCode: "abc123", OriginalURL: oldURL, OwnerID: 1}
	repoMock := new(smocks.LinkRepoMock)
	repoMock.On("GetByShortCodeOwner", mock.Anything, "abc123", uint(1)).Return(&link, nil)
	repoMock.On("Update", mock.Anything, mock.Anything).Return(nil)

	memCache := cache.NewMemory()
	defer memCache.Close()
	require.NoError(t, memCache.Set(context.Background(), "abc123", oldURL, time.Hour))

	service := newLinkService(repoMock, memCache)

	updated, err := service.Update(context.Background(), "abc123", 1, UpdateLinkParams{
		OriginalURL: &newURL,
	})
	require.NoError(t, err)
	assert.Equal(t, newURL, updated.OriginalURL)

	// кеш не должен продолжать отдавать значение до обновления
	cachedURL, cacheErr := memCache.Get(context.Background(), "abc123")
	require.NoError(t, cacheErr)
	assert.Equal(t, newURL, cachedURL)
}

func TestLinkService_Update_ExpiredLinkInvalidatesCache(t *testing.T) {
	link := models.Link{ShortCode: "abc123", OriginalURL: "https://example.com", OwnerID: 1}
	repoMock := new(smocks.LinkRepoMock)
	repoMock.On("GetByShortCodeOwner", mock.Anything, "abc123", uint(1)).Return(&link, nil)
	repoMock.On("Update", mock.Anything, mock.Anything).Return(nil)

	memCache := cache.NewMemory()
	defer memCache.Close()
	require.NoError(t, memCache.Set(context.Background(), "abc123", link.OriginalURL, time.Hour))

	service := newLinkService(repoMock, memCache)

	// перенос срока действия в прошлое должен выбить запись из кеша
	_, err := service.Update(context.Background(), "abc123", 1, UpdateLinkParams{
		ExpiresInDays: intPtr(-1),
	})
	require.NoError(t, err)

	_, cacheErr := memCache.Get(context.Background(), "abc123")
	assert.ErrorIs(t, cacheErr, cache.ErrCacheMiss)
}

func TestLinkService_Delete_InvalidatesCache(t *testing.T) {
	repoMock := new(smocks.LinkRepoMock)
	repoMock.On("Delete", mock.Anything, "abc123", uint(1)).Return(nil)

	memCache := cache.NewMemory()
	defer memCache.Close()
	require.NoError(t, memCache.Set(context.Background(), "abc123", "https://example.com", time.Hour))

	service := newLinkService(repoMock, memCache)

	require.NoError(t, service.Delete(context.Background(), "abc123", 1))

	_, cacheErr := memCache.Get(context.Background(), "abc123")
	assert.ErrorIs(t, cacheErr, cache.ErrCacheMiss)
}

func TestLinkService_Delete_NotFound(t *testing.T) {
	repoMock := new(smocks.LinkRepoMock)
	repoMock.On("Delete", mock.Anything, "missing", uint(1)).
		Return(repositories.ErrNotFound)

	memCache := cache.NewMemory()
	defer memCache.Close()

	service := newLinkService(repoMock, memCache)

	err := service.Delete(context.Background(), "missing", 1)
	require.ErrorIs(t, err, ErrRecordNotFound)
}

func TestGenerateShortCode(t *testing.T) {
	seen := make(map[string]struct{})
	for range 100 {
		code, err := generateShortCode(models.GeneratedCodeLength)
		require.NoError(t, err)
		require.Len(t, code, models.GeneratedCodeLength)
		for _, r := range code {
			assert.Contains(t, codeAlphabet, string(r))
		}
		seen[code] = struct{}{}
	}
	// 100 кодов из 62^6 значений практически не могут дать столько коллизий
	assert.Greater(t, len(seen), 90)
}
