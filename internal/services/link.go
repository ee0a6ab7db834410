package services

import (
	"context"
	"crypto/rand"
	"math/big"
	"time"

	"github.com/fsdevblog/shortlink/internal/cache"
	"github.com/fsdevblog/shortlink/internal/models"
	"github.com/fsdevblog/shortlink/internal/repositories"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// codeAlphabet алфавит генерируемых коротких кодов.
const codeAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// generateCodeMaxAttempts предел попыток сгенерировать уникальный код.
const generateCodeMaxAttempts = 10

// CreateLinkParams параметры создания ссылки.
type CreateLinkParams struct {
	OriginalURL   string
	CustomAlias   *string
	ExpiresInDays *int
}

// UpdateLinkParams параметры обновления ссылки. Нулевые указатели
// означают "не менять".
type UpdateLinkParams struct {
	OriginalURL   *string
	ExpiresInDays *int
}

// LinkService сервис работает с базой данных в контексте таблицы `links`.
// Каждая мутация синхронизирует кеш редиректов: создание и обновление
// обновляют запись, удаление и истечение срока - инвалидируют.
type LinkService struct {
	linkRepo LinkRepository
	cache    cache.Cache
	cacheTTL time.Duration
	logger   *zap.Logger
}

func NewLinkService(linkRepo LinkRepository, c cache.Cache, cacheTTL time.Duration, logger *zap.Logger) *LinkService {
	if cacheTTL <= 0 {
		cacheTTL = cache.DefaultTTL
	}
	return &LinkService{
		linkRepo: linkRepo,
		cache:    c,
		cacheTTL: cacheTTL,
		logger:   logger.With(zap.String("module", "services/link")),
	}
}

// Create создает короткую ссылку для пользователя ownerID.
//
// Если задан CustomAlias, он используется как короткий код; занятый алиас
// возвращает ErrDuplicateKey. Иначе генерируется случайный код, коллизии
// разрешаются повторной генерацией.
func (l *LinkService) Create(ctx context.Context, ownerID uint, params CreateLinkParams) (*models.Link, error) {
	var expiresAt *time.Time
	if params.ExpiresInDays != nil {
		t := time.Now().UTC().AddDate(0, 0, *params.ExpiresInDays)
		expiresAt = &t
	}

	link := models.Link{
		OriginalURL: params.OriginalURL,
		ExpiresAt:   expiresAt,
		OwnerID:     ownerID,
	}

	if params.CustomAlias != nil {
		link.ShortCode = *params.CustomAlias
		if createErr := l.linkRepo.Create(ctx, &link); createErr != nil {
			if errors.Is(createErr, repositories.ErrDuplicateKey) {
				return nil, errors.Wrapf(ErrDuplicateKey, "alias %s is already taken", link.ShortCode)
			}
			return nil, ErrUnknown
		}
	} else {
		if genErr := l.createWithGeneratedCode(ctx, &link); genErr != nil {
			return nil, genErr
		}
	}

	l.refreshCache(ctx, &link)
	return &link, nil
}

// createWithGeneratedCode создает запись со случайным кодом, повторяя
// генерацию при коллизии.
func (l *LinkService) createWithGeneratedCode(ctx context.Context, link *models.Link) error {
	for attempt := 0; attempt < generateCodeMaxAttempts; attempt++ {
		code, codeErr := generateShortCode(models.GeneratedCodeLength)
		if codeErr != nil {
			return ErrUnknown
		}
		link.ShortCode = code

		createErr := l.linkRepo.Create(ctx, link)
		if createErr == nil {
			return nil
		}
		if !errors.Is(createErr, repositories.ErrDuplicateKey) {
			return ErrUnknown
		}
	}
	return errors.Wrap(ErrUnknown, "generate short code loop limit")
}

// GetByShortCode возвращает ссылку пользователя ownerID.
func (l *LinkService) GetByShortCode(ctx context.Context, shortCode string, ownerID uint) (*models.Link, error) {
	link, err := l.linkRepo.GetByShortCodeOwner(ctx, shortCode, ownerID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, errors.Wrapf(ErrRecordNotFound, "short code %s", shortCode)
		}
		return nil, ErrUnknown
	}
	return link, nil
}

// GetAllByOwner возвращает все ссылки пользователя.
func (l *LinkService) GetAllByOwner(ctx context.Context, ownerID uint) ([]models.Link, error) {
	links, err := l.linkRepo.GetAllByOwner(ctx, ownerID)
	if err != nil {
		return nil, ErrUnknown
	}
	return links, nil
}

// Search находит ссылку по оригинальному URL.
func (l *LinkService) Search(ctx context.Context, rawURL string) (*models.Link, error) {
	link, err := l.linkRepo.GetByOriginalURL(ctx, rawURL)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, errors.Wrapf(ErrRecordNotFound, "url %s", rawURL)
		}
		return nil, ErrUnknown
	}
	return link, nil
}

// Update обновляет URL и/или срок действия ссылки пользователя ownerID.
// Кеш всегда приводится в соответствие: живая ссылка перезаписывается
// новым значением, истекшая после обновления - инвалидируется.
func (l *LinkService) Update(ctx context.Context, shortCode string, ownerID uint, params UpdateLinkParams) (*models.Link, error) {
	link, getErr := l.linkRepo.GetByShortCodeOwner(ctx, shortCode, ownerID)
	if getErr != nil {
		if errors.Is(getErr, repositories.ErrNotFound) {
			return nil, errors.Wrapf(ErrRecordNotFound, "short code %s", shortCode)
		}
		return nil, ErrUnknown
	}

	if params.OriginalURL != nil {
		link.OriginalURL = *params.OriginalURL
	}
	if params.ExpiresInDays != nil {
		t := time.Now().UTC().AddDate(0, 0, *params.ExpiresInDays)
		link.ExpiresAt = &t
	}

	if updErr := l.linkRepo.Update(ctx, link); updErr != nil {
		return nil, ErrUnknown
	}

	l.refreshCache(ctx, link)
	return link, nil
}

// Delete удаляет ссылку пользователя ownerID и инвалидирует кеш.
func (l *LinkService) Delete(ctx context.Context, shortCode string, ownerID uint) error {
	if delErr := l.linkRepo.Delete(ctx, shortCode, ownerID); delErr != nil {
		if errors.Is(delErr, repositories.ErrNotFound) {
			return errors.Wrapf(ErrRecordNotFound, "short code %s", shortCode)
		}
		return ErrUnknown
	}

	if cacheErr := l.cache.Invalidate(ctx, shortCode); cacheErr != nil {
		l.logger.Warn("failed to invalidate cache", zap.Error(cacheErr), zap.String("shortCode", shortCode))
	}
	return nil
}

// refreshCache приводит кеш в соответствие с текущим состоянием ссылки.
// Ошибки кеша логируются и не влияют на результат мутации.
func (l *LinkService) refreshCache(ctx context.Context, link *models.Link) {
	var cacheErr error
	if link.IsExpired(time.Now()) {
		cacheErr = l.cache.Invalidate(ctx, link.ShortCode)
	} else {
		cacheErr = l.cache.Set(ctx, link.ShortCode, link.OriginalURL, l.cacheTTL)
	}
	if cacheErr != nil {
		l.logger.Warn("failed to refresh cache", zap.Error(cacheErr), zap.String("shortCode", link.ShortCode))
	}
}

// generateShortCode генерирует случайный код заданной длины.
func generateShortCode(length int) (string, error) {
	code := make([]byte, length)
	alphabetLen := big.NewInt(int64(len(codeAlphabet)))
	for i := range code {
		n, err := rand.Int(rand.Reader, alphabetLen)
		if err != nil {
			return "", errors.Wrap(err, "generate short code")
		}
		code[i] = codeAlphabet[n.Int64()]
	}
	return string(code), nil
}
