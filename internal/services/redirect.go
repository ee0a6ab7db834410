package services

import (
	"context"
	"time"

	"github.com/fsdevblog/shortlink/internal/cache"
	"github.com/fsdevblog/shortlink/internal/repositories"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// RedirectService разрешает короткий код в оригинальный URL на горячем пути
// редиректа: сначала кеш, при промахе - хранилище с последующим наполнением кеша.
type RedirectService struct {
	linkRepo LinkRepository
	cache    cache.Cache
	counter  AccessCounter
	cacheTTL time.Duration
	logger   *zap.Logger
}

func NewRedirectService(
	linkRepo LinkRepository,
	c cache.Cache,
	counter AccessCounter,
	cacheTTL time.Duration,
	logger *zap.Logger,
) *RedirectService {
	if cacheTTL <= 0 {
		cacheTTL = cache.DefaultTTL
	}
	return &RedirectService{
		linkRepo: linkRepo,
		cache:    c,
		counter:  counter,
		cacheTTL: cacheTTL,
		logger:   logger.With(zap.String("module", "services/redirect")),
	}
}

// Resolve возвращает оригинальный URL по короткому коду.
//
// Попадание в кеш отдается как есть, без сверки с хранилищем: в пределах TTL
// записи кеша доверяем. Удаленная или истекшая ссылка может отдаваться
// до одного TTL после изменения.
//
// При промахе (или недоступном кеше) код ищется в хранилище:
//   - записи нет -> ErrRecordNotFound
//   - срок действия истек -> ErrLinkExpired, кеш не наполняется
//   - иначе кеш наполняется и возвращается URL
//
// Инкремент счетчика переходов ставится в очередь на любом успешном исходе
// и не влияет на латентность ответа.
func (r *RedirectService) Resolve(ctx context.Context, shortCode string) (string, error) {
	cachedURL, cacheErr := r.cache.Get(ctx, shortCode)
	if cacheErr == nil {
		r.counter.Enqueue(shortCode)
		return cachedURL, nil
	}
	if !errors.Is(cacheErr, cache.ErrCacheMiss) {
		// кеш недоступен - работаем как при промахе, напрямую через хранилище
		r.logger.Warn("cache unavailable, falling back to store", zap.Error(cacheErr))
	}

	link, repoErr := r.linkRepo.GetByShortCode(ctx, shortCode)
	if repoErr != nil {
		if errors.Is(repoErr, repositories.ErrNotFound) {
			return "", errors.Wrapf(ErrRecordNotFound, "short code %s", shortCode)
		}
		return "", ErrUnknown
	}

	if link.IsExpired(time.Now()) {
		return "", errors.Wrapf(ErrLinkExpired, "short code %s", shortCode)
	}

	if setErr := r.cache.Set(ctx, shortCode, link.OriginalURL, r.cacheTTL); setErr != nil {
		r.logger.Warn("failed to populate cache", zap.Error(setErr), zap.String("shortCode", shortCode))
	}

	r.counter.Enqueue(shortCode)
	return link.OriginalURL, nil
}
