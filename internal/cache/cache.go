package cache

import (
	"context"
	"errors"
	"time"
)

// DefaultTTL срок жизни записи в кеше по умолчанию.
const DefaultTTL = time.Hour

// ErrCacheMiss запись отсутствует либо истек её срок жизни.
// ErrUnavailable бекенд кеша недоступен. Для резолвера эквивалентно промаху:
// кеш это оптимизация, а не источник истины.
var (
	ErrCacheMiss   = errors.New("[cache]: miss")
	ErrUnavailable = errors.New("[cache]: unavailable")
)

// Cache кеш разрешения коротких кодов: short code -> оригинальный URL.
//
// Запись живет заданный TTL и удаляется по явной инвалидации. Set идемпотентен:
// повторная запись с теми же аргументами лишь заново отсчитывает TTL.
// Реализации должны быть безопасны для конкурентного использования.
type Cache interface {
	// Get возвращает оригинальный URL по коду либо ErrCacheMiss.
	Get(ctx context.Context, shortCode string) (string, error)
	// Set сохраняет соответствие код -> URL на срок ttl.
	Set(ctx context.Context, shortCode string, originalURL string, ttl time.Duration) error
	// Invalidate удаляет запись. Отсутствие записи не является ошибкой.
	Invalidate(ctx context.Context, shortCode string) error
}
