package sessions

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	pkgerrors "github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

// DefaultTTL срок жизни сессии по умолчанию.
const DefaultTTL = 24 * time.Hour

const keyPrefix = "session:"

// ErrSessionNotFound сессия отсутствует либо истекла.
var ErrSessionNotFound = errors.New("[sessions]: session not found")

// Store серверное хранилище сессий поверх redis.
// Токен непрозрачный, сессия отзывается удалением ключа на сервере.
type Store struct {
	client *redis.Client
	ttl    time.Duration
}

func NewStore(client *redis.Client, ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Store{client: client, ttl: ttl}
}

// Create создает сессию для пользователя userID и возвращает токен.
func (s *Store) Create(ctx context.Context, userID uint) (string, error) {
	token, tokenErr := generateToken()
	if tokenErr != nil {
		return "", tokenErr
	}
	if err := s.client.Set(ctx, keyPrefix+token, userID, s.ttl).Err(); err != nil {
		return "", pkgerrors.Wrap(err, "failed to store session")
	}
	return token, nil
}

// Get возвращает идентификатор пользователя по токену сессии.
func (s *Store) Get(ctx context.Context, token string) (uint, error) {
	val, err := s.client.Get(ctx, keyPrefix+token).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, ErrSessionNotFound
		}
		return 0, pkgerrors.Wrap(err, "failed to load session")
	}
	userID, parseErr := strconv.ParseUint(val, 10, 64)
	if parseErr != nil {
		// мусор в ключе сессии, считаем что сессии нет
		return 0, ErrSessionNotFound
	}
	return uint(userID), nil
}

// Destroy удаляет сессию. Отсутствие сессии не является ошибкой.
func (s *Store) Destroy(ctx context.Context, token string) error {
	if err := s.client.Del(ctx, keyPrefix+token).Err(); err != nil {
		return pkgerrors.Wrap(err, "failed to destroy session")
	}
	return nil
}

// TTL срок жизни сессии. Используется контроллером для max-age куки.
func (s *Store) TTL() time.Duration {
	return s.ttl
}

func generateToken() (string, error) {
	u, err := uuid.NewRandom()
	if err != nil {
		return "", fmt.Errorf("generate session token: %w", err)
	}
	return u.String(), nil
}
