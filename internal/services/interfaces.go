package services

import (
	"context"

	"github.com/fsdevblog/shortlink/internal/models"
)

// LinkRepository описывает репозиторий ссылок.
type LinkRepository interface {
	// Create создает запись. Возвращает repositories.ErrDuplicateKey если
	// короткий код уже занят.
	Create(ctx context.Context, link *models.Link) error
	// GetByShortCode находит запись по короткому коду вне зависимости от владельца.
	GetByShortCode(ctx context.Context, shortCode string) (*models.Link, error)
	// GetByShortCodeOwner находит запись по короткому коду среди ссылок владельца.
	GetByShortCodeOwner(ctx context.Context, shortCode string, ownerID uint) (*models.Link, error)
	// GetByOriginalURL находит запись по оригинальному URL.
	GetByOriginalURL(ctx context.Context, rawURL string) (*models.Link, error)
	// GetAllByOwner возвращает все ссылки владельца.
	GetAllByOwner(ctx context.Context, ownerID uint) ([]models.Link, error)
	// Update сохраняет изменения записи.
	Update(ctx context.Context, link *models.Link) error
	// Delete удаляет запись владельца.
	Delete(ctx context.Context, shortCode string, ownerID uint) error
}

// UserRepository описывает репозиторий пользователей.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	GetByID(ctx context.Context, id uint) (*models.User, error)
	// Delete удаляет пользователя и все его ссылки.
	Delete(ctx context.Context, id uint) error
}

// AccessCounter очередь инкрементов счетчика переходов.
// Вызов не блокирует и ничего не гарантирует сверх at-least-once
// на стороне воркера.
type AccessCounter interface {
	Enqueue(shortCode string)
}
