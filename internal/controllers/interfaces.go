package controllers

import (
	"context"
	"time"

	"github.com/fsdevblog/shortlink/internal/models"
	"github.com/fsdevblog/shortlink/internal/services"
)

// RedirectResolver разрешает короткий код в оригинальный URL.
type RedirectResolver interface {
	Resolve(ctx context.Context, shortCode string) (string, error)
}

// LinkManager операции управления ссылками пользователя.
type LinkManager interface {
	Create(ctx context.Context, ownerID uint, params services.CreateLinkParams) (*models.Link, error)
	GetByShortCode(ctx context.Context, shortCode string, ownerID uint) (*models.Link, error)
	GetAllByOwner(ctx context.Context, ownerID uint) ([]models.Link, error)
	Search(ctx context.Context, rawURL string) (*models.Link, error)
	Update(ctx context.Context, shortCode string, ownerID uint, params services.UpdateLinkParams) (*models.Link, error)
	Delete(ctx context.Context, shortCode string, ownerID uint) error
}

// UserManager операции регистрации, аутентификации и управления аккаунтом.
type UserManager interface {
	Register(ctx context.Context, params services.RegisterParams) (*models.User, error)
	Authenticate(ctx context.Context, username, password string) (*models.User, error)
	GetByID(ctx context.Context, id uint) (*models.User, error)
	Delete(ctx context.Context, id uint) error
}

// SessionStore серверное хранилище сессий.
type SessionStore interface {
	Create(ctx context.Context, userID uint) (string, error)
	Get(ctx context.Context, token string) (uint, error)
	Destroy(ctx context.Context, token string) error
	TTL() time.Duration
}

// ConnectionChecker проверка соединения с базой данных.
type ConnectionChecker interface {
	CheckConnection(ctx context.Context) error
}
