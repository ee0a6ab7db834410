package services

import (
	"time"

	"github.com/fsdevblog/shortlink/internal/cache"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Services сервисный слой приложения.
type Services struct {
	LinkService     *LinkService
	UserService     *UserService
	RedirectService *RedirectService
	PingService     *PingService
}

// Params зависимости сервисного слоя.
type Params struct {
	DB       *gorm.DB
	LinkRepo LinkRepository
	UserRepo UserRepository
	Cache    cache.Cache
	Counter  AccessCounter
	CacheTTL time.Duration
	Logger   *zap.Logger
}

// New собирает сервисный слой из репозиториев и инфраструктурных зависимостей.
func New(p Params) *Services {
	return &Services{
		LinkService:     NewLinkService(p.LinkRepo, p.Cache, p.CacheTTL, p.Logger),
		UserService:     NewUserService(p.UserRepo, p.LinkRepo, p.Cache, p.Logger),
		RedirectService: NewRedirectService(p.LinkRepo, p.Cache, p.Counter, p.CacheTTL, p.Logger),
		PingService:     NewPingService(p.DB),
	}
}
