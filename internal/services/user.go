package services

import (
	"context"

	"github.com/fsdevblog/shortlink/internal/cache"
	"github.com/fsdevblog/shortlink/internal/models"
	"github.com/fsdevblog/shortlink/internal/repositories"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// RegisterParams параметры регистрации пользователя.
type RegisterParams struct {
	Username string
	Email    *string
	Password string
}

// UserService сервис работает с базой данных в контексте таблицы `users`.
// Репозиторий ссылок и кеш нужны для каскадного удаления пользователя.
type UserService struct {
	userRepo UserRepository
	linkRepo LinkRepository
	cache    cache.Cache
	logger   *zap.Logger
}

func NewUserService(userRepo UserRepository, linkRepo LinkRepository, c cache.Cache, logger *zap.Logger) *UserService {
	return &UserService{
		userRepo: userRepo,
		linkRepo: linkRepo,
		cache:    c,
		logger:   logger.With(zap.String("module", "services/user")),
	}
}

// Register создает пользователя. Пароль хешируется bcrypt, занятые username
// или email возвращают ErrDuplicateKey.
func (u *UserService) Register(ctx context.Context, params RegisterParams) (*models.User, error) {
	hash, hashErr := bcrypt.GenerateFromPassword([]byte(params.Password), bcrypt.DefaultCost)
	if hashErr != nil {
		return nil, ErrUnknown
	}

	user := models.User{
		Username:     params.Username,
		Email:        params.Email,
		PasswordHash: string(hash),
	}

	if createErr := u.userRepo.Create(ctx, &user); createErr != nil {
		if errors.Is(createErr, repositories.ErrDuplicateKey) {
			return nil, errors.Wrap(ErrDuplicateKey, "username or email is already taken")
		}
		return nil, ErrUnknown
	}
	return &user, nil
}

// Authenticate проверяет пару логин/пароль.
// Неизвестный логин и неверный пароль неразличимы для вызывающего.
func (u *UserService) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	user, getErr := u.userRepo.GetByUsername(ctx, username)
	if getErr != nil {
		if errors.Is(getErr, repositories.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, ErrUnknown
	}

	if cmpErr := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); cmpErr != nil {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// GetByID возвращает пользователя по идентификатору.
func (u *UserService) GetByID(ctx context.Context, id uint) (*models.User, error) {
	user, err := u.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, errors.Wrapf(ErrRecordNotFound, "user %d", id)
		}
		return nil, ErrUnknown
	}
	return user, nil
}

// Delete удаляет пользователя вместе со всеми его ссылками.
// Кеш редиректов инвалидируется для каждой удаленной ссылки: иначе удаленные
// короткие коды продолжали бы отвечать до истечения TTL записи.
func (u *UserService) Delete(ctx context.Context, id uint) error {
	links, linksErr := u.linkRepo.GetAllByOwner(ctx, id)
	if linksErr != nil {
		// ссылки не прочитались, удаление продолжаем: записи кеша истекут по TTL
		u.logger.Warn("failed to list links before user deletion", zap.Error(linksErr), zap.Uint("userID", id))
	}

	if delErr := u.userRepo.Delete(ctx, id); delErr != nil {
		if errors.Is(delErr, repositories.ErrNotFound) {
			return errors.Wrapf(ErrRecordNotFound, "user %d", id)
		}
		return ErrUnknown
	}

	for i := range links {
		if cacheErr := u.cache.Invalidate(ctx, links[i].ShortCode); cacheErr != nil {
			u.logger.Warn("failed to invalidate cache", zap.Error(cacheErr), zap.String("shortCode", links[i].ShortCode))
		}
	}
	return nil
}
