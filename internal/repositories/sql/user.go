package sql

import (
	"context"

	"github.com/fsdevblog/shortlink/internal/models"
	"github.com/fsdevblog/shortlink/internal/repositories"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// UserRepo репозиторий таблицы `users`.
type UserRepo struct {
	db     *gorm.DB
	logger *zap.Logger
}

func NewUserRepo(db *gorm.DB, logger *zap.Logger) *UserRepo {
	return &UserRepo{
		db:     db,
		logger: logger.With(zap.String("module", "repository/sql/user")),
	}
}

func (u *UserRepo) Create(ctx context.Context, user *models.User) error {
	if err := u.db.WithContext(ctx).Create(user).Error; err != nil {
		convErr := convertErrorType(err)
		if !errors.Is(convErr, repositories.ErrDuplicateKey) {
			u.logger.Error("failed to create user", zap.Error(err), zap.String("username", user.Username))
		}
		return convErr
	}
	return nil
}

func (u *UserRepo) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	if err := u.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repositories.ErrNotFound
		}
		u.logger.Error("failed to get user by username", zap.Error(err), zap.String("username", username))
		return nil, repositories.ErrUnknown
	}
	return &user, nil
}

// Delete удаляет пользователя вместе с его ссылками в одной транзакции.
// Каскад выполняется явно: sqlite по умолчанию не применяет внешние ключи,
// поэтому на констрейнт OnDelete:CASCADE полагаться нельзя.
func (u *UserRepo) Delete(ctx context.Context, id uint) error {
	err := u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if delErr := tx.Where("owner_id = ?", id).Delete(&models.Link{}).Error; delErr != nil {
			return delErr
		}
		res := tx.Delete(&models.User{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return repositories.ErrNotFound
		}
		u.logger.Error("failed to delete user", zap.Error(err), zap.Uint("id", id))
		return repositories.ErrUnknown
	}
	return nil
}

func (u *UserRepo) GetByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := u.db.WithContext(ctx).First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repositories.ErrNotFound
		}
		u.logger.Error("failed to get user by id", zap.Error(err), zap.Uint("id", id))
		return nil, repositories.ErrUnknown
	}
	return &user, nil
}
