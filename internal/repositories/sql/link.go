package sql

import (
	"context"

	"github.com/fsdevblog/shortlink/internal/models"
	"github.com/fsdevblog/shortlink/internal/repositories"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// LinkRepo репозиторий таблицы `links`.
type LinkRepo struct {
	db     *gorm.DB
	logger *zap.Logger
}

func NewLinkRepo(db *gorm.DB, logger *zap.Logger) *LinkRepo {
	return &LinkRepo{
		db:     db,
		logger: logger.With(zap.String("module", "repository/sql/link")),
	}
}

func (l *LinkRepo) Create(ctx context.Context, link *models.Link) error {
	if err := l.db.WithContext(ctx).Create(link).Error; err != nil {
		convErr := convertErrorType(err)
		if !errors.Is(convErr, repositories.ErrDuplicateKey) {
			l.logger.Error("failed to create record", zap.Error(err), zap.String("shortCode", link.ShortCode))
		}
		return convErr
	}
	return nil
}

func (l *LinkRepo) GetByShortCode(ctx context.Context, shortCode string) (*models.Link, error) {
	var link models.Link
	if err := l.db.WithContext(ctx).Where("short_code = ?", shortCode).First(&link).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repositories.ErrNotFound
		}
		l.logger.Error("failed to get record by short code", zap.Error(err), zap.String("shortCode", shortCode))
		return nil, repositories.ErrUnknown
	}
	return &link, nil
}

// GetByShortCodeOwner находит ссылку по коду среди принадлежащих пользователю ownerID.
func (l *LinkRepo) GetByShortCodeOwner(ctx context.Context, shortCode string, ownerID uint) (*models.Link, error) {
	var link models.Link
	err := l.db.WithContext(ctx).
		Where("short_code = ? AND owner_id = ?", shortCode, ownerID).
		First(&link).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repositories.ErrNotFound
		}
		l.logger.Error("failed to get record by short code", zap.Error(err), zap.String("shortCode", shortCode))
		return nil, repositories.ErrUnknown
	}
	return &link, nil
}

func (l *LinkRepo) GetByOriginalURL(ctx context.Context, rawURL string) (*models.Link, error) {
	var link models.Link
	if err := l.db.WithContext(ctx).Where("original_url = ?", rawURL).First(&link).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repositories.ErrNotFound
		}
		l.logger.Error("failed to get record by raw url", zap.Error(err), zap.String("url", rawURL))
		return nil, repositories.ErrUnknown
	}
	return &link, nil
}

func (l *LinkRepo) GetAllByOwner(ctx context.Context, ownerID uint) ([]models.Link, error) {
	var links []models.Link
	if err := l.db.WithContext(ctx).Where("owner_id = ?", ownerID).Find(&links).Error; err != nil {
		l.logger.Error("failed to get records by owner", zap.Error(err), zap.Uint("ownerID", ownerID))
		return nil, repositories.ErrUnknown
	}
	return links, nil
}

func (l *LinkRepo) Update(ctx context.Context, link *models.Link) error {
	if err := l.db.WithContext(ctx).Save(link).Error; err != nil {
		l.logger.Error("failed to update record", zap.Error(err), zap.String("shortCode", link.ShortCode))
		return convertErrorType(err)
	}
	return nil
}

func (l *LinkRepo) Delete(ctx context.Context, shortCode string, ownerID uint) error {
	res := l.db.WithContext(ctx).
		Where("short_code = ? AND owner_id = ?", shortCode, ownerID).
		Delete(&models.Link{})
	if res.Error != nil {
		l.logger.Error("failed to delete record", zap.Error(res.Error), zap.String("shortCode", shortCode))
		return convertErrorType(res.Error)
	}
	if res.RowsAffected == 0 {
		return repositories.ErrNotFound
	}
	return nil
}

// IncrementAccessCount атомарно увеличивает счетчик переходов на delta.
// Инкремент выполняется на стороне БД, конкурентные вызовы не теряют обновлений.
func (l *LinkRepo) IncrementAccessCount(ctx context.Context, shortCode string, delta uint64) error {
	err := l.db.WithContext(ctx).
		Model(&models.Link{}).
		Where("short_code = ?", shortCode).
		UpdateColumn("access_count", gorm.Expr("access_count + ?", delta)).Error
	if err != nil {
		l.logger.Error("failed to increment access count", zap.Error(err), zap.String("shortCode", shortCode))
		return repositories.ErrUnknown
	}
	return nil
}
