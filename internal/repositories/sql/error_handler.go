package sql

import (
	"strings"

	"github.com/fsdevblog/shortlink/internal/repositories"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

func convertErrorType(err error) error {
	switch {
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return repositories.ErrDuplicateKey
	case errors.Is(err, gorm.ErrRecordNotFound):
		return repositories.ErrNotFound
	// драйвер sqlite не всегда транслирует нарушение уникальности
	case strings.Contains(err.Error(), "UNIQUE constraint"):
		return repositories.ErrDuplicateKey
	default:
		return repositories.ErrUnknown
	}
}
