package db

import (
	"fmt"

	"github.com/fsdevblog/shortlink/internal/models"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// StorageType тип реляционного хранилища.
type StorageType string

const (
	StorageTypePostgres StorageType = "postgres"
	StorageTypeSQLite   StorageType = "sqlite"
)

// FactoryConfig параметры подключения к хранилищу.
type FactoryConfig struct {
	StorageType StorageType
	PostgresDSN string
	SQLitePath  string
}

// NewConnectionFactory создает подключение к реляционному хранилищу
// и прогоняет миграцию схемы.
func NewConnectionFactory(conf FactoryConfig) (*gorm.DB, error) {
	var conn *gorm.DB
	var connErr error

	switch conf.StorageType {
	case StorageTypePostgres:
		if conf.PostgresDSN == "" {
			return nil, errors.New("postgres dsn is empty")
		}
		conn, connErr = NewPostgresConnection(conf.PostgresDSN)
	case StorageTypeSQLite:
		if conf.SQLitePath == "" {
			return nil, errors.New("sqlite path is empty")
		}
		conn, connErr = NewSQLiteConnection(conf.SQLitePath)
	default:
		return nil, fmt.Errorf("unknown storage type: %s", conf.StorageType)
	}

	if connErr != nil {
		return nil, connErr
	}

	// да да, знаю что нужно миграции прикрутить людские). Обязательно сделаю.
	if migrateErr := conn.AutoMigrate(&models.User{}, &models.Link{}); migrateErr != nil {
		return nil, errors.Wrap(migrateErr, "failed to migrate schema")
	}
	return conn, nil
}
