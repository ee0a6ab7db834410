package services

import (
	"context"
	"fmt"

	"gorm.io/gorm"
)

// PingService проверяет доступность базы данных.
type PingService struct {
	db *gorm.DB
}

func NewPingService(db *gorm.DB) *PingService {
	return &PingService{db: db}
}

func (s *PingService) CheckConnection(ctx context.Context) error {
	sqlDB, dbErr := s.db.DB()
	if dbErr != nil {
		return fmt.Errorf("ping error: %w", dbErr)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("ping error: %w", err)
	}
	return nil
}
