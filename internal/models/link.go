package models

import "time"

// ShortCodeMinLength минимальная длина короткого кода.
// ShortCodeMaxLength максимальная длина короткого кода.
// GeneratedCodeLength длина автоматически сгенерированного кода.
const (
	ShortCodeMinLength  = 1
	ShortCodeMaxLength  = 20
	GeneratedCodeLength = 6
)

// Link структура модели короткой ссылки.
type Link struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	OriginalURL string     `gorm:"size:512;not null" json:"originalURL"`
	ShortCode   string     `gorm:"size:20;uniqueIndex;not null" json:"shortCode"`
	CreatedAt   time.Time  `json:"createdAt"`
	ExpiresAt   *time.Time `json:"expiresAt,omitempty"`
	AccessCount uint64     `gorm:"not null;default:0" json:"accessCount"`
	OwnerID     uint       `gorm:"index;not null" json:"ownerID"`
}

// IsExpired возвращает true если для ссылки задан срок действия и он истек.
func (l *Link) IsExpired(now time.Time) bool {
	return l.ExpiresAt != nil && l.ExpiresAt.Before(now)
}
