package models

import "time"

// User структура модели пользователя. Пароль хранится только в виде bcrypt хеша.
type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Username     string    `gorm:"size:50;uniqueIndex;not null" json:"username"`
	Email        *string   `gorm:"size:100;uniqueIndex" json:"email,omitempty"`
	PasswordHash string    `gorm:"size:255;not null" json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
	Links        []Link    `gorm:"foreignKey:OwnerID;constraint:OnDelete:CASCADE" json:"-"`
}
