package controllers

import "errors"

// Ошибки.
var (
	ErrRecordNotFound = errors.New("record not found") // Запись не найдена
	ErrLinkExpired    = errors.New("link expired")     // Срок действия ссылки истек
	ErrInternal       = errors.New("internal error")   // Прочая ошибка
)
