package controllers

import (
	"time"

	"github.com/fsdevblog/shortlink/internal/controllers/middlewares"
	"github.com/gin-gonic/gin"
)

const (
	DefaultRequestTimeout = 3 * time.Second
)

// currentUserID возвращает идентификатор пользователя, установленный
// миддлварой SessionAuth. Второе значение false если пользователь не установлен.
func currentUserID(ctx *gin.Context) (uint, bool) {
	val, exists := ctx.Get(middlewares.CurrentUserIDKey)
	if !exists {
		return 0, false
	}
	userID, ok := val.(uint)
	return userID, ok
}
