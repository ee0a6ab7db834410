package middlewares

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/fsdevblog/shortlink/internal/models"
	"github.com/fsdevblog/shortlink/internal/services"
	"github.com/fsdevblog/shortlink/internal/sessions"
	"github.com/gin-gonic/gin"
)

const (
	// SessionCookieName имя куки с токеном сессии.
	SessionCookieName = "session_id"

	// CurrentUserIDKey ключ контекста gin с идентификатором текущего пользователя.
	CurrentUserIDKey = "currentUserID"

	sessionLookupTimeout = 3 * time.Second
)

// SessionStore часть хранилища сессий, нужная миддлваре.
type SessionStore interface {
	Get(ctx context.Context, token string) (uint, error)
}

// UserLoader часть сервиса пользователей, нужная миддлваре.
type UserLoader interface {
	GetByID(ctx context.Context, id uint) (*models.User, error)
}

// SessionAuth проверяет серверную сессию из куки и кладет идентификатор
// пользователя в контекст gin. Без валидной сессии запрос обрывается с 401.
// Пользователь загружается из хранилища: живая сессия удаленного пользователя
// авторизовать запрос не должна.
func SessionAuth(store SessionStore, users UserLoader) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, cookieErr := c.Cookie(SessionCookieName)
		if cookieErr != nil || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "not authorized"})
			return
		}

		lookupCtx, cancel := context.WithTimeout(c, sessionLookupTimeout)
		defer cancel()

		userID, sessErr := store.Get(lookupCtx, token)
		if sessErr != nil {
			if !errors.Is(sessErr, sessions.ErrSessionNotFound) {
				_ = c.Error(fmt.Errorf("session auth middleware: %w", sessErr))
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "session is not valid"})
			return
		}

		if _, userErr := users.GetByID(lookupCtx, userID); userErr != nil {
			if !errors.Is(userErr, services.ErrRecordNotFound) {
				_ = c.Error(fmt.Errorf("session auth middleware: %w", userErr))
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "session is not valid"})
			return
		}

		c.Set(CurrentUserIDKey, userID)
		c.Next()
	}
}
