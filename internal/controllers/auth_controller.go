package controllers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/fsdevblog/shortlink/internal/controllers/middlewares"
	"github.com/fsdevblog/shortlink/internal/services"
	"github.com/gin-gonic/gin"
)

// registerRequest схема регистрации пользователя.
type registerRequest struct {
	Username string  `json:"username" binding:"required,max=50"`
	Password string  `json:"password" binding:"required,min=6"`
	Email    *string `json:"email" binding:"omitempty,email,max=100"`
}

// loginRequest схема авторизации.
type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// userResponse схема вывода пользователя.
type userResponse struct {
	ID        uint      `json:"id"`
	Username  string    `json:"username"`
	Email     *string   `json:"email,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// AuthController регистрация, вход и выход пользователей.
type AuthController struct {
	userService UserManager
	sessions    SessionStore
}

func NewAuthController(userService UserManager, sessions SessionStore) *AuthController {
	return &AuthController{
		userService: userService,
		sessions:    sessions,
	}
}

// Register обрабатывает POST /api/auth/register.
func (c *AuthController) Register(ctx *gin.Context) {
	var req registerRequest
	if bindErr := ctx.ShouldBindJSON(&req); bindErr != nil {
		ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": bindErr.Error()})
		return
	}

	reqCtx, cancel := context.WithTimeout(ctx, DefaultRequestTimeout)
	defer cancel()

	user, regErr := c.userService.Register(reqCtx, services.RegisterParams{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if regErr != nil {
		if errors.Is(regErr, services.ErrDuplicateKey) {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "username or email is already taken"})
			return
		}
		_ = ctx.Error(regErr)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": ErrInternal.Error()})
		return
	}

	ctx.JSON(http.StatusCreated, userResponse{
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
	})
}

// Login обрабатывает POST /api/auth/login.
// При успехе выставляет httpOnly куку с токеном серверной сессии.
func (c *AuthController) Login(ctx *gin.Context) {
	var req loginRequest
	if bindErr := ctx.ShouldBindJSON(&req); bindErr != nil {
		ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": bindErr.Error()})
		return
	}

	reqCtx, cancel := context.WithTimeout(ctx, DefaultRequestTimeout)
	defer cancel()

	user, authErr := c.userService.Authenticate(reqCtx, req.Username, req.Password)
	if authErr != nil {
		if errors.Is(authErr, services.ErrInvalidCredentials) {
			ctx.JSON(http.StatusUnauthorized, gin.H{"error": "invalid username or password"})
			return
		}
		_ = ctx.Error(authErr)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": ErrInternal.Error()})
		return
	}

	token, sessErr := c.sessions.Create(reqCtx, user.ID)
	if sessErr != nil {
		_ = ctx.Error(sessErr)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": ErrInternal.Error()})
		return
	}

	ctx.SetCookie(middlewares.SessionCookieName, token, int(c.sessions.TTL().Seconds()), "/", "", false, true)
	ctx.JSON(http.StatusOK, gin.H{"message": "logged in"})
}

// Profile обрабатывает GET /api/auth/profile.
func (c *AuthController) Profile(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	reqCtx, cancel := context.WithTimeout(ctx, DefaultRequestTimeout)
	defer cancel()

	user, err := c.userService.GetByID(reqCtx, userID)
	if err != nil {
		if errors.Is(err, services.ErrRecordNotFound) {
			ctx.JSON(http.StatusUnauthorized, gin.H{"error": "session is not valid"})
			return
		}
		_ = ctx.Error(err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": ErrInternal.Error()})
		return
	}

	ctx.JSON(http.StatusOK, userResponse{
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
	})
}

// DeleteUser обрабатывает DELETE /api/auth/user.
// Удаляет текущего пользователя вместе со ссылками, отзывает сессию
// и сбрасывает куку.
func (c *AuthController) DeleteUser(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	reqCtx, cancel := context.WithTimeout(ctx, DefaultRequestTimeout)
	defer cancel()

	if delErr := c.userService.Delete(reqCtx, userID); delErr != nil {
		if errors.Is(delErr, services.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": ErrRecordNotFound.Error()})
			return
		}
		_ = ctx.Error(delErr)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": ErrInternal.Error()})
		return
	}

	if token, cookieErr := ctx.Cookie(middlewares.SessionCookieName); cookieErr == nil && token != "" {
		if destroyErr := c.sessions.Destroy(reqCtx, token); destroyErr != nil {
			_ = ctx.Error(destroyErr)
		}
	}

	ctx.SetCookie(middlewares.SessionCookieName, "", -1, "/", "", false, true)
	ctx.JSON(http.StatusOK, gin.H{"message": "user deleted"})
}

// Logout обрабатывает POST /api/auth/logout.
// Отзывает сессию на сервере и сбрасывает куку.
func (c *AuthController) Logout(ctx *gin.Context) {
	token, cookieErr := ctx.Cookie(middlewares.SessionCookieName)
	if cookieErr != nil || token == "" {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "not logged in"})
		return
	}

	reqCtx, cancel := context.WithTimeout(ctx, DefaultRequestTimeout)
	defer cancel()

	if err := c.sessions.Destroy(reqCtx, token); err != nil {
		_ = ctx.Error(err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": ErrInternal.Error()})
		return
	}

	ctx.SetCookie(middlewares.SessionCookieName, "", -1, "/", "", false, true)
	ctx.JSON(http.StatusOK, gin.H{"message": "logged out"})
}
