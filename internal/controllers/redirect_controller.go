package controllers

import (
	"context"
	"errors"
	"net/http"

	"github.com/fsdevblog/shortlink/internal/models"
	"github.com/fsdevblog/shortlink/internal/services"
	"github.com/gin-gonic/gin"
)

// RedirectController публичный эндпоинт редиректа.
type RedirectController struct {
	resolver RedirectResolver
}

func NewRedirectController(resolver RedirectResolver) *RedirectController {
	return &RedirectController{resolver: resolver}
}

// Redirect обрабатывает GET /:shortCode.
//
// Возвращает:
//   - 302 с Location на оригинальный URL
//   - 404 если код неизвестен
//   - 410 если срок действия ссылки истек
//   - 500 при недоступности хранилища
func (c *RedirectController) Redirect(ctx *gin.Context) {
	shortCode := ctx.Param("shortCode")

	if len(shortCode) < models.ShortCodeMinLength || len(shortCode) > models.ShortCodeMaxLength {
		ctx.String(http.StatusNotFound, ErrRecordNotFound.Error())
		return
	}

	resolveCtx, cancel := context.WithTimeout(ctx, DefaultRequestTimeout)
	defer cancel()

	originalURL, err := c.resolver.Resolve(resolveCtx, shortCode)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrRecordNotFound):
			ctx.String(http.StatusNotFound, ErrRecordNotFound.Error())
		case errors.Is(err, services.ErrLinkExpired):
			ctx.String(http.StatusGone, ErrLinkExpired.Error())
		default:
			_ = ctx.Error(err)
			ctx.String(http.StatusInternalServerError, ErrInternal.Error())
		}
		return
	}

	ctx.Redirect(http.StatusFound, originalURL)
}
