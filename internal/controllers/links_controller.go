package controllers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/fsdevblog/shortlink/internal/models"
	"github.com/fsdevblog/shortlink/internal/services"
	"github.com/gin-gonic/gin"
)

// createLinkRequest схема создания короткой ссылки.
type createLinkRequest struct {
	OriginalURL   string  `json:"original_url" binding:"required"`
	CustomAlias   *string `json:"custom_alias" binding:"omitempty,min=1,max=20"`
	ExpiresInDays *int    `json:"expires_in_days" binding:"omitempty,gt=0"`
}

// updateLinkRequest схема обновления ссылки. Отсутствующие поля не меняются.
// Отрицательный expires_in_days допустим: так ссылка отзывается немедленно.
type updateLinkRequest struct {
	OriginalURL   *string `json:"original_url"`
	ExpiresInDays *int    `json:"expires_in_days"`
}

// linkResponse схема вывода ссылки.
type linkResponse struct {
	ID          uint       `json:"id"`
	ShortCode   string     `json:"short_code"`
	ShortURL    string     `json:"short_url"`
	OriginalURL string     `json:"original_url"`
	CreatedAt   time.Time  `json:"created_at"`
	ExpiresAt   *time.Time `json:"expires_at,omitempty"`
	AccessCount uint64     `json:"access_count"`
}

// linkStatsResponse схема статистики ссылки.
type linkStatsResponse struct {
	OriginalURL string    `json:"original_url"`
	CreatedAt   time.Time `json:"created_at"`
	AccessCount uint64    `json:"access_count"`
}

// LinksController управление ссылками текущего пользователя.
// Все методы требуют аутентификации (SessionAuth миддлвара).
type LinksController struct {
	linkService LinkManager
	baseURL     *url.URL
}

func NewLinksController(linkService LinkManager, baseURL *url.URL) *LinksController {
	return &LinksController{
		linkService: linkService,
		baseURL:     baseURL,
	}
}

// Create обрабатывает POST /api/links/shorten.
func (c *LinksController) Create(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req createLinkRequest
	if bindErr := ctx.ShouldBindJSON(&req); bindErr != nil {
		ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": bindErr.Error()})
		return
	}

	parsedURL, parseErr := validateURL(req.OriginalURL)
	if parseErr != nil {
		ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": parseErr.Error()})
		return
	}

	reqCtx, cancel := context.WithTimeout(ctx, DefaultRequestTimeout)
	defer cancel()

	link, createErr := c.linkService.Create(reqCtx, userID, services.CreateLinkParams{
		OriginalURL:   parsedURL.String(),
		CustomAlias:   req.CustomAlias,
		ExpiresInDays: req.ExpiresInDays,
	})
	if createErr != nil {
		if errors.Is(createErr, services.ErrDuplicateKey) {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "alias is already taken"})
			return
		}
		_ = ctx.Error(createErr)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": ErrInternal.Error()})
		return
	}

	ctx.JSON(http.StatusCreated, c.linkResponse(ctx.Request, link))
}

// List обрабатывает GET /api/links.
func (c *LinksController) List(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	reqCtx, cancel := context.WithTimeout(ctx, DefaultRequestTimeout)
	defer cancel()

	links, err := c.linkService.GetAllByOwner(reqCtx, userID)
	if err != nil {
		_ = ctx.Error(err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": ErrInternal.Error()})
		return
	}
	if len(links) == 0 {
		ctx.JSON(http.StatusNotFound, gin.H{"error": ErrRecordNotFound.Error()})
		return
	}

	resp := make([]linkResponse, 0, len(links))
	for i := range links {
		resp = append(resp, c.linkResponse(ctx.Request, &links[i]))
	}
	ctx.JSON(http.StatusOK, resp)
}

// Search обрабатывает GET /api/links/search?original_url=...
func (c *LinksController) Search(ctx *gin.Context) {
	rawURL := ctx.Query("original_url")
	if rawURL == "" {
		ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": "original_url query param is required"})
		return
	}

	reqCtx, cancel := context.WithTimeout(ctx, DefaultRequestTimeout)
	defer cancel()

	link, err := c.linkService.Search(reqCtx, rawURL)
	if err != nil {
		c.renderLinkError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, c.linkResponse(ctx.Request, link))
}

// Get обрабатывает GET /api/links/:shortCode.
func (c *LinksController) Get(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	reqCtx, cancel := context.WithTimeout(ctx, DefaultRequestTimeout)
	defer cancel()

	link, err := c.linkService.GetByShortCode(reqCtx, ctx.Param("shortCode"), userID)
	if err != nil {
		c.renderLinkError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, c.linkResponse(ctx.Request, link))
}

// Update обрабатывает PUT /api/links/:shortCode.
func (c *LinksController) Update(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req updateLinkRequest
	if bindErr := ctx.ShouldBindJSON(&req); bindErr != nil {
		ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": bindErr.Error()})
		return
	}

	if req.OriginalURL != nil {
		parsedURL, parseErr := validateURL(*req.OriginalURL)
		if parseErr != nil {
			ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": parseErr.Error()})
			return
		}
		normalized := parsedURL.String()
		req.OriginalURL = &normalized
	}

	reqCtx, cancel := context.WithTimeout(ctx, DefaultRequestTimeout)
	defer cancel()

	link, updErr := c.linkService.Update(reqCtx, ctx.Param("shortCode"), userID, services.UpdateLinkParams{
		OriginalURL:   req.OriginalURL,
		ExpiresInDays: req.ExpiresInDays,
	})
	if updErr != nil {
		c.renderLinkError(ctx, updErr)
		return
	}
	ctx.JSON(http.StatusOK, c.linkResponse(ctx.Request, link))
}

// Delete обрабатывает DELETE /api/links/:shortCode.
func (c *LinksController) Delete(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	reqCtx, cancel := context.WithTimeout(ctx, DefaultRequestTimeout)
	defer cancel()

	if err := c.linkService.Delete(reqCtx, ctx.Param("shortCode"), userID); err != nil {
		c.renderLinkError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}

// Stats обрабатывает GET /api/links/:shortCode/stats.
func (c *LinksController) Stats(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	reqCtx, cancel := context.WithTimeout(ctx, DefaultRequestTimeout)
	defer cancel()

	link, err := c.linkService.GetByShortCode(reqCtx, ctx.Param("shortCode"), userID)
	if err != nil {
		c.renderLinkError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, linkStatsResponse{
		OriginalURL: link.OriginalURL,
		CreatedAt:   link.CreatedAt,
		AccessCount: link.AccessCount,
	})
}

func (c *LinksController) renderLinkError(ctx *gin.Context, err error) {
	if errors.Is(err, services.ErrRecordNotFound) {
		ctx.JSON(http.StatusNotFound, gin.H{"error": ErrRecordNotFound.Error()})
		return
	}
	_ = ctx.Error(err)
	ctx.JSON(http.StatusInternalServerError, gin.H{"error": ErrInternal.Error()})
}

func (c *LinksController) linkResponse(r *http.Request, link *models.Link) linkResponse {
	return linkResponse{
		ID:          link.ID,
		ShortCode:   link.ShortCode,
		ShortURL:    c.shortURL(r, link.ShortCode),
		OriginalURL: link.OriginalURL,
		CreatedAt:   link.CreatedAt,
		ExpiresAt:   link.ExpiresAt,
		AccessCount: link.AccessCount,
	}
}

// shortURL вспомогательный метод который создает короткую ссылку.
func (c *LinksController) shortURL(r *http.Request, shortCode string) string {
	var scheme = "http"
	if r.TLS != nil {
		scheme = "https"
	}
	if c.baseURL == nil {
		return fmt.Sprintf("%s://%s/%s", scheme, r.Host, shortCode)
	}
	return fmt.Sprintf("%s/%s", c.baseURL, shortCode)
}
