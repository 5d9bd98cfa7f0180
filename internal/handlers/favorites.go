// internal/handlers/favorites.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/javajoker/storefront-backend/internal/i18n"
	"github.com/javajoker/storefront-backend/internal/services"
	"github.com/javajoker/storefront-backend/internal/utils"
)

type FavoritesHandler struct {
	favoritesService *services.FavoritesService
}

func NewFavoritesHandler(favoritesService *services.FavoritesService) *FavoritesHandler {
	return &FavoritesHandler{
		favoritesService: favoritesService,
	}
}

func (h *FavoritesHandler) commandError(c *gin.Context, err error) {
	if errors.Is(err, services.ErrUnknownProduct) {
		lang := utils.GetLangFromContext(c)
		utils.ErrorResponse(c, http.StatusNotFound, "UNKNOWN_PRODUCT", i18n.T(lang, i18n.KeyCartUnknownItem), nil)
		return
	}
	utils.InternalErrorResponse(c, "")
}

// GET /favorites
func (h *FavoritesHandler) GetFavorites(c *gin.Context) {
	sid, ok := sessionID(c)
	if !ok {
		return
	}

	view, err := h.favoritesService.View(c.Request.Context(), sid)
	if err != nil {
		h.commandError(c, err)
		return
	}

	utils.SuccessResponse(c, view)
}

// GET /favorites/:id
func (h *FavoritesHandler) IsFavorite(c *gin.Context) {
	sid, ok := sessionID(c)
	if !ok {
		return
	}

	favorite, err := h.favoritesService.IsFavorite(c.Request.Context(), sid, c.Param("id"))
	if err != nil {
		h.commandError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"productId": c.Param("id"),
		"favorite":  favorite,
	})
}

// POST /favorites/:id
func (h *FavoritesHandler) Add(c *gin.Context) {
	sid, ok := sessionID(c)
	if !ok {
		return
	}

	list, err := h.favoritesService.Add(c.Request.Context(), sid, c.Param("id"))
	if err != nil {
		h.commandError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message":   i18n.T(utils.GetLangFromContext(c), i18n.KeyFavoriteAdded),
		"favorites": list.ProductIDs,
	})
}

// DELETE /favorites/:id
func (h *FavoritesHandler) Remove(c *gin.Context) {
	sid, ok := sessionID(c)
	if !ok {
		return
	}

	list, err := h.favoritesService.Remove(c.Request.Context(), sid, c.Param("id"))
	if err != nil {
		h.commandError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message":   i18n.T(utils.GetLangFromContext(c), i18n.KeyFavoriteRemoved),
		"favorites": list.ProductIDs,
	})
}

// POST /favorites/:id/toggle
func (h *FavoritesHandler) Toggle(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	sid, ok := sessionID(c)
	if !ok {
		return
	}

	favorite, err := h.favoritesService.Toggle(c.Request.Context(), sid, c.Param("id"))
	if err != nil {
		h.commandError(c, err)
		return
	}

	message := i18n.T(lang, i18n.KeyFavoriteRemoved)
	if favorite {
		message = i18n.T(lang, i18n.KeyFavoriteAdded)
	}
	utils.SuccessResponse(c, gin.H{
		"message":   message,
		"productId": c.Param("id"),
		"favorite":  favorite,
	})
}

// DELETE /favorites
func (h *FavoritesHandler) Clear(c *gin.Context) {
	sid, ok := sessionID(c)
	if !ok {
		return
	}

	if err := h.favoritesService.Clear(c.Request.Context(), sid); err != nil {
		h.commandError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message":   i18n.T(utils.GetLangFromContext(c), i18n.KeyFavoritesClear),
		"favorites": []string{},
	})
}
