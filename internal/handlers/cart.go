// internal/handlers/cart.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/javajoker/storefront-backend/internal/i18n"
	"github.com/javajoker/storefront-backend/internal/services"
	"github.com/javajoker/storefront-backend/internal/utils"
)

type CartHandler struct {
	cartService *services.CartService
}

func NewCartHandler(cartService *services.CartService) *CartHandler {
	return &CartHandler{
		cartService: cartService,
	}
}

// sessionID reads the visitor session set by the session middleware.
func sessionID(c *gin.Context) (string, bool) {
	id, ok := utils.GetSessionIDFromContext(c)
	if !ok {
		utils.BadRequestResponse(c, "", "missing session")
	}
	return id, ok
}

// respondSummary writes the priced cart, optionally with a confirmation message.
func (h *CartHandler) respondSummary(c *gin.Context, sid, messageKey string) {
	summary, err := h.cartService.Summary(c.Request.Context(), sid)
	if err != nil {
		utils.InternalErrorResponse(c, "")
		return
	}

	data := gin.H{"cart": summary}
	if messageKey != "" {
		data["message"] = i18n.T(utils.GetLangFromContext(c), messageKey)
	}
	utils.SuccessResponse(c, data)
}

func (h *CartHandler) commandError(c *gin.Context, err error) {
	lang := utils.GetLangFromContext(c)
	switch {
	case errors.Is(err, services.ErrUnknownProduct):
		utils.ErrorResponse(c, http.StatusNotFound, "UNKNOWN_PRODUCT", i18n.T(lang, i18n.KeyCartUnknownItem), nil)
	case errors.Is(err, services.ErrInvalidQuantity):
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyCartInvalidAmount), nil)
	default:
		utils.InternalErrorResponse(c, "")
	}
}

// GET /cart
func (h *CartHandler) GetCart(c *gin.Context) {
	sid, ok := sessionID(c)
	if !ok {
		return
	}
	h.respondSummary(c, sid, "")
}

// POST /cart/items
func (h *CartHandler) AddItem(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	sid, ok := sessionID(c)
	if !ok {
		return
	}

	var req services.AddToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	// Validate request
	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	quantity := req.Quantity
	if quantity == 0 {
		quantity = 1
	}

	if _, err := h.cartService.AddItem(c.Request.Context(), sid, req.ProductID, quantity); err != nil {
		h.commandError(c, err)
		return
	}

	h.respondSummary(c, sid, i18n.KeyCartItemAdded)
}

// PUT /cart/items/:id
func (h *CartHandler) SetQuantity(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	sid, ok := sessionID(c)
	if !ok {
		return
	}

	var req services.SetQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	if _, err := h.cartService.SetQuantity(c.Request.Context(), sid, c.Param("id"), req.Quantity); err != nil {
		h.commandError(c, err)
		return
	}

	h.respondSummary(c, sid, i18n.KeyCartItemUpdated)
}

// DELETE /cart/items/:id
func (h *CartHandler) RemoveItem(c *gin.Context) {
	sid, ok := sessionID(c)
	if !ok {
		return
	}

	if _, err := h.cartService.RemoveItem(c.Request.Context(), sid, c.Param("id")); err != nil {
		h.commandError(c, err)
		return
	}

	h.respondSummary(c, sid, i18n.KeyCartItemRemoved)
}

// DELETE /cart
func (h *CartHandler) Clear(c *gin.Context) {
	sid, ok := sessionID(c)
	if !ok {
		return
	}

	if err := h.cartService.Clear(c.Request.Context(), sid); err != nil {
		h.commandError(c, err)
		return
	}

	h.respondSummary(c, sid, i18n.KeyCartCleared)
}
