// internal/handlers/checkout.go
package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/javajoker/storefront-backend/internal/i18n"
	"github.com/javajoker/storefront-backend/internal/services"
	"github.com/javajoker/storefront-backend/internal/utils"
)

type CheckoutHandler struct {
	checkoutService *services.CheckoutService
}

func NewCheckoutHandler(checkoutService *services.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{
		checkoutService: checkoutService,
	}
}

// POST /cart/checkout
func (h *CheckoutHandler) CreatePaymentIntent(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	sid, ok := sessionID(c)
	if !ok {
		return
	}

	intent, err := h.checkoutService.CreatePaymentIntent(c.Request.Context(), sid)
	switch {
	case err == nil:
		utils.CreatedResponse(c, intent)
	case errors.Is(err, services.ErrPaymentsDisabled):
		utils.ServiceUnavailableResponse(c, i18n.T(lang, i18n.KeyPaymentDisabled))
	case errors.Is(err, services.ErrEmptyCart):
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyCartEmpty), nil)
	default:
		logrus.WithError(err).WithField("session", sid).Error("Failed to create payment intent")
		utils.InternalErrorResponse(c, i18n.T(lang, i18n.KeyPaymentFailed))
	}
}
