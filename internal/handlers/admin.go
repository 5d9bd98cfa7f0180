// internal/handlers/admin.go
package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/javajoker/storefront-backend/internal/i18n"
	"github.com/javajoker/storefront-backend/internal/services"
	"github.com/javajoker/storefront-backend/internal/utils"
)

type AdminHandler struct {
	authService    *services.AuthService
	catalogService *services.CatalogService
}

func NewAdminHandler(authService *services.AuthService, catalogService *services.CatalogService) *AdminHandler {
	return &AdminHandler{
		authService:    authService,
		catalogService: catalogService,
	}
}

// POST /admin/login
func (h *AdminHandler) Login(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	var req services.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	// Validate request
	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	authResponse, err := h.authService.Login(&req)
	if err != nil {
		if !errors.Is(err, services.ErrInvalidCredentials) {
			logrus.WithError(err).Error("Admin login failed")
		}
		utils.UnauthorizedResponse(c, i18n.T(lang, i18n.KeyAuthInvalidCredentials))
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message":    i18n.T(lang, i18n.KeyAuthLoginSuccess),
		"token":      authResponse.AccessToken,
		"token_type": authResponse.TokenType,
		"expires_in": authResponse.ExpiresIn,
	})
}

// POST /admin/catalog/reload
func (h *AdminHandler) ReloadCatalog(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	username, _ := utils.GetUsernameFromContext(c)

	snapshot := h.catalogService.Reload(c.Request.Context())
	logrus.WithFields(logrus.Fields{
		"admin":    username,
		"products": len(snapshot.Products),
	}).Info("Catalog reloaded on request")

	utils.SuccessResponse(c, gin.H{
		"message":     i18n.T(lang, i18n.KeyCatalogReloaded),
		"products":    len(snapshot.Products),
		"categories":  len(snapshot.Categories),
		"fingerprint": snapshot.Fingerprint,
		"loaded_at":   snapshot.LoadedAt,
	})
}
