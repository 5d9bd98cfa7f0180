// internal/i18n/keys.go
package i18n

// Translation keys constants
const (
	// Common
	KeySuccess       = "success"
	KeyError         = "error"
	KeyInternalError = "error.internal"

	// Authentication
	KeyAuthRequired           = "auth.required"
	KeyAuthInvalidToken       = "auth.invalid_token"
	KeyAuthInvalidCredentials = "auth.invalid_credentials"
	KeyAuthLoginSuccess       = "auth.login_success"

	// Catalog
	KeyCategoryNotFound = "category.not_found"
	KeyProductNotFound  = "product.not_found"
	KeyBrandNotFound    = "brand.not_found"
	KeyPageNotFound     = "page.not_found"
	KeyCatalogReloaded  = "catalog.reloaded"
	KeyFiltersInvalid   = "filters.invalid"

	// Cart
	KeyCartItemAdded     = "cart.item_added"
	KeyCartItemRemoved   = "cart.item_removed"
	KeyCartItemUpdated   = "cart.item_updated"
	KeyCartCleared       = "cart.cleared"
	KeyCartEmpty         = "cart.empty"
	KeyCartUnknownItem   = "cart.unknown_product"
	KeyCartInvalidAmount = "cart.invalid_quantity"

	// Favorites
	KeyFavoriteAdded   = "favorites.added"
	KeyFavoriteRemoved = "favorites.removed"
	KeyFavoritesClear  = "favorites.cleared"

	// Payments
	KeyPaymentDisabled = "payment.disabled"
	KeyPaymentFailed   = "payment.failed"

	// Admin
	KeyAdminAccessDenied = "admin.access_denied"

	// Validation
	KeyValidationInvalid = "validation.invalid"

	// Rate limiting
	KeyRateLimitExceeded = "rate_limit.exceeded"
)
