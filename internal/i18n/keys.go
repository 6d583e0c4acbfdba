// internal/i18n/keys.go
package i18n

// Translation keys constants
const (
	// Common
	KeySuccess            = "success"
	KeyError              = "error"
	KeyNotFound           = "common.not_found"
	KeyValidationInvalid  = "validation.invalid"
	KeyFileUploadSuccess  = "file.upload_success"
	KeyFileUploadFailed   = "file.upload_failed"
	KeyAdminAccessDenied  = "admin.access_denied"

	// Authentication
	KeyAuthRequired           = "auth.required"
	KeyAuthInvalidToken       = "auth.invalid_token"
	KeyAuthTokenExpired       = "auth.token_expired"
	KeyAuthInvalidCredentials = "auth.invalid_credentials"
	KeyAuthUserNotFound       = "auth.user_not_found"
	KeyAuthUserExists         = "auth.user_exists"
	KeyAuthLoginSuccess       = "auth.login_success"
	KeyAuthRegisterSuccess    = "auth.register_success"
	KeyAuthPasswordUpdated    = "auth.password_updated"

	// User
	KeyUserProfileUpdated = "user.profile_updated"
	KeyUserNotFound       = "user.not_found"

	// Catalog
	KeyBagCreated  = "bag.created"
	KeyBagUpdated  = "bag.updated"
	KeyBagDeleted  = "bag.deleted"
	KeyBagNotFound = "bag.not_found"

	// Cart
	KeyCartUpdated     = "cart.updated"
	KeyCartLineRemoved = "cart.line_removed"
	KeyCartNotFound    = "cart.not_found"

	// Checkout & orders
	KeyOrderPlaced        = "order.placed"
	KeyOrderNotFound      = "order.not_found"
	KeyOrderStatusUpdated = "order.status_updated"
	KeyOrderOutOfStock    = "order.out_of_stock"

	// Ratings
	KeyReviewSubmitted = "review.submitted"
)
