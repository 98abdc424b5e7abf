// Package i18n translates user-facing messages of the ecommerce backend.
package i18n

// Error message translation keys.
const (
	ErrKeyInvalidRequest     = "error.invalid_request"
	ErrKeyInvalidRequestBody = "error.invalid_request_body"
	ErrKeyInternalError      = "error.internal_error"
	// ErrKeyLoginRequired is returned by admin routes called without an id.
	ErrKeyLoginRequired = "error.login_required"
	// ErrKeyUnauthorized is returned when the caller id matches no user.
	ErrKeyUnauthorized       = "error.unauthorized"
	ErrKeyForbidden          = "error.forbidden"
	ErrKeyNotFound           = "error.not_found"
	ErrKeyRateLimitExceeded  = "error.rate_limit_exceeded"
	ErrKeyConflict           = "error.conflict"
	ErrKeyTimeout            = "error.timeout"
	ErrKeyServiceUnavailable = "error.service_unavailable"
	ErrKeyInvalidCoupon      = "error.invalid_coupon"
	ErrKeyPhotoRequired      = "error.photo_required"
	ErrKeyPaymentUnavailable = "error.payment_unavailable"
)

// Success message translation keys. Some carry a single %s placeholder.
const (
	SuccessKeyWelcome        = "success.welcome"
	SuccessKeyUserDeleted    = "success.user_deleted"
	SuccessKeyProductCreated = "success.product_created"
	SuccessKeyProductUpdated = "success.product_updated"
	SuccessKeyProductDeleted = "success.product_deleted"
	SuccessKeyOrderPlaced    = "success.order_placed"
	SuccessKeyOrderProcessed = "success.order_processed"
	SuccessKeyOrderDeleted   = "success.order_deleted"
	SuccessKeyCouponCreated  = "success.coupon_created"
	SuccessKeyCouponDeleted  = "success.coupon_deleted"
)
