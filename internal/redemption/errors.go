package redemption

import "errors"

var (
	// ErrInvalidRequest indicates missing or malformed request fields.
	ErrInvalidRequest = errors.New("merchant_id and code are required")

	// ErrInvalidMerchant indicates the merchant id is unknown.
	ErrInvalidMerchant = errors.New("invalid merchant")

	// ErrMerchantInactive indicates the merchant exists but may not redeem.
	ErrMerchantInactive = errors.New("merchant is not active")

	// ErrInvalidCode covers codes that were never issued as well as codes
	// already consumed: single-use enforcement deletes on redemption, so a
	// replay is indistinguishable from a code that never existed.
	ErrInvalidCode = errors.New("invalid code")

	// ErrCodeExpired indicates the code outlived its TTL. Detection removes
	// the code, so a later retry reports ErrInvalidCode.
	ErrCodeExpired = errors.New("code expired, generate a new one")

	// ErrInvalidAmount guards against an empty or zero-valued selection.
	ErrInvalidAmount = errors.New("total amount must be positive")
)
