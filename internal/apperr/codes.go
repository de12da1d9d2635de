package apperr

// Error code constants returned in API responses.
// Format: CATEGORY_SPECIFIC_DETAIL. The frontend maps these codes to
// display messages.

const (
	// ==================== Location (LOCATION_) ====================
	LocationPermissionDenied    = "LOCATION_PERMISSION_DENIED"    // user denied geolocation
	LocationPositionUnavailable = "LOCATION_POSITION_UNAVAILABLE" // device cannot determine position
	LocationTimeout             = "LOCATION_TIMEOUT"              // position request timed out
	LocationUnsupported         = "LOCATION_UNSUPPORTED"          // no geolocation capability

	// ==================== Provider fetch (FETCH_) ====================
	FetchNetworkFailure    = "FETCH_NETWORK_FAILURE"    // could not reach the provider
	FetchNonSuccessStatus  = "FETCH_NON_SUCCESS_STATUS" // provider returned non-2xx
	FetchMissingCredential = "FETCH_MISSING_CREDENTIAL" // no provider API key configured

	// ==================== Validation (VALIDATION_) ====================
	ValidationInvalidInput        = "VALIDATION_INVALID_INPUT"        // malformed request body
	ValidationMissingField        = "VALIDATION_MISSING_FIELD"        // required field absent
	ValidationMalformedCoordinate = "VALIDATION_MALFORMED_COORDINATE" // lat/lng out of range or unparsable
	ValidationInvalidRating       = "VALIDATION_INVALID_RATING"       // rating outside 1-5

	// ==================== Auth (AUTH_) ====================
	AuthUnauthorized = "AUTH_UNAUTHORIZED" // missing or unverifiable token
	AuthTokenInvalid = "AUTH_TOKEN_INVALID"
	AuthOwnerOnly    = "AUTH_OWNER_ONLY" // only the record owner may do this

	// ==================== Resources (RESOURCE_) ====================
	BusinessNotFound = "BUSINESS_NOT_FOUND"
	ReviewNotFound   = "REVIEW_NOT_FOUND"
	ListingNotFound  = "LISTING_NOT_FOUND"

	// ==================== Upload (UPLOAD_) ====================
	UploadInvalidFileType = "UPLOAD_INVALID_FILE_TYPE"
	UploadFileTooLarge    = "UPLOAD_FILE_TOO_LARGE"
	UploadFailed          = "UPLOAD_FAILED"

	// ==================== Generic ====================
	InternalServerError = "INTERNAL_SERVER_ERROR"
)
