package errors

// Error codes returned in the "error" field of every error response.
// Format: CATEGORY_SPECIFIC_DETAIL. Clients map messages from these codes.

const (
	// Validation
	ValidationRequired     = "VALIDATION_REQUIRED"      // required field missing
	ValidationInvalidInput = "VALIDATION_INVALID_INPUT" // malformed request body or parameter

	// Retailer
	RetailerNotFound = "RETAILER_NOT_FOUND" // no record with the given id

	// Internal
	InternalStorageError = "INTERNAL_STORAGE_ERROR" // record store read/write failed
	InternalServerError  = "INTERNAL_SERVER_ERROR"  // anything else
)
