package errors

const (
	HttpInternalError        = "internal_error"
	HttpInvalidJsonError     = "invalid_json"
	HttpRequestTooLargeError = "request_too_large"
	HttpDatasetNotFoundError = "dataset_not_found"
	HttpDatasetExistsError   = "dataset_exists"
	HttpDatasetInvalidError  = "dataset_invalid"
	HttpDatasetReadOnlyError = "dataset_read_only"
	HttpInvalidQueryError    = "invalid_query"
	HttpResolutionError      = "property_resolution_failed"
)

// ErrorResponse is the error response body for every API endpoint.
type ErrorResponse struct {
	ErrorType string      `json:"error_type"`
	Message   string      `json:"message"`
	Details   interface{} `json:"details,omitempty"`
}
