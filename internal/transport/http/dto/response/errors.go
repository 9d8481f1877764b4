package response

const (
	CodeInvalidRequest = "invalid_request"
	CodeValidation     = "validation_error"
	CodeNotFound       = "not_found"
	CodeConfiguration  = "configuration_error"
	CodeUnavailable    = "backend_unavailable"
	CodeSchemaDrift    = "schema_drift"
	CodeInternal       = "internal_error"
	CodeUnauthorized   = "unauthorized"
)

var (
	ErrInvalidRequestFormat = ErrorResponse{
		Error:   CodeInvalidRequest,
		Message: "Invalid request format",
	}

	ErrInternal = ErrorResponse{
		Error:   CodeInternal,
		Message: "Internal server error",
	}

	ErrUnauthorized = ErrorResponse{
		Error:   CodeUnauthorized,
		Message: "Admin token required",
	}
)
