package constants

// Error Code Categories
// Format: XYZAB where XYZ mirrors the HTTP status family and AB is the specific error

const (
	CodeSuccess = 0

	// 400 Bad Request (40xxx)
	CodeBadRequest       = 40000 // Generic bad request
	CodeInvalidJSON      = 40001 // Invalid JSON payload
	CodeInvalidParameter = 40004 // Invalid parameter value

	// 401 Unauthorized (41xxx)
	CodeUnauthorized = 41000 // Generic unauthorized
	CodeMissingAuth  = 41001 // Missing bearer token
	CodeInvalidToken = 41002 // Invalid or expired token

	// 403 Forbidden (43xxx)
	CodeForbidden = 43000

	// 404 Not Found (44xxx)
	CodeNotFound           = 44000 // Generic not found
	CodeResourceNotFound   = 44001 // Specific resource not found
	CodeInvalidCredentials = 44002 // Login failed, reported as not found

	// 405 Method Not Allowed (45xxx)
	CodeMethodNotAllowed = 45000

	// 409 Conflict (49xxx)
	CodeConflict          = 49000 // Generic conflict
	CodeDuplicateResource = 49001 // Duplicate resource

	// 422 Unprocessable Entity (42xxx)
	CodeUnprocessable    = 42000 // Generic unprocessable
	CodeValidationFailed = 42001 // Request schema validation failed

	// 429 Too Many Requests (42900)
	CodeRateLimit = 42900

	// 500 Internal Server Error (50xxx)
	CodeInternalError      = 50000 // Generic internal error
	CodeDatabaseError      = 50001 // Database error
	CodeRedisError         = 50003 // Redis error
	CodeJobProcessingError = 50004 // Job processing error

	// 503 Service Unavailable (53xxx)
	CodeServiceUnavailable  = 53000
	CodeDatabaseUnavailable = 53001
)

// ErrorMessages holds the default detail text per code
var ErrorMessages = map[int]string{
	CodeSuccess: "Success",

	CodeBadRequest:       "Bad Request",
	CodeInvalidJSON:      "Invalid JSON payload",
	CodeInvalidParameter: "Invalid parameter value",

	CodeUnauthorized: "Unauthorized",
	CodeMissingAuth:  "Not authenticated",
	CodeInvalidToken: "Could not validate credentials",

	CodeForbidden: "Forbidden",

	CodeNotFound:           "Not Found",
	CodeResourceNotFound:   "Resource not found",
	CodeInvalidCredentials: "Invalid credentials",

	CodeMethodNotAllowed: "Method Not Allowed",

	CodeConflict:          "Conflict",
	CodeDuplicateResource: "Duplicate resource",

	CodeUnprocessable:    "Unprocessable Entity",
	CodeValidationFailed: "Validation failed",

	CodeRateLimit: "Too Many Requests",

	CodeInternalError:      "Internal Server Error",
	CodeDatabaseError:      "Database error",
	CodeRedisError:         "Redis error",
	CodeJobProcessingError: "Job processing error",

	CodeServiceUnavailable:  "Service Unavailable",
	CodeDatabaseUnavailable: "Database unavailable",
}

// GetErrorMessage returns the standard message for an error code
func GetErrorMessage(code int) string {
	if msg, exists := ErrorMessages[code]; exists {
		return msg
	}
	return "Unknown error"
}

// GetHTTPStatusFromCode returns the appropriate HTTP status code based on error code
func GetHTTPStatusFromCode(code int) int {
	switch {
	case code == 0:
		return 200
	case code >= 40000 && code < 41000:
		return 400
	case code >= 41000 && code < 42000:
		return 401
	case code >= 42900 && code < 43000:
		return 429
	case code >= 42000 && code < 42900:
		return 422
	case code >= 43000 && code < 44000:
		return 403
	case code >= 44000 && code < 45000:
		return 404
	case code >= 45000 && code < 46000:
		return 405
	case code >= 49000 && code < 50000:
		return 409
	case code >= 53000 && code < 54000:
		return 503
	default:
		return 500
	}
}

// GetCodeFromHTTPStatus maps a framework status back onto the code table
func GetCodeFromHTTPStatus(status int) int {
	switch status {
	case 400:
		return CodeBadRequest
	case 401:
		return CodeUnauthorized
	case 403:
		return CodeForbidden
	case 404:
		return CodeNotFound
	case 405:
		return CodeMethodNotAllowed
	case 409:
		return CodeConflict
	case 422:
		return CodeUnprocessable
	case 429:
		return CodeRateLimit
	case 503:
		return CodeServiceUnavailable
	default:
		return CodeInternalError
	}
}
