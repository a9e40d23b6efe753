package errors

import (
	"net/http"
	"strings"
)

// ErrorCode is a string representation of a specific error condition.
type ErrorCode string

func (c ErrorCode) String() string {
	return string(c)
}

// Common error codes shared by every module.
const (
	ErrCodeInternal           ErrorCode = "COMMON_001"
	ErrCodeBadRequest         ErrorCode = "COMMON_002"
	ErrCodeNotFound           ErrorCode = "COMMON_003"
	ErrCodeConflict           ErrorCode = "COMMON_004"
	ErrCodeTooManyRequests    ErrorCode = "COMMON_005"
	ErrCodeServiceUnavailable ErrorCode = "COMMON_006"
	ErrCodeTimeout            ErrorCode = "COMMON_007"
	ErrCodeValidation         ErrorCode = "COMMON_008"
	ErrCodeSerialization      ErrorCode = "COMMON_009"
	ErrCodeDatabaseError      ErrorCode = "COMMON_010"
	ErrCodeCacheError         ErrorCode = "COMMON_011"
	ErrCodeExternalService    ErrorCode = "COMMON_012"
	ErrCodeNotImplemented     ErrorCode = "COMMON_013"
	ErrCodeUnknown            ErrorCode = "COMMON_099"

	CodeOK ErrorCode = "OK"
)

// Entity matching error codes.
const (
	ErrCodeEntityInvalid    ErrorCode = "ENT_001"
	ErrCodeEntityNotMatched ErrorCode = "ENT_002"
	ErrCodeFullTextFailed   ErrorCode = "ENT_003"
)

// Relationship graph / network risk error codes.
const (
	ErrCodeGraphUnavailable  ErrorCode = "NET_001"
	ErrCodeTraversalFailed   ErrorCode = "NET_002"
	ErrCodeGraphIndexMissing ErrorCode = "NET_003"
)

// Sanctions screening error codes.
const (
	ErrCodeSanctionsSetUnavailable ErrorCode = "SANC_001"
	ErrCodeSanctionsSetMalformed   ErrorCode = "SANC_002"
	ErrCodeEmbeddingFailed         ErrorCode = "SANC_003"
	ErrCodeVectorSearchFailed      ErrorCode = "SANC_004"
)

// Open-knowledge / reputation error codes.
const (
	ErrCodeSourceUnavailable ErrorCode = "REP_001"
	ErrCodeSourceTimeout     ErrorCode = "REP_002"
	ErrCodeSourceParseError  ErrorCode = "REP_003"
	ErrCodeSourceRateLimited ErrorCode = "REP_004"
)

// Transaction aggregation / persistence error codes.
const (
	ErrCodeTransactionEmpty   ErrorCode = "TXN_001"
	ErrCodeAssessmentNotFound ErrorCode = "TXN_002"
	ErrCodeEventPublishFailed ErrorCode = "TXN_003"
)

// ErrorCodeHTTPStatus maps ErrorCodes to HTTP status codes.
var ErrorCodeHTTPStatus = map[ErrorCode]int{
	ErrCodeInternal:           http.StatusInternalServerError,
	ErrCodeBadRequest:         http.StatusBadRequest,
	ErrCodeNotFound:           http.StatusNotFound,
	ErrCodeConflict:           http.StatusConflict,
	ErrCodeTooManyRequests:    http.StatusTooManyRequests,
	ErrCodeServiceUnavailable: http.StatusServiceUnavailable,
	ErrCodeTimeout:            http.StatusGatewayTimeout,
	ErrCodeValidation:         http.StatusUnprocessableEntity,
	ErrCodeSerialization:      http.StatusInternalServerError,
	ErrCodeDatabaseError:      http.StatusInternalServerError,
	ErrCodeCacheError:         http.StatusInternalServerError,
	ErrCodeExternalService:    http.StatusInternalServerError,
	ErrCodeNotImplemented:     http.StatusNotImplemented,
	ErrCodeUnknown:            http.StatusInternalServerError,

	ErrCodeEntityInvalid:    http.StatusUnprocessableEntity,
	ErrCodeEntityNotMatched: http.StatusNotFound,
	ErrCodeFullTextFailed:   http.StatusInternalServerError,

	ErrCodeGraphUnavailable:  http.StatusServiceUnavailable,
	ErrCodeTraversalFailed:   http.StatusInternalServerError,
	ErrCodeGraphIndexMissing: http.StatusInternalServerError,

	ErrCodeSanctionsSetUnavailable: http.StatusServiceUnavailable,
	ErrCodeSanctionsSetMalformed:   http.StatusInternalServerError,
	ErrCodeEmbeddingFailed:         http.StatusInternalServerError,
	ErrCodeVectorSearchFailed:      http.StatusInternalServerError,

	ErrCodeSourceUnavailable: http.StatusServiceUnavailable,
	ErrCodeSourceTimeout:     http.StatusGatewayTimeout,
	ErrCodeSourceParseError:  http.StatusBadGateway,
	ErrCodeSourceRateLimited: http.StatusTooManyRequests,

	ErrCodeTransactionEmpty:   http.StatusBadRequest,
	ErrCodeAssessmentNotFound: http.StatusNotFound,
	ErrCodeEventPublishFailed: http.StatusInternalServerError,
}

// ErrorCodeMessage maps ErrorCodes to default messages.
var ErrorCodeMessage = map[ErrorCode]string{
	ErrCodeInternal:           "internal server error",
	ErrCodeBadRequest:         "bad request",
	ErrCodeNotFound:           "resource not found",
	ErrCodeConflict:           "resource conflict",
	ErrCodeTooManyRequests:    "too many requests",
	ErrCodeServiceUnavailable: "service unavailable",
	ErrCodeTimeout:            "request timeout",
	ErrCodeValidation:         "validation failed",
	ErrCodeSerialization:      "serialization failed",
	ErrCodeDatabaseError:      "database error",
	ErrCodeCacheError:         "cache error",
	ErrCodeExternalService:    "external service error",
	ErrCodeNotImplemented:     "not implemented",
	ErrCodeUnknown:            "unknown error",

	ErrCodeEntityInvalid:    "extracted entity is missing required fields",
	ErrCodeEntityNotMatched: "no graph node matched the entity",
	ErrCodeFullTextFailed:   "full-text name search failed",

	ErrCodeGraphUnavailable:  "relationship store unavailable",
	ErrCodeTraversalFailed:   "relationship traversal failed",
	ErrCodeGraphIndexMissing: "full-text index is missing",

	ErrCodeSanctionsSetUnavailable: "sanctions reference set unavailable",
	ErrCodeSanctionsSetMalformed:   "sanctions reference set is malformed",
	ErrCodeEmbeddingFailed:         "embedding service call failed",
	ErrCodeVectorSearchFailed:      "vector similarity search failed",

	ErrCodeSourceUnavailable: "knowledge source unavailable",
	ErrCodeSourceTimeout:     "knowledge source timed out",
	ErrCodeSourceParseError:  "failed to parse knowledge source response",
	ErrCodeSourceRateLimited: "knowledge source rate limited",

	ErrCodeTransactionEmpty:   "transaction contains no valid entities",
	ErrCodeAssessmentNotFound: "assessment not found",
	ErrCodeEventPublishFailed: "failed to publish assessment event",
}

// HTTPStatusForCode returns the HTTP status code for an ErrorCode.
func HTTPStatusForCode(code ErrorCode) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// DefaultMessageForCode returns the default message for an ErrorCode.
func DefaultMessageForCode(code ErrorCode) string {
	if msg, ok := ErrorCodeMessage[code]; ok {
		return msg
	}
	return "unknown error"
}

// IsClientError returns true if the ErrorCode corresponds to a 4xx HTTP status.
func IsClientError(code ErrorCode) bool {
	status := HTTPStatusForCode(code)
	return status >= 400 && status < 500
}

// IsServerError returns true if the ErrorCode corresponds to a 5xx HTTP status.
func IsServerError(code ErrorCode) bool {
	status := HTTPStatusForCode(code)
	return status >= 500 && status < 600
}

// ModuleForCode returns the module prefix of an ErrorCode.
func ModuleForCode(code ErrorCode) string {
	parts := strings.Split(string(code), "_")
	if len(parts) > 0 && parts[0] != "" {
		return parts[0]
	}
	return "UNKNOWN"
}
