package errors

import (
	"net/http"
	"strings"
)

// ErrorCode is a string identifier for a specific error condition.
type ErrorCode string

func (c ErrorCode) String() string {
	return string(c)
}

// Common error codes shared by every module.
const (
	ErrCodeInternal           ErrorCode = "COMMON_001"
	ErrCodeBadRequest         ErrorCode = "COMMON_002"
	ErrCodeNotFound           ErrorCode = "COMMON_003"
	ErrCodeTimeout            ErrorCode = "COMMON_004"
	ErrCodeValidation         ErrorCode = "COMMON_005"
	ErrCodeSerialization      ErrorCode = "COMMON_006"
	ErrCodeDatabaseError      ErrorCode = "COMMON_007"
	ErrCodeCacheError         ErrorCode = "COMMON_008"
	ErrCodeServiceUnavailable ErrorCode = "COMMON_009"
	ErrCodeNotImplemented     ErrorCode = "COMMON_010"
)

// Zone module error codes.
const (
	ErrCodeZoneNotFound      ErrorCode = "ZON_001"
	ErrCodeZoneNameEmpty     ErrorCode = "ZON_002"
	ErrCodeZoneCodeInvalid   ErrorCode = "ZON_003"
	ErrCodeZoneAmbiguousName ErrorCode = "ZON_004"
)

// Overlay module error codes.
const (
	ErrCodeOverlayUnclassified ErrorCode = "OVL_001"
	ErrCodeOverlayTypeUnknown  ErrorCode = "OVL_002"
)

// Document module error codes.
const (
	ErrCodeDocumentUnreachable ErrorCode = "DOC_001"
	ErrCodeDocumentParseFailed ErrorCode = "DOC_002"
	ErrCodeDocumentURLInvalid  ErrorCode = "DOC_003"
)

// Rule extraction error codes.
const (
	ErrCodeRuleExtractionFailed ErrorCode = "RUL_001"
	ErrCodeRuleTextEmpty        ErrorCode = "RUL_002"
)

// Geodata provider error codes.
const (
	ErrCodeGISUnavailable    ErrorCode = "GIS_001"
	ErrCodeGISParseError     ErrorCode = "GIS_002"
	ErrCodeGISDatasetUnknown ErrorCode = "GIS_003"
)

// Advisor / assessment error codes.
const (
	ErrCodeAssessmentFailed   ErrorCode = "ADV_001"
	ErrCodeAssessmentNotFound ErrorCode = "ADV_002"
	ErrCodeHistoryWriteFailed ErrorCode = "ADV_003"
)

// ErrorCodeHTTPStatus maps ErrorCodes to HTTP status codes.
var ErrorCodeHTTPStatus = map[ErrorCode]int{
	ErrCodeInternal:           http.StatusInternalServerError,
	ErrCodeBadRequest:         http.StatusBadRequest,
	ErrCodeNotFound:           http.StatusNotFound,
	ErrCodeTimeout:            http.StatusGatewayTimeout,
	ErrCodeValidation:         http.StatusUnprocessableEntity,
	ErrCodeSerialization:      http.StatusInternalServerError,
	ErrCodeDatabaseError:      http.StatusInternalServerError,
	ErrCodeCacheError:         http.StatusInternalServerError,
	ErrCodeServiceUnavailable: http.StatusServiceUnavailable,
	ErrCodeNotImplemented:     http.StatusNotImplemented,

	ErrCodeZoneNotFound:      http.StatusNotFound,
	ErrCodeZoneNameEmpty:     http.StatusBadRequest,
	ErrCodeZoneCodeInvalid:   http.StatusBadRequest,
	ErrCodeZoneAmbiguousName: http.StatusConflict,

	ErrCodeOverlayUnclassified: http.StatusUnprocessableEntity,
	ErrCodeOverlayTypeUnknown:  http.StatusNotFound,

	ErrCodeDocumentUnreachable: http.StatusBadGateway,
	ErrCodeDocumentParseFailed: http.StatusBadGateway,
	ErrCodeDocumentURLInvalid:  http.StatusBadRequest,

	ErrCodeRuleExtractionFailed: http.StatusInternalServerError,
	ErrCodeRuleTextEmpty:        http.StatusBadRequest,

	ErrCodeGISUnavailable:    http.StatusServiceUnavailable,
	ErrCodeGISParseError:     http.StatusBadGateway,
	ErrCodeGISDatasetUnknown: http.StatusBadRequest,

	ErrCodeAssessmentFailed:   http.StatusInternalServerError,
	ErrCodeAssessmentNotFound: http.StatusNotFound,
	ErrCodeHistoryWriteFailed: http.StatusInternalServerError,
}

// ErrorCodeMessage maps ErrorCodes to default messages.
var ErrorCodeMessage = map[ErrorCode]string{
	ErrCodeInternal:           "internal server error",
	ErrCodeBadRequest:         "bad request",
	ErrCodeNotFound:           "resource not found",
	ErrCodeTimeout:            "request timeout",
	ErrCodeValidation:         "validation failed",
	ErrCodeSerialization:      "serialization failed",
	ErrCodeDatabaseError:      "database error",
	ErrCodeCacheError:         "cache error",
	ErrCodeServiceUnavailable: "service unavailable",
	ErrCodeNotImplemented:     "not implemented",

	ErrCodeZoneNotFound:      "zone not found",
	ErrCodeZoneNameEmpty:     "zone name is empty",
	ErrCodeZoneCodeInvalid:   "invalid zone code",
	ErrCodeZoneAmbiguousName: "zone name matched more than one candidate",

	ErrCodeOverlayUnclassified: "overlay record could not be classified",
	ErrCodeOverlayTypeUnknown:  "unknown overlay type",

	ErrCodeDocumentUnreachable: "planning document unreachable",
	ErrCodeDocumentParseFailed: "failed to read planning document",
	ErrCodeDocumentURLInvalid:  "invalid document URL",

	ErrCodeRuleExtractionFailed: "rule extraction failed",
	ErrCodeRuleTextEmpty:        "document text is empty",

	ErrCodeGISUnavailable:    "geodata provider unavailable",
	ErrCodeGISParseError:     "failed to parse geodata response",
	ErrCodeGISDatasetUnknown: "unknown geodata dataset",

	ErrCodeAssessmentFailed:   "property assessment failed",
	ErrCodeAssessmentNotFound: "assessment not found",
	ErrCodeHistoryWriteFailed: "failed to record assessment history",
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

// IsClientError reports whether the ErrorCode corresponds to a 4xx HTTP status.
func IsClientError(code ErrorCode) bool {
	status := HTTPStatusForCode(code)
	return status >= 400 && status < 500
}

// IsServerError reports whether the ErrorCode corresponds to a 5xx HTTP status.
func IsServerError(code ErrorCode) bool {
	status := HTTPStatusForCode(code)
	return status >= 500 && status < 600
}

// ModuleForCode returns the module prefix of an ErrorCode, e.g. "ZON" for ZON_001.
func ModuleForCode(code ErrorCode) string {
	parts := strings.Split(string(code), "_")
	if len(parts) > 0 && parts[0] != "" {
		return parts[0]
	}
	return "UNKNOWN"
}
