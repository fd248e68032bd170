package errors

import "net/http"

// ErrorCode is a string identifier for a specific failure category.
type ErrorCode string

func (c ErrorCode) String() string {
	return string(c)
}

// Common error codes
const (
	ErrCodeInternal           ErrorCode = "COMMON_001"
	ErrCodeBadRequest         ErrorCode = "COMMON_002"
	ErrCodeNotFound           ErrorCode = "COMMON_003"
	ErrCodeConflict           ErrorCode = "COMMON_004"
	ErrCodeServiceUnavailable ErrorCode = "COMMON_005"
	ErrCodeTimeout            ErrorCode = "COMMON_006"
	ErrCodeValidation         ErrorCode = "COMMON_007"
	ErrCodeSerialization      ErrorCode = "COMMON_008"
	ErrCodeDatabaseError      ErrorCode = "COMMON_009"
	ErrCodeCacheError         ErrorCode = "COMMON_010"
	ErrCodeUnknown            ErrorCode = "COMMON_000"
	CodeOK                    ErrorCode = "OK"
)

// Listing module error codes
const (
	ErrCodeListingNotFound     ErrorCode = "LST_001"
	ErrCodeListingDecodeFailed ErrorCode = "LST_002"
	ErrCodeSourceUnavailable   ErrorCode = "LST_003"
	ErrCodeInvalidWeights      ErrorCode = "LST_004"
	ErrCodeInvalidFilter       ErrorCode = "LST_005"
)

// Pipeline module error codes
const (
	ErrCodePipelineEmptyInput ErrorCode = "PIP_001"
	ErrCodePipelineFailed     ErrorCode = "PIP_002"
)

// httpStatusByCode maps error codes to HTTP status codes for the interface
// layer. Codes not listed map to 500.
var httpStatusByCode = map[ErrorCode]int{
	ErrCodeBadRequest:         http.StatusBadRequest,
	ErrCodeValidation:         http.StatusBadRequest,
	ErrCodeInvalidFilter:      http.StatusBadRequest,
	ErrCodeInvalidWeights:     http.StatusBadRequest,
	ErrCodeNotFound:           http.StatusNotFound,
	ErrCodeListingNotFound:    http.StatusNotFound,
	ErrCodeConflict:           http.StatusConflict,
	ErrCodeServiceUnavailable: http.StatusServiceUnavailable,
	ErrCodeSourceUnavailable:  http.StatusServiceUnavailable,
	ErrCodeTimeout:            http.StatusGatewayTimeout,
	ErrCodePipelineEmptyInput: http.StatusUnprocessableEntity,
}

// HTTPStatus returns the HTTP status code associated with c.
func (c ErrorCode) HTTPStatus() int {
	if s, ok := httpStatusByCode[c]; ok {
		return s
	}
	return http.StatusInternalServerError
}
