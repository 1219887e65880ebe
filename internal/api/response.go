package api

import (
	"errors"
	"net/http"

	"stablefi/pkg/stablefi"
)

// ErrorResponse is the body written for failed requests.
type ErrorResponse struct {
	Code      int    `json:"code"`
	Message   string `json:"message"`
	ErrorCode string `json:"error_code,omitempty"`
}

// writeErrorResponse writes an error response, mapping structured business
// errors to the matching HTTP status.
func writeErrorResponse(w http.ResponseWriter, httpStatus int, err error) {
	response := ErrorResponse{
		Code:    httpStatus,
		Message: err.Error(),
	}

	var bizErr *stablefi.Error
	if errors.As(err, &bizErr) {
		response.ErrorCode = string(bizErr.Code)
		httpStatus = mapErrorCodeToHTTPStatus(bizErr.Code)
		response.Code = httpStatus
	}

	setErrorMessage(w, response.Message)
	writeJSON(w, httpStatus, response)
}

func mapErrorCodeToHTTPStatus(code stablefi.ErrorCode) int {
	switch code {
	case stablefi.ErrCodeInvalidInput, stablefi.ErrCodeValidation:
		return http.StatusBadRequest
	case stablefi.ErrCodeNotFound:
		return http.StatusNotFound
	case stablefi.ErrCodeDuplicate:
		return http.StatusConflict
	case stablefi.ErrCodeDatabase, stablefi.ErrCodeInternal:
		return http.StatusInternalServerError
	case stablefi.ErrCodeUnsupported:
		return http.StatusNotImplemented
	default:
		return http.StatusInternalServerError
	}
}
