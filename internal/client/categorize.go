package client

import (
	"context"
	"errors"
)

// ErrorCategory is a stable label for error classification in metrics and logs.
type ErrorCategory string

const (
	ErrorCategoryTimeout       ErrorCategory = "timeout"
	ErrorCategoryTransport     ErrorCategory = "transport"
	ErrorCategoryDecode        ErrorCategory = "decode"
	ErrorCategoryInvalidAPIKey ErrorCategory = "invalid_api_key"
	ErrorCategoryUpstream      ErrorCategory = "upstream"
	ErrorCategoryUnknown       ErrorCategory = "unknown"
)

// CategorizeError maps an error returned by a WeatherSource to an ErrorCategory.
func CategorizeError(err error) ErrorCategory {
	if err == nil {
		return ""
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return ErrorCategoryTimeout
	}
	if errors.Is(err, ErrTransport) {
		return ErrorCategoryTransport
	}
	if errors.Is(err, ErrDecode) {
		return ErrorCategoryDecode
	}
	if errors.Is(err, ErrInvalidAPIKey) {
		return ErrorCategoryInvalidAPIKey
	}
	if errors.Is(err, ErrUpstreamFailure) {
		return ErrorCategoryUpstream
	}

	return ErrorCategoryUnknown
}
