package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/yanqian/ai-wardrobe/pkg/errors"
)

const (
	codeInvalidRequest = "invalid_request"
	codeInternal       = "internal_error"
	codeRateLimited    = "rate_limit_exceeded"
)

// statusByCode maps domain error codes to response statuses. Unknown codes are 500.
var statusByCode = map[string]int{
	apperrors.CodeInvalidInput:   http.StatusBadRequest,
	apperrors.CodeNotFound:       http.StatusNotFound,
	apperrors.CodeWeather:        http.StatusBadGateway,
	apperrors.CodeStorage:        http.StatusInternalServerError,
	apperrors.CodeClassification: http.StatusInternalServerError,
}

// HTTPError is the envelope written as {"error": {"code", "message"}}.
type HTTPError struct {
	Status  int
	Code    string
	Message string
	Err     error
}

func (e *HTTPError) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

func (e *HTTPError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// NewHTTPError builds an HTTPError.
func NewHTTPError(status int, code, message string, err error) *HTTPError {
	return &HTTPError{Status: status, Code: code, Message: message, Err: err}
}

func badRequest(message string, err error) *HTTPError {
	return NewHTTPError(http.StatusBadRequest, codeInvalidRequest, message, err)
}

// fromAppError translates a service error. Errors without a code hide their text.
func fromAppError(err error) *HTTPError {
	code := apperrors.CodeOf(err)
	if code == "" {
		return internalError(err)
	}
	status, ok := statusByCode[code]
	if !ok {
		status = http.StatusInternalServerError
	}
	return NewHTTPError(status, code, apperrors.MessageOf(err), err)
}

func internalError(err error) *HTTPError {
	return NewHTTPError(http.StatusInternalServerError, codeInternal, "something went wrong", err)
}

func asHTTPError(err error) *HTTPError {
	if err == nil {
		return nil
	}
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr
	}
	return fromAppError(err)
}

func abortWithError(c *gin.Context, err *HTTPError) {
	if err == nil {
		return
	}
	_ = c.Error(err)
	c.Abort()
}
