package response

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Failure pairs an HTTP status with the error body sent for it. The
// predefined values are copied on modification, so handlers may tailor them
// freely.
type Failure struct {
	Status int
	Body   ErrorDetail
}

func newFailure(status int, code, message string) Failure {
	return Failure{Status: status, Body: ErrorDetail{Code: code, Message: message}}
}

var (
	InvalidBody = newFailure(http.StatusBadRequest, CodeInvalidRequest, MsgInvalidRequestBody)
	Validation  = newFailure(http.StatusBadRequest, CodeValidationError, MsgValidationFailed)
	Unavailable = newFailure(http.StatusServiceUnavailable, CodeServiceUnavailable, MsgServiceUnavailable)
	Timeout     = newFailure(http.StatusGatewayTimeout, CodeTimeout, MsgTimeout)
	Cancelled   = newFailure(http.StatusGatewayTimeout, CodeTimeout, MsgRequestCancelled)
	Internal    = newFailure(http.StatusInternalServerError, CodeInternalError, MsgInternalError)
)

// BadRequest is an invalid_request failure carrying message.
func BadRequest(message string) Failure {
	return InvalidBody.WithMessage(message)
}

// WithMessage replaces the human-readable message.
func (f Failure) WithMessage(message string) Failure {
	f.Body.Message = message
	return f
}

// WithDetails attaches per-field messages.
func (f Failure) WithDetails(details map[string]string) Failure {
	f.Body.Details = details
	return f
}

// Send writes the failure as JSON.
func (f Failure) Send(c echo.Context) error {
	return c.JSON(f.Status, &f.Body)
}
