package response

import "net/http"

// HTTPError is a protocol error: it carries the status code and message of
// the error response it converts to.
type HTTPError struct {
	Status  int
	Message string
	cause   error
}

// ErrorBody is the wire shape of an error response.
type ErrorBody struct {
	StatusCode int    `json:"statusCode"`
	Error      string `json:"error"`
	Message    string `json:"message"`
}

// NewHTTPError creates a protocol error. An empty message defaults to the
// status text; an unknown status becomes 500.
func NewHTTPError(status int, message string) HTTPError {
	if http.StatusText(status) == "" {
		status = http.StatusInternalServerError
	}
	if message == "" {
		message = http.StatusText(status)
	}
	return HTTPError{Status: status, Message: message}
}

// Error implements the error interface.
func (e HTTPError) Error() string {
	return e.Message
}

// StatusCode returns the HTTP status code for the error.
func (e HTTPError) StatusCode() int {
	return e.Status
}

// Reason returns the standard reason phrase of the status.
func (e HTTPError) Reason() string {
	return http.StatusText(e.Status)
}

// Unwrap returns the error attached with WithError.
func (e HTTPError) Unwrap() error {
	return e.cause
}

// WithMessage returns a copy of the error with a custom message.
func (e HTTPError) WithMessage(message string) HTTPError {
	e.Message = message
	return e
}

// WithError returns a copy of the error wrapping err. The cause is kept for
// logging and never rendered.
func (e HTTPError) WithError(err error) HTTPError {
	e.cause = err
	return e
}

// Body returns the wire representation of the error.
func (e HTTPError) Body() ErrorBody {
	return ErrorBody{
		StatusCode: e.Status,
		Error:      e.Reason(),
		Message:    e.Message,
	}
}

// Predefined protocol errors with the standard status text as message.
var (
	// 4xx Client Errors
	ErrBadRequest                   = NewHTTPError(http.StatusBadRequest, "")
	ErrUnauthorized                 = NewHTTPError(http.StatusUnauthorized, "")
	ErrForbidden                    = NewHTTPError(http.StatusForbidden, "")
	ErrNotFound                     = NewHTTPError(http.StatusNotFound, "")
	ErrMethodNotAllowed             = NewHTTPError(http.StatusMethodNotAllowed, "")
	ErrNotAcceptable                = NewHTTPError(http.StatusNotAcceptable, "")
	ErrConflict                     = NewHTTPError(http.StatusConflict, "")
	ErrPreconditionFailed           = NewHTTPError(http.StatusPreconditionFailed, "")
	ErrRequestEntityTooLarge        = NewHTTPError(http.StatusRequestEntityTooLarge, "")
	ErrUnsupportedMediaType         = NewHTTPError(http.StatusUnsupportedMediaType, "")
	ErrRequestedRangeNotSatisfiable = NewHTTPError(http.StatusRequestedRangeNotSatisfiable, "")
	ErrUnprocessableEntity          = NewHTTPError(http.StatusUnprocessableEntity, "")
	ErrTooManyRequests              = NewHTTPError(http.StatusTooManyRequests, "")

	// 5xx Server Errors
	ErrInternalServerError = NewHTTPError(http.StatusInternalServerError, "")
	ErrNotImplemented      = NewHTTPError(http.StatusNotImplemented, "")
	ErrServiceUnavailable  = NewHTTPError(http.StatusServiceUnavailable, "")
)
