package errors

import (
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

var (
	// ErrUserNotFound is returned when a user lookup misses.
	ErrUserNotFound = errors.New("user not found")
	// ErrFoodNotFound is returned when a food listing lookup misses.
	ErrFoodNotFound = errors.New("food not found")
	// ErrDuplicateEmail is returned when registering an email that already exists.
	ErrDuplicateEmail = errors.New("email already registered")
	// ErrDuplicateName is returned when a listing name collides with an existing one.
	ErrDuplicateName = errors.New("listing name already taken")
	// ErrInvalidCredentials is returned for unknown email or wrong password alike.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrInvalidToken is returned when a session token is missing, malformed or expired.
	ErrInvalidToken = errors.New("invalid token")
	// ErrInvalidImage is returned when an uploaded file is not an image.
	ErrInvalidImage = errors.New("uploaded file is not an image")
	// ErrFileTooLarge is returned when an upload exceeds the configured ceiling.
	ErrFileTooLarge = errors.New("uploaded file exceeds size limit")
	// ErrGeocode is returned when the geocoding provider fails or finds nothing.
	ErrGeocode = errors.New("geocoding failed")
)

// ValidationError carries a request-level constraint violation message.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NewValidationError creates a ValidationError.
func NewValidationError(message string) *ValidationError {
	return &ValidationError{Message: message}
}

// ErrorResponse is the uniform failure envelope.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// HTTPError pairs a domain error with an HTTP status.
type HTTPError struct {
	StatusCode int
	Message    string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message string) *HTTPError {
	return &HTTPError{StatusCode: statusCode, Message: message}
}

// MapErrorToHTTP maps domain errors to HTTP errors. Unknown errors become 500s
// with the message passed through.
func MapErrorToHTTP(err error) *HTTPError {
	var ve *ValidationError
	switch {
	case errors.As(err, &ve):
		return NewHTTPError(http.StatusBadRequest, ve.Message)
	case errors.Is(err, ErrUserNotFound), errors.Is(err, ErrFoodNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, ErrDuplicateEmail), errors.Is(err, ErrDuplicateName):
		return NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrInvalidCredentials):
		return NewHTTPError(http.StatusUnauthorized, err.Error())
	case errors.Is(err, ErrInvalidToken):
		return NewHTTPError(http.StatusUnauthorized, err.Error())
	case errors.Is(err, ErrInvalidImage), errors.Is(err, ErrFileTooLarge):
		return NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrGeocode):
		return NewHTTPError(http.StatusInternalServerError, err.Error())
	default:
		return NewHTTPError(http.StatusInternalServerError, err.Error())
	}
}

// HTTPErrorHandler is the single translation point for every error a handler
// or middleware returns. It always emits the {success:false, error} envelope.
func HTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	status := http.StatusInternalServerError
	message := err.Error()

	switch e := err.(type) {
	case *echo.HTTPError:
		status = e.Code
		if msg, ok := e.Message.(string); ok {
			message = msg
		}
	case validator.ValidationErrors:
		status = http.StatusBadRequest
	default:
		httpErr := MapErrorToHTTP(err)
		status = httpErr.StatusCode
		message = httpErr.Message
	}

	if c.Request().Method == http.MethodHead {
		_ = c.NoContent(status)
		return
	}
	_ = c.JSON(status, ErrorResponse{Success: false, Error: message})
}
