package http

import (
	"errors"
	"log/slog"
	"net/http"

	"fooddelivery/internal/core/application/usecases/commands"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/core/domain/model/splitconfig"
	"fooddelivery/internal/core/domain/services"
	"fooddelivery/internal/core/ports"
	"fooddelivery/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Error kinds returned in the "kind" field of error responses.
const (
	kindValidation            = "validation_error"
	kindIllegalTransition     = "illegal_transition"
	kindAlreadyAssigned       = "already_assigned"
	kindAlreadySettled        = "already_settled"
	kindNotFound              = "not_found"
	kindForbidden             = "forbidden"
	kindRestaurantUnavailable = "restaurant_unavailable"
	kindMissingLocation       = "missing_location"
	kindAssignmentFailed      = "assignment_failed"
	kindNoActiveConfig        = "no_active_config"
	kindInvalidConfig         = "invalid_config"
	kindInvalidState          = "invalid_state"
	kindUnauthorized          = "unauthorized"
	kindDuplicateRequest      = "duplicate_request"
	kindInternal              = "internal"
)

type Error struct {
	Code    int    `json:"code"`
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// requestError is raised by the adapter itself for malformed requests and
// missing credentials.
type requestError struct {
	kind    string
	message string
}

func newRequestError(kind, message string) *requestError {
	return &requestError{kind: kind, message: message}
}

func (e *requestError) Error() string {
	return e.message
}

var requestErrorStatus = map[string]int{
	kindValidation:   http.StatusBadRequest,
	kindUnauthorized: http.StatusUnauthorized,
	kindForbidden:    http.StatusForbidden,
}

// classify maps an error to its HTTP status and kind. Order matters: typed
// domain errors are matched before the generic validation sentinels they
// may wrap.
func classify(err error) (int, string) {
	var reqErr *requestError
	if errors.As(err, &reqErr) {
		return requestErrorStatus[reqErr.kind], reqErr.kind
	}

	switch {
	case errors.Is(err, commands.ErrDuplicateRequest):
		return http.StatusConflict, kindDuplicateRequest
	case errors.Is(err, order.ErrAlreadyAssigned):
		return http.StatusConflict, kindAlreadyAssigned
	case errors.Is(err, order.ErrAlreadySettled):
		return http.StatusConflict, kindAlreadySettled
	case errors.Is(err, order.ErrIllegalTransition):
		return http.StatusConflict, kindIllegalTransition
	case errors.Is(err, errs.ErrInvalidState), errors.Is(err, order.ErrNotSettled):
		return http.StatusConflict, kindInvalidState
	case errors.Is(err, commands.ErrRestaurantUnavailable):
		return http.StatusUnprocessableEntity, kindRestaurantUnavailable
	case errors.Is(err, order.ErrMissingLocation):
		return http.StatusUnprocessableEntity, kindMissingLocation
	case errors.Is(err, services.ErrOutOfDroneRange):
		return http.StatusUnprocessableEntity, kindAssignmentFailed
	case errors.Is(err, ports.ErrAssignmentFailed):
		return http.StatusBadGateway, kindAssignmentFailed
	case errors.Is(err, services.ErrNoActiveConfig):
		return http.StatusUnprocessableEntity, kindNoActiveConfig
	case errors.Is(err, splitconfig.ErrInvalidConfig):
		return http.StatusUnprocessableEntity, kindInvalidConfig
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound, kindNotFound
	case errors.Is(err, errs.ErrForbidden):
		return http.StatusForbidden, kindForbidden
	case errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return http.StatusBadRequest, kindValidation
	default:
		return http.StatusInternalServerError, kindInternal
	}
}

// echoErrorKinds covers errors raised by echo itself, such as unknown
// routes and malformed bodies.
var echoErrorKinds = map[int]string{
	http.StatusBadRequest:            kindValidation,
	http.StatusUnauthorized:          kindUnauthorized,
	http.StatusForbidden:             kindForbidden,
	http.StatusNotFound:              kindNotFound,
	http.StatusMethodNotAllowed:      kindValidation,
	http.StatusRequestEntityTooLarge: kindValidation,
	http.StatusUnsupportedMediaType:  kindValidation,
}

// NewErrorHandler renders every error as an Error document. Internal
// errors are logged and their message hidden from the client.
func NewErrorHandler(logger *slog.Logger) echo.HTTPErrorHandler {
	logger = logger.With("component", "http_error_handler")

	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		body := errorBody(err)
		if body.Kind == kindInternal {
			logger.ErrorContext(c.Request().Context(), "request failed",
				"method", c.Request().Method,
				"path", c.Path(),
				"error", err,
			)
		}

		var writeErr error
		if c.Request().Method == http.MethodHead {
			writeErr = c.NoContent(body.Code)
		} else {
			writeErr = c.JSON(body.Code, body)
		}
		if writeErr != nil {
			logger.ErrorContext(c.Request().Context(), "write error response", "error", writeErr)
		}
	}
}

func errorBody(err error) Error {
	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		kind, ok := echoErrorKinds[httpErr.Code]
		if !ok {
			kind = kindInternal
		}
		message, ok := httpErr.Message.(string)
		if !ok {
			message = http.StatusText(httpErr.Code)
		}
		return Error{Code: httpErr.Code, Kind: kind, Message: message}
	}

	status, kind := classify(err)
	message := err.Error()
	if kind == kindInternal {
		message = "internal error"
	}
	return Error{Code: status, Kind: kind, Message: message}
}
