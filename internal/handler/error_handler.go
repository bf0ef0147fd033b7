package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/Raymond9734/smallbiz-crm/internal/models"
)

const genericErrorMessage = "An error occurred while processing your request"

// ErrorHandler turns every failure into the external error body. It is the
// only place that writes 5xx responses.
type ErrorHandler struct {
	logger         *slog.Logger
	exposeInternal bool
}

// NewErrorHandler creates an error handler. exposeInternal puts the real
// message of unclassified errors into the response.
func NewErrorHandler(logger *slog.Logger, exposeInternal bool) *ErrorHandler {
	return &ErrorHandler{
		logger:         logger,
		exposeInternal: exposeInternal,
	}
}

// Handle maps err to a status and error body
func (h *ErrorHandler) Handle(w http.ResponseWriter, r *http.Request, err error) {
	var appErr *models.AppError
	if errors.As(err, &appErr) {
		if status, ok := statusForCode(appErr.Code); ok {
			respondErrorDetails(w, status, appErr.Code, appErr.Message, appErr.Details)
			return
		}
	}

	h.internal(w, r, err)
}

func (h *ErrorHandler) internal(w http.ResponseWriter, r *http.Request, err error) {
	h.logger.Error("internal server error",
		slog.String("error", err.Error()),
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	message := genericErrorMessage
	if h.exposeInternal {
		message = err.Error()
	}
	respondError(w, http.StatusInternalServerError, models.CodeInternal, message)
}

// statusForCode maps error codes to HTTP status codes. Unknown codes report false.
func statusForCode(code string) (int, bool) {
	switch code {
	case models.CodeValidationFailed,
		models.CodeInvalidInput,
		models.CodeInvalidJSON,
		models.CodeInvalidID,
		models.CodeInvalidReference,
		models.CodeConstraintViolation:
		return http.StatusBadRequest, true
	case models.CodeNotFound, models.CodeNoData:
		return http.StatusNotFound, true
	case models.CodeConflict:
		return http.StatusConflict, true
	case models.CodeRateLimited:
		return http.StatusTooManyRequests, true
	default:
		return 0, false
	}
}

// NotFound answers unknown routes
func NotFound(w http.ResponseWriter, r *http.Request) {
	respondError(w, http.StatusNotFound, models.CodeNotFound, "The requested resource was not found")
}

// MethodNotAllowed answers known routes called with the wrong method
func MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	respondError(w, http.StatusMethodNotAllowed, models.CodeMethodNotAllowed, "Method not allowed")
}
