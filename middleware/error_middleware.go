package middleware

import (
	"encoding/json"
	stderrors "errors"
	"net/http"

	"go.uber.org/zap"

	"silentsos-server/utils/errors"
)

// errorLogger is replaced by SetLogger at startup.
var errorLogger = zap.NewNop()

func SetLogger(l *zap.Logger) {
	if l != nil {
		errorLogger = l
	}
}

// errorResponse repeats the message under "error", which is the field the
// web client reads.
type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Status  int    `json:"status"`
	Details string `json:"details,omitempty"`
	Error   string `json:"error"`
}

// ErrorMiddleware recovers panics and answers them with a JSON 500.
func ErrorMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					errorLogger.Error("Panic recovered", zap.Any("panic", rec), zap.String("path", r.URL.Path))
					WriteError(w, errors.ErrInternal)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// WriteError writes an APIError as a JSON response
func WriteError(w http.ResponseWriter, err error) {
	var apiErr *errors.APIError
	if !stderrors.As(err, &apiErr) {
		apiErr = errors.Wrap(err, "UNKNOWN_ERROR", "Unexpected error", errors.ErrInternal.Status)
	}
	if apiErr.Status >= 500 {
		errorLogger.Error("Server error", zap.String("error", apiErr.Error()), zap.String("details", apiErr.Details))
	}

	body := errorResponse{
		Code:    apiErr.Code,
		Message: apiErr.Message,
		Status:  apiErr.Status,
		Error:   apiErr.Message,
	}
	// Internal details stay in the log.
	if apiErr.Status < 500 {
		body.Details = apiErr.Details
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(apiErr.Status)
	json.NewEncoder(w).Encode(body)
}
