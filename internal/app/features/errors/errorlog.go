// internal/app/features/errors/errorlog.go
package errors

import (
	"net/http"

	"github.com/dalemusser/waffle/pantry/httpnav"
	"github.com/dalemusser/waffle/pantry/templates"
	"go.uber.org/zap"
)

// ErrorLogger pairs structured logging with user-facing error pages so
// handlers can report a failure in one call. The log entry carries the
// operational detail; the rendered page carries only the user message.
type ErrorLogger struct {
	log *zap.Logger
}

// NewErrorLogger constructs an ErrorLogger backed by the given logger.
func NewErrorLogger(logger *zap.Logger) *ErrorLogger {
	return &ErrorLogger{log: logger}
}

// LogBadRequest logs a client-caused failure at warn level and renders an
// error page with the given user message. Use it for malformed forms and
// invalid input.
func (e *ErrorLogger) LogBadRequest(w http.ResponseWriter, r *http.Request, logMsg string, err error, userMsg, backURL string) {
	e.log.Warn(logMsg,
		zap.Error(err),
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
	)
	e.renderPage(w, r, http.StatusBadRequest, "Invalid request", userMsg, backURL)
}

// LogServerError logs a server-side failure at error level and renders an
// error page with the given user message. Use it for failed backend calls
// and anything else the user cannot fix.
func (e *ErrorLogger) LogServerError(w http.ResponseWriter, r *http.Request, op string, err error, userMsg, backURL string) {
	e.log.Error(op,
		zap.Error(err),
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
	)
	e.renderPage(w, r, http.StatusInternalServerError, "Something went wrong", userMsg, backURL)
}

func (e *ErrorLogger) renderPage(w http.ResponseWriter, r *http.Request, status int, title, userMsg, backURL string) {
	if backURL == "" {
		backURL = httpnav.ResolveBackURL(r, "/")
	}

	data := pageData{
		Title:   title,
		Message: userMsg,
		BackURL: backURL,
	}

	w.WriteHeader(status)
	templates.Render(w, r, "error_page", data)
}
