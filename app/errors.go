package main

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/sushihentaime/conduit/internal/articleservice"
	"github.com/sushihentaime/conduit/internal/authservice"
	"github.com/sushihentaime/conduit/internal/common"
	"github.com/sushihentaime/conduit/internal/docstore"
	"github.com/sushihentaime/conduit/internal/userservice"
)

func (app *application) logError(r *http.Request, err error) {
	var (
		method  = r.Method
		url     = r.URL.RequestURI()
		message = err.Error()
	)

	app.logger.Error(message, slog.String("method", method), slog.String("url", url))
}

func (app *application) writeErrorResponse(w http.ResponseWriter, r *http.Request, status int, message any) {
	err := app.writeJSON(w, status, envelope{"error": message}, nil)
	if err != nil {
		app.logError(r, err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
}

// errorResponse maps a service error onto its HTTP representation. Handlers
// delegate every non-nil service error here so that each sentinel is
// translated in exactly one place.
func (app *application) errorResponse(w http.ResponseWriter, r *http.Request, err error) {
	var validationErr common.ValidationError

	switch {
	case errors.As(err, &validationErr):
		app.failedValidationErrorResponse(w, r, validationErr.Errors)
	case errors.Is(err, userservice.ErrNotFound),
		errors.Is(err, articleservice.ErrNotFound),
		errors.Is(err, articleservice.ErrCommentNotFound),
		errors.Is(err, docstore.ErrDocumentNotFound):
		app.notFoundErrorResponse(w, r)
	case errors.Is(err, userservice.ErrInvalidCredentials),
		errors.Is(err, authservice.ErrInvalidToken):
		app.invalidCredentialsErrorResponse(w, r)
	case errors.Is(err, articleservice.ErrNotAuthor):
		app.forbiddenErrorResponse(w, r)
	case errors.Is(err, docstore.ErrDocumentExists):
		app.duplicateResourceErrorResponse(w, r)
	case errors.Is(err, docstore.ErrQueryTimeout):
		app.timeoutErrorResponse(w, r)
	default:
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) serverErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.logError(r, err)
	message := "the server encountered a problem and could not process your request"
	app.writeErrorResponse(w, r, http.StatusInternalServerError, message)
}

func (app *application) badRequestErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.writeErrorResponse(w, r, http.StatusBadRequest, err.Error())
}

func (app *application) notFoundErrorResponse(w http.ResponseWriter, r *http.Request) {
	app.writeErrorResponse(w, r, http.StatusNotFound, "resource not found")
}

func (app *application) methodNotAllowedErrorResponse(w http.ResponseWriter, r *http.Request) {
	app.writeErrorResponse(w, r, http.StatusMethodNotAllowed, "method not allowed")
}

func (app *application) failedValidationErrorResponse(w http.ResponseWriter, r *http.Request, errors map[string]string) {
	app.writeErrorResponse(w, r, http.StatusUnprocessableEntity, errors)
}

func (app *application) invalidCredentialsErrorResponse(w http.ResponseWriter, r *http.Request) {
	app.writeErrorResponse(w, r, http.StatusUnauthorized, "invalid authentication credentials")
}

func (app *application) invalidAuthenticationTokenResponse(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("WWW-Authenticate", "Token")
	app.writeErrorResponse(w, r, http.StatusUnauthorized, "invalid or missing authentication token")
}

func (app *application) notAuthenticatedResponse(w http.ResponseWriter, r *http.Request) {
	app.writeErrorResponse(w, r, http.StatusUnauthorized, "you must be authenticated to access this resource")
}

func (app *application) forbiddenErrorResponse(w http.ResponseWriter, r *http.Request) {
	app.writeErrorResponse(w, r, http.StatusForbidden, "you do not have permission to modify this resource")
}

func (app *application) duplicateResourceErrorResponse(w http.ResponseWriter, r *http.Request) {
	app.writeErrorResponse(w, r, http.StatusConflict, "a resource with the same identity already exists")
}

func (app *application) timeoutErrorResponse(w http.ResponseWriter, r *http.Request) {
	app.writeErrorResponse(w, r, http.StatusRequestTimeout, "the request took too long to process")
}

func (app *application) rateLimitExceededResponse(w http.ResponseWriter, r *http.Request) {
	app.writeErrorResponse(w, r, http.StatusTooManyRequests, "rate limit exceeded")
}
