package controllers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/iota-uz/usecase-catalog/modules/catalog/domain/aggregates/submission"
	"github.com/iota-uz/usecase-catalog/modules/catalog/domain/aggregates/usecase"
	"github.com/iota-uz/usecase-catalog/pkg/httpapi"
	"github.com/iota-uz/usecase-catalog/pkg/serrors"
)

const maxBodyBytes = 64 << 10

var errInvalidBody = errors.New("invalid request body")

func decodeBody(r *http.Request, dst any) error {
	if err := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes)).Decode(dst); err != nil {
		return errInvalidBody
	}
	return nil
}

// statusFor maps a service error onto the status code and client message of
// a mutating endpoint. Unknown errors fall back to 500 with fallback.
func statusFor(err error, fallback string) (int, string) {
	switch {
	case errors.Is(err, errInvalidBody):
		return http.StatusBadRequest, "Invalid request body"
	case serrors.IsValidation(err):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, usecase.ErrNotFound):
		return http.StatusNotFound, "Use case not found"
	case errors.Is(err, submission.ErrPendingNotFound):
		return http.StatusConflict, "Pending item not found or already processed"
	case errors.Is(err, submission.ErrKindMismatch):
		return http.StatusConflict, "Pending item is a different kind of submission"
	default:
		return http.StatusInternalServerError, fallback
	}
}

func writeFailure(w http.ResponseWriter, logger *logrus.Entry, err error, fallback string) {
	status, message := statusFor(err, fallback)
	if status >= http.StatusInternalServerError {
		logger.WithError(err).Error(fallback)
	}
	if wErr := httpapi.WriteFailure(w, status, message); wErr != nil {
		logger.WithError(wErr).Warn("failed to write response")
	}
}

func writeJSON(w http.ResponseWriter, logger *logrus.Entry, payload any) {
	if err := httpapi.WriteJSON(w, http.StatusOK, payload); err != nil {
		logger.WithError(err).Warn("failed to write response")
	}
}

// chain applies middlewares so the first one runs outermost.
func chain(h http.Handler, middlewares []mux.MiddlewareFunc) http.Handler {
	for i := len(middlewares) - 1; i >= 0; i-- {
		h = middlewares[i](h)
	}
	return h
}
