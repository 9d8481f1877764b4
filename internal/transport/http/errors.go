package http

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"ceylon_travel/internal/lib/logger/sl"
	"ceylon_travel/internal/storage"
	"ceylon_travel/internal/transport/http/dto/response"
)

// Status maps a service error to its HTTP status and error code.
// Configuration is checked before drift: a drift that could not be kept
// anywhere is a configuration problem for the operator.
func Status(err error) (int, string) {
	switch {
	case errors.Is(err, storage.ErrValidation):
		return http.StatusBadRequest, response.CodeValidation
	case errors.Is(err, storage.ErrNotFound):
		return http.StatusNotFound, response.CodeNotFound
	case errors.Is(err, storage.ErrConfiguration):
		return http.StatusInternalServerError, response.CodeConfiguration
	case errors.Is(err, storage.ErrBackendUnavailable):
		return http.StatusServiceUnavailable, response.CodeUnavailable
	case errors.Is(err, storage.ErrSchemaDrift):
		return http.StatusInternalServerError, response.CodeSchemaDrift
	default:
		return http.StatusInternalServerError, response.CodeInternal
	}
}

func (r *Routers) fail(c echo.Context, log *slog.Logger, err error) error {
	status, code := Status(err)

	if status >= http.StatusInternalServerError {
		log.Error("request failed", slog.String("code", code), sl.Err(err))
	} else {
		log.Warn("request rejected", slog.String("code", code), sl.Err(err))
	}

	return c.JSON(status, response.ErrorResponseWithMessage(code, publicMessage(err)))
}

// publicMessage drops the op prefixes from the chain and keeps the part
// starting at the sentinel, which carries the actionable reason.
func publicMessage(err error) string {
	msg := err.Error()
	for _, sentinel := range []error{
		storage.ErrValidation,
		storage.ErrNotFound,
		storage.ErrConfiguration,
		storage.ErrBackendUnavailable,
	} {
		if !errors.Is(err, sentinel) {
			continue
		}
		if i := strings.Index(msg, sentinel.Error()); i >= 0 {
			return msg[i:]
		}
		return sentinel.Error()
	}

	var drift *storage.SchemaDriftError
	if errors.As(err, &drift) {
		return drift.Error() + "; migrate the remote schema"
	}
	return response.ErrInternal.Message
}

func badRequest(c echo.Context, err error) error {
	resp := response.ErrInvalidRequestFormat
	if err != nil {
		resp.Message = resp.Message + ": " + err.Error()
	}
	return c.JSON(http.StatusBadRequest, resp)
}
