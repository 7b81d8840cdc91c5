// Package handlers holds the JSON HTTP handlers. Each handler is a thin
// adapter over services.Shop: decode, call, map the error, encode.
package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/diewo77/glasspro/httpx"
	"github.com/diewo77/glasspro/internal/config"
	"github.com/diewo77/glasspro/internal/services"
	"github.com/diewo77/glasspro/validation"
	"github.com/sirupsen/logrus"
)

var (
	notFound = []error{
		services.ErrDocumentNotFound,
		services.ErrWorkerNotFound,
		services.ErrItemNotFound,
		services.ErrServiceNotFound,
	}
	badRequest = []error{
		services.ErrEmptyDocument,
		services.ErrInvalidStatus,
		services.ErrInvalidType,
		services.ErrLineItemIndex,
		services.ErrUnknownField,
		services.ErrUnknownSource,
		services.ErrInvalidValue,
	}
)

// writeError maps service errors to status codes. The sentinel text doubles as the error code.
func writeError(w http.ResponseWriter, log logrus.FieldLogger, err error) {
	var v validation.Violations
	if errors.As(err, &v) {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", v)
		return
	}
	for _, target := range notFound {
		if errors.Is(err, target) {
			httpx.JSONError(w, http.StatusNotFound, target.Error(), nil)
			return
		}
	}
	for _, target := range badRequest {
		if errors.Is(err, target) {
			httpx.JSONError(w, http.StatusBadRequest, target.Error(), nil)
			return
		}
	}
	switch {
	case errors.Is(err, services.ErrNotQuotation):
		httpx.JSONError(w, http.StatusConflict, services.ErrNotQuotation.Error(), nil)
	case errors.Is(err, services.ErrMalformedNumber):
		httpx.JSONError(w, http.StatusConflict, services.ErrMalformedNumber.Error(), nil)
	case errors.Is(err, services.ErrInvalidCredentials):
		httpx.JSONError(w, http.StatusUnauthorized, services.ErrInvalidCredentials.Error(), nil)
	default:
		config.LogError(log, "handlers", "writeError", nil, err)
		httpx.JSONError(w, http.StatusInternalServerError, "internal_error", nil)
	}
}

func decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := httpx.Decode(w, r, dst); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", err.Error())
		return false
	}
	return true
}

func pathIndex(w http.ResponseWriter, r *http.Request) (int, bool) {
	i, err := strconv.Atoi(r.PathValue("index"))
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_index", nil)
		return 0, false
	}
	return i, true
}
