package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/aussiebroadwan/rolepanel/internal/rolepanel/service"
	"github.com/aussiebroadwan/rolepanel/pkg/httpx"
	"github.com/aussiebroadwan/rolepanel/pkg/panelsdk"
	"github.com/aussiebroadwan/rolepanel/pkg/slogx"
)

// writeServiceError maps a service failure onto the API error taxonomy.
// Protected roles answer exactly like missing ones.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	log := slogx.FromContext(r.Context())

	var txErr *service.TransactionError
	switch {
	case errors.As(err, &txErr):
		log.Warn("role transaction rolled back", "op", txErr.Op, "error", txErr.Err)
		httpx.WriteJSON(w, http.StatusUnprocessableEntity, panelsdk.ErrorResponse{
			Error:            panelsdk.ErrorCodeTransactionFailed,
			ErrorDescription: txErr.Error(),
		})
	case errors.Is(err, service.ErrValidation):
		httpx.WriteJSON(w, http.StatusBadRequest, panelsdk.ErrorResponse{
			Error:            panelsdk.ErrorCodeInvalidRequest,
			ErrorDescription: strings.TrimPrefix(err.Error(), service.ErrValidation.Error()+": "),
		})
	case errors.Is(err, service.ErrRoleNotFound), errors.Is(err, service.ErrRoleProtected):
		writeRoleNotFound(w)
	default:
		log.Error(fallback, "error", err)
		desc := fallback
		if id := slogx.RequestID(r.Context()); id != "" {
			desc += " (request " + id + ")"
		}
		httpx.WriteJSON(w, http.StatusInternalServerError, panelsdk.ErrorResponse{
			Error:            panelsdk.ErrorCodeServerError,
			ErrorDescription: desc,
		})
	}
}

func writeRoleNotFound(w http.ResponseWriter) {
	httpx.WriteJSON(w, http.StatusNotFound, panelsdk.ErrorResponse{
		Error:            panelsdk.ErrorCodeNotFound,
		ErrorDescription: "Role not found",
	})
}

func writeInvalidRequest(w http.ResponseWriter, desc string) {
	httpx.WriteJSON(w, http.StatusBadRequest, panelsdk.ErrorResponse{
		Error:            panelsdk.ErrorCodeInvalidRequest,
		ErrorDescription: desc,
	})
}
