// Package handler exposes the photo disclosure endpoint.
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"fotogate/internal/photo/service"
	dErrors "fotogate/pkg/domain-errors"
	"fotogate/pkg/platform/httputil"
	"fotogate/pkg/requestcontext"
)

// Service defines the disclosure operation the handler depends on.
type Service interface {
	Disclose(ctx context.Context, req service.DiscloseRequest) (*service.DiscloseResult, error)
}

// Handler handles the photo disclosure endpoints.
type Handler struct {
	logger  *slog.Logger
	service Service
}

// New creates a photo Handler.
func New(svc Service, logger *slog.Logger) *Handler {
	return &Handler{
		logger:  logger,
		service: svc,
	}
}

// Register mounts the photo routes on the router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/v1/photo", h.handleDisclose)
}

func (h *Handler) handleDisclose(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	var req discloseRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		h.logger.WarnContext(ctx, "invalid disclosure request body",
			"request_id", requestID,
			"error", err.Error(),
		)
		httputil.WriteError(w, err)
		return
	}

	if err := req.validate(); err != nil {
		h.logger.WarnContext(ctx, "disclosure request failed transport validation",
			"request_id", requestID,
			"error", err.Error(),
		)
		httputil.WriteError(w, err)
		return
	}

	res, err := h.service.Disclose(ctx, service.DiscloseRequest{
		NationalID: req.NationalID,
		BirthDate:  req.BirthDate,
		PseudoID:   req.PseudoID,
		Recipient:  req.RecipientPublicKey,
	})
	if err != nil {
		switch dErrors.CodeOf(err) {
		case dErrors.CodeInvalidInput, dErrors.CodeBadRequest, dErrors.CodeNotFound:
			httputil.WriteError(w, err)
		default:
			h.logger.ErrorContext(ctx, "disclosure failed",
				"request_id", requestID,
				"error", err.Error(),
			)
			httputil.WriteError(w, dErrors.New(dErrors.CodeInternal, "photo disclosure failed"))
		}
		return
	}

	httputil.WriteJSON(w, http.StatusOK, discloseResponse{
		TransactionID:  res.TransactionID.String(),
		PhotoID:        int64(res.PhotoID),
		EncryptedToken: res.Token,
	})
}
