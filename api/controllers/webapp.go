package controllers

import (
	"context"
	"io"
	"net/http"

	"saleor-tma-bot/api/responses"
	"saleor-tma-bot/internal/dispatcher"
	pkgerrors "saleor-tma-bot/pkg/errors"
	"saleor-tma-bot/pkg/logger"
)

type SubmissionHandler interface {
	HandleSubmission(ctx context.Context, sub dispatcher.Submission) (dispatcher.Result, error)
}

// WebApp serves POST /api/webapp. An unknown method is a 200 with ok=false.
func WebApp(h SubmissionHandler, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
		if err != nil {
			responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "read request body"))
			return
		}

		sub, err := dispatcher.DecodeSubmission(body, 0)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		result, err := h.HandleSubmission(ctx, sub)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteJSON(w, http.StatusOK, result)
	}
}
