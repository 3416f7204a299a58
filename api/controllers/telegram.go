package controllers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"saleor-tma-bot/api/responses"
	"saleor-tma-bot/internal/dispatcher"
	pkgerrors "saleor-tma-bot/pkg/errors"
	"saleor-tma-bot/pkg/logger"
)

const (
	maxBodyBytes       = 1 << 20
	webhookFailureText = "Error processing request"
)

type UpdateHandler interface {
	HandleUpdate(ctx context.Context, u dispatcher.Update) error
}

// TelegramWebhook receives Bot API updates. Success is an empty 200; any failure
// is a plain-text 500.
func TelegramWebhook(h UpdateHandler, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
		if err != nil {
			webhookFailed(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "read request body"))
			return
		}

		var update dispatcher.Update
		if err := json.Unmarshal(body, &update); err != nil {
			webhookFailed(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "decode update"))
			return
		}
		ctx = logg.WithUpdateID(ctx, update.UpdateID)

		if err := h.HandleUpdate(ctx, update); err != nil {
			webhookFailed(ctx, logg, w, err)
			return
		}
		w.WriteHeader(http.StatusOK)
	}
}

func webhookFailed(ctx context.Context, logg *logger.Logger, w http.ResponseWriter, err error) {
	if logg != nil {
		logg.Error(ctx, "telegram.update_failed", err)
	}
	responses.WriteText(w, http.StatusInternalServerError, webhookFailureText)
}
