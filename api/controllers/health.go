package controllers

import (
	"net/http"

	"saleor-tma-bot/api/responses"
	"saleor-tma-bot/pkg/config"
)

const readyText = "Ready to serve..."

func Root() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteText(w, http.StatusOK, readyText)
	}
}

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Bot-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

type healthStatus struct {
	Saleor  bool   `json:"saleor"`
	Catalog string `json:"catalog"`
}

// Health reports whether the commerce backend answers and which catalog orders are
// priced against. It is always a 200.
func Health(gw CatalogGateway, fb CatalogFallback) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := healthStatus{Saleor: gw.CheckAvailability(r.Context()), Catalog: "fallback"}
		if fb.Live() {
			status.Catalog = "live"
		}
		responses.WriteJSON(w, http.StatusOK, status)
	}
}
