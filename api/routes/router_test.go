package routes

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"saleor-tma-bot/internal/catalog"
	"saleor-tma-bot/internal/dispatcher"
	"saleor-tma-bot/internal/orders"
	"saleor-tma-bot/internal/saleor"
	"saleor-tma-bot/internal/telegram"
	"saleor-tma-bot/pkg/config"
	"saleor-tma-bot/pkg/logger"
	"saleor-tma-bot/pkg/metrics"
)

type recordingAPI struct {
	params []tgbotapi.Params
}

func (a *recordingAPI) MakeRequest(_ string, params tgbotapi.Params) (*tgbotapi.APIResponse, error) {
	a.params = append(a.params, params)
	return &tgbotapi.APIResponse{Ok: true}, nil
}

func (a *recordingAPI) Request(tgbotapi.Chattable) (*tgbotapi.APIResponse, error) {
	return &tgbotapi.APIResponse{Ok: true}, nil
}

func newTestRouter(t *testing.T, api *recordingAPI) http.Handler {
	t.Helper()
	logg := logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
	reg := prometheus.NewRegistry()
	m := metrics.New(reg)

	resolver := catalog.NewResolver(catalog.ResolverParams{Fallback: catalog.Fallback(), Logger: logg, Metrics: m})
	d := dispatcher.New(dispatcher.Params{
		Notifier:   telegram.NewNotifier(api, logg, m),
		Formatter:  orders.NewFormatter(resolver),
		BaseURL:    "https://tma.example.com",
		WebviewURL: "https://example.com",
		Logger:     logg,
		Metrics:    m,
	})
	gateway := saleor.NewClient(config.SaleorConfig{}, logg, m)

	cfg := &config.Config{App: config.AppConfig{Env: config.AppEnvDev}}
	return NewRouter(cfg, logg, m, reg, d, gateway, resolver)
}

func TestRouterServesEverySurface(t *testing.T) {
	api := &recordingAPI{}
	router := newTestRouter(t, api)

	tests := []struct {
		method     string
		path       string
		body       string
		wantStatus int
		wantBody   string
	}{
		{http.MethodGet, "/", "", http.StatusOK, "Ready to serve..."},
		{http.MethodGet, "/health/live", "", http.StatusOK, `"status":"live"`},
		{http.MethodGet, "/api/health", "", http.StatusOK, `{"saleor":false,"catalog":"fallback"}`},
		{http.MethodGet, "/api/restaurants", "", http.StatusOK, `"Burger Palace"`},
		{http.MethodGet, "/api/products?shopId=1", "", http.StatusOK, `"Icecream"`},
		{http.MethodGet, "/api/products/3", "", http.StatusOK, `"Hotdog"`},
		{http.MethodGet, "/api/products/nope", "", http.StatusNotFound, `"ok":false`},
		{http.MethodGet, "/api/menu/2", "", http.StatusOK, `"Flan"`},
		{http.MethodPost, "/api/webapp", `{"method":"checkInitData","init_data":"x"}`, http.StatusOK, `{"ok":true}`},
		{http.MethodPost, "/api/webapp", `{"method":"nope"}`, http.StatusOK, `"Unknown method"`},
		{http.MethodPost, "/telegram", `{"update_id":1,"message":{"message_id":1,"chat":{"id":77},"text":"/ping"}}`, http.StatusOK, ""},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.wantBody)
			assert.NotEmpty(t, rec.Header().Get("X-Request-Id"))
		})
	}

	require.Len(t, api.params, 1)
	assert.Equal(t, "77", api.params[0]["chat_id"])
	assert.Equal(t, "`Pong!`", api.params[0]["text"])
}

func TestRouterExposesMetrics(t *testing.T) {
	router := newTestRouter(t, &recordingAPI{})

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "tma_bot_http_requests_total")
	assert.Contains(t, rec.Body.String(), "tma_bot_catalog_items")
}

