package controllers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"saleor-tma-bot/api/responses"
	"saleor-tma-bot/internal/catalog"
	"saleor-tma-bot/internal/saleor"
	pkgerrors "saleor-tma-bot/pkg/errors"
	"saleor-tma-bot/pkg/logger"
)

// CatalogGateway is the commerce backend as seen by the catalog routes.
type CatalogGateway interface {
	Shops(ctx context.Context) (*saleor.ShopsResponse, error)
	Products(ctx context.Context, first int, shopID string) (*saleor.ProductsResponse, error)
	Product(ctx context.Context, id string) (*saleor.Product, error)
	CheckAvailability(ctx context.Context) bool
}

// CatalogFallback serves the routes when the gateway cannot.
type CatalogFallback interface {
	Restaurants() []catalog.Restaurant
	Items() []catalog.Item
	ResolveItem(id catalog.ID) (catalog.Item, bool)
	Live() bool
}

func Restaurants(gw CatalogGateway, fb CatalogFallback, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		resp, err := gw.Shops(ctx)
		if err != nil {
			fallbackServed(ctx, logg, "restaurants", err)
			resp = saleor.ShopsFromRestaurants(fb.Restaurants())
		}
		responses.WriteSuccess(w, resp)
	}
}

// Products serves GET /api/products?shopId=.
func Products(gw CatalogGateway, fb CatalogFallback, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeProducts(w, r, gw, fb, logg, r.URL.Query().Get("shopId"))
	}
}

// Menu serves GET /api/menu/{restaurantId}, the path form of Products.
func Menu(gw CatalogGateway, fb CatalogFallback, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeProducts(w, r, gw, fb, logg, chi.URLParam(r, "restaurantId"))
	}
}

func writeProducts(w http.ResponseWriter, r *http.Request, gw CatalogGateway, fb CatalogFallback, logg *logger.Logger, shopID string) {
	ctx := r.Context()
	resp, err := gw.Products(ctx, 0, shopID)
	if err != nil {
		fallbackServed(ctx, logg, "products", err)
		// The fallback catalog is not partitioned by restaurant; shopID is ignored here.
		resp = saleor.ProductsFromItems(fb.Items())
	}
	responses.WriteSuccess(w, resp)
}

func Product(gw CatalogGateway, fb CatalogFallback, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		id := chi.URLParam(r, "id")
		if id == "" {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeValidation, "product id is required"))
			return
		}

		product, err := gw.Product(ctx, id)
		if err == nil {
			responses.WriteSuccess(w, saleor.ProductResponse{Product: product})
			return
		}

		item, ok := fb.ResolveItem(catalog.ID(id))
		if !ok {
			responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "product not found"))
			return
		}
		fallbackServed(ctx, logg, "product", err)
		fallback := saleor.ProductFromItem(item)
		responses.WriteSuccess(w, saleor.ProductResponse{Product: &fallback})
	}
}

func fallbackServed(ctx context.Context, logg *logger.Logger, route string, err error) {
	if logg == nil {
		return
	}
	logg.Warn(logg.WithFields(ctx, map[string]any{
		"route": route,
		"error": err.Error(),
	}), "catalog.fallback_served")
}
