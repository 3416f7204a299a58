package saleor

import (
	"strings"

	"github.com/shopspring/decimal"

	"saleor-tma-bot/internal/catalog"
)

func (r *ShopsResponse) Restaurants() []catalog.Restaurant {
	out := make([]catalog.Restaurant, 0, len(r.Shops.Edges))
	for _, edge := range r.Shops.Edges {
		n := edge.Node
		if n.ID == "" {
			continue
		}
		out = append(out, catalog.Restaurant{
			ID:          catalog.ID(n.ID),
			Name:        n.Name,
			Description: n.Description,
			Slug:        n.Slug,
		})
	}
	return out
}

// Items converts priced products to catalog items. Products without pricing are skipped.
func (r *ProductsResponse) Items() []catalog.Item {
	out := make([]catalog.Item, 0, len(r.Products.Edges))
	for _, edge := range r.Products.Edges {
		if item, ok := edge.Node.Item(); ok {
			out = append(out, item)
		}
	}
	return out
}

func (p Product) Item() (catalog.Item, bool) {
	if p.ID == "" || p.Pricing == nil {
		return catalog.Item{}, false
	}
	gross := p.Pricing.PriceRange.Start.Gross
	return catalog.Item{
		ID:         catalog.ID(p.ID),
		Name:       p.Name,
		PriceMinor: gross.Amount.Shift(2).Round(0).IntPart(),
		Currency:   strings.ToUpper(gross.Currency),
	}, true
}

// ShopsFromRestaurants renders catalog restaurants in the Saleor response shape.
func ShopsFromRestaurants(restaurants []catalog.Restaurant) *ShopsResponse {
	resp := &ShopsResponse{Shops: ShopConnection{Edges: make([]ShopEdge, 0, len(restaurants))}}
	for _, r := range restaurants {
		resp.Shops.Edges = append(resp.Shops.Edges, ShopEdge{Node: Shop{
			ID:          r.ID.String(),
			Name:        r.Name,
			Description: r.Description,
			Slug:        r.Slug,
		}})
	}
	return resp
}

// ProductsFromItems renders catalog items in the Saleor response shape.
func ProductsFromItems(items []catalog.Item) *ProductsResponse {
	resp := &ProductsResponse{Products: ProductConnection{Edges: make([]ProductEdge, 0, len(items))}}
	for _, it := range items {
		resp.Products.Edges = append(resp.Products.Edges, ProductEdge{Node: ProductFromItem(it)})
	}
	return resp
}

func ProductFromItem(it catalog.Item) Product {
	return Product{
		ID:   it.ID.String(),
		Name: it.Name,
		Slug: strings.ToLower(it.Name),
		Pricing: &ProductPricing{PriceRange: PriceRange{Start: TaxedMoney{Gross: Money{
			Amount:   decimal.New(it.PriceMinor, -2),
			Currency: it.Currency,
		}}}},
	}
}
