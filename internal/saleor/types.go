package saleor

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

type ShopsResponse struct {
	Shops ShopConnection `json:"shops"`
}

type ShopConnection struct {
	Edges []ShopEdge `json:"edges"`
}

type ShopEdge struct {
	Node Shop `json:"node"`
}

type Shop struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Slug        string `json:"slug"`
}

type ProductsResponse struct {
	Products ProductConnection `json:"products"`
}

type ProductConnection struct {
	Edges []ProductEdge `json:"edges"`
}

type ProductEdge struct {
	Node Product `json:"node"`
}

type ProductResponse struct {
	Product *Product `json:"product"`
}

type Product struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Slug        string          `json:"slug,omitempty"`
	Pricing     *ProductPricing `json:"pricing"`
}

type ProductPricing struct {
	PriceRange PriceRange `json:"priceRange"`
}

type PriceRange struct {
	Start TaxedMoney `json:"start"`
}

type TaxedMoney struct {
	Gross Money `json:"gross"`
}

// Money is a Saleor amount in major units.
type Money struct {
	Amount   decimal.Decimal `json:"amount"`
	Currency string          `json:"currency"`
}

// MarshalJSON keeps amount a JSON number, as Saleor sends it.
func (m Money) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Amount   json.Number `json:"amount"`
		Currency string      `json:"currency"`
	}{
		Amount:   json.Number(m.Amount.String()),
		Currency: m.Currency,
	})
}
