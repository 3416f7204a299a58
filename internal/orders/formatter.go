package orders

import (
	"saleor-tma-bot/internal/catalog"
)

// Resolver is the catalog lookup the formatter prices against.
type Resolver interface {
	ResolveItem(id catalog.ID) (catalog.Item, bool)
	ResolveRestaurant(id catalog.ID) (catalog.Restaurant, bool)
}

type Formatter struct {
	catalog Resolver
}

func NewFormatter(resolver Resolver) *Formatter {
	return &Formatter{catalog: resolver}
}

// FormatOrder parses order_data and prices it. Only a malformed payload is an error;
// unknown items and non-positive counts are dropped.
func (f *Formatter) FormatOrder(orderData string, restaurantID catalog.ID, comment string) (Receipt, error) {
	cart, err := ParseCart(orderData)
	if err != nil {
		return Receipt{}, err
	}
	return f.Price(cart, restaurantID, comment), nil
}

// Price builds a receipt from already decoded lines. Duplicate ids are kept as
// separate lines in input order.
func (f *Formatter) Price(cart []CartLine, restaurantID catalog.ID, comment string) Receipt {
	receipt := Receipt{
		Restaurant: catalog.DefaultRestaurantName,
		Comment:    comment,
	}
	if restaurantID != "" {
		if rest, ok := f.catalog.ResolveRestaurant(restaurantID); ok && rest.Name != "" {
			receipt.Restaurant = rest.Name
		}
	}

	for _, cl := range cart {
		if cl.Count <= 0 {
			continue
		}
		item, ok := f.catalog.ResolveItem(cl.ItemID)
		if !ok {
			continue
		}
		currency := item.Currency
		if currency == "" {
			currency = defaultCurrency
		}
		line := Line{
			ItemID:    item.ID,
			Name:      item.Name,
			Emoji:     item.Emoji,
			Count:     cl.Count,
			UnitPrice: item.PriceMinor,
			Subtotal:  item.PriceMinor * int64(cl.Count),
			Currency:  currency,
		}
		if receipt.Currency == "" {
			receipt.Currency = currency
		}
		receipt.Lines = append(receipt.Lines, line)
		receipt.Total += line.Subtotal
	}

	if receipt.Currency == "" {
		receipt.Currency = defaultCurrency
	}
	return receipt
}
