package catalog

// DefaultRestaurantName labels orders without a resolvable restaurant.
const DefaultRestaurantName = "Cafe"

const fallbackCurrency = "USD"

// Fallback returns the built-in catalog served when the commerce backend is unavailable.
func Fallback() *Tables {
	items := []Item{
		{ID: "1", Name: "Burger", Emoji: "🍔", PriceMinor: 499},
		{ID: "2", Name: "Fries", Emoji: "🍟", PriceMinor: 149},
		{ID: "3", Name: "Hotdog", Emoji: "🌭", PriceMinor: 349},
		{ID: "4", Name: "Tako", Emoji: "🐙", PriceMinor: 399},
		{ID: "5", Name: "Pizza", Emoji: "🍕", PriceMinor: 799},
		{ID: "6", Name: "Donut", Emoji: "🍩", PriceMinor: 149},
		{ID: "7", Name: "Popcorn", Emoji: "🍿", PriceMinor: 199},
		{ID: "8", Name: "Coke", Emoji: "🥤", PriceMinor: 149},
		{ID: "9", Name: "Cake", Emoji: "🍰", PriceMinor: 1099},
		{ID: "10", Name: "Icecream", Emoji: "🍦", PriceMinor: 599},
		{ID: "11", Name: "Cookie", Emoji: "🍪", PriceMinor: 399},
		{ID: "12", Name: "Flan", Emoji: "🍮", PriceMinor: 799},
	}
	for i := range items {
		items[i].Currency = fallbackCurrency
	}
	restaurants := []Restaurant{
		{ID: "1", Name: "Main Cafe", Slug: "main-cafe"},
		{ID: "2", Name: "Burger Palace", Slug: "burger-palace"},
		{ID: "3", Name: "Pizza House", Slug: "pizza-house"},
	}
	return NewTables(items, restaurants)
}
