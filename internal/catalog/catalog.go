package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// ID is a catalog identifier. Numeric and string JSON forms map to the same key.
type ID string

func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ID(strings.TrimSpace(s))
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("catalog id must be a string or number: %w", err)
	}
	*id = ID(n.String())
	return nil
}

func (id ID) String() string {
	return string(id)
}

// Item is an orderable product. PriceMinor is in minor currency units.
type Item struct {
	ID         ID     `json:"id"`
	Name       string `json:"name"`
	Emoji      string `json:"emoji,omitempty"`
	PriceMinor int64  `json:"price_minor"`
	Currency   string `json:"currency,omitempty"`
}

type Restaurant struct {
	ID          ID     `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Slug        string `json:"slug,omitempty"`
}

// Tables is an immutable pair of lookup tables preserving load order.
type Tables struct {
	items       []Item
	restaurants []Restaurant
	itemIdx     map[ID]int
	restIdx     map[ID]int
}

// NewTables indexes items and restaurants. The first entry wins for a repeated id.
func NewTables(items []Item, restaurants []Restaurant) *Tables {
	t := &Tables{
		itemIdx: make(map[ID]int, len(items)),
		restIdx: make(map[ID]int, len(restaurants)),
	}
	for _, it := range items {
		if it.ID == "" {
			continue
		}
		if _, dup := t.itemIdx[it.ID]; dup {
			continue
		}
		t.itemIdx[it.ID] = len(t.items)
		t.items = append(t.items, it)
	}
	for _, r := range restaurants {
		if r.ID == "" {
			continue
		}
		if _, dup := t.restIdx[r.ID]; dup {
			continue
		}
		t.restIdx[r.ID] = len(t.restaurants)
		t.restaurants = append(t.restaurants, r)
	}
	return t
}

func (t *Tables) Item(id ID) (Item, bool) {
	if t == nil {
		return Item{}, false
	}
	i, ok := t.itemIdx[id]
	if !ok {
		return Item{}, false
	}
	return t.items[i], true
}

func (t *Tables) Restaurant(id ID) (Restaurant, bool) {
	if t == nil {
		return Restaurant{}, false
	}
	i, ok := t.restIdx[id]
	if !ok {
		return Restaurant{}, false
	}
	return t.restaurants[i], true
}

// Items returns a copy of the items in load order.
func (t *Tables) Items() []Item {
	if t == nil {
		return nil
	}
	return append([]Item(nil), t.items...)
}

// Restaurants returns a copy of the restaurants in load order.
func (t *Tables) Restaurants() []Restaurant {
	if t == nil {
		return nil
	}
	return append([]Restaurant(nil), t.restaurants...)
}

func (t *Tables) Len() int {
	if t == nil {
		return 0
	}
	return len(t.items)
}
