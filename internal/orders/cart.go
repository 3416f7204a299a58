package orders

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"saleor-tma-bot/internal/catalog"
	pkgerrors "saleor-tma-bot/pkg/errors"
)

// CartLine is one {id, count} entry of a submitted cart. Count is 0 when the
// payload carried something that is not a whole number.
type CartLine struct {
	ItemID catalog.ID
	Count  int
}

type cartEntry struct {
	ID    catalog.ID      `json:"id"`
	Count json.RawMessage `json:"count"`
}

// ParseCart decodes the JSON-encoded order_data list.
func ParseCart(orderData string) ([]CartLine, error) {
	var raw []json.RawMessage
	if err := json.Unmarshal([]byte(orderData), &raw); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeMalformedPayload, err, "order_data must be a JSON list of {id, count}")
	}

	lines := make([]CartLine, 0, len(raw))
	for i, element := range raw {
		trimmed := bytes.TrimSpace(element)
		if len(trimmed) == 0 || trimmed[0] != '{' {
			return nil, pkgerrors.New(pkgerrors.CodeMalformedPayload, "order_data entries must be objects").
				WithDetails(map[string]any{"index": i})
		}
		var entry cartEntry
		if err := json.Unmarshal(trimmed, &entry); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeMalformedPayload, err, "invalid order_data entry").
				WithDetails(map[string]any{"index": i})
		}
		lines = append(lines, CartLine{ItemID: entry.ID, Count: parseCount(entry.Count)})
	}
	return lines, nil
}

func parseCount(raw json.RawMessage) int {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return 0
	}
	text := string(raw)
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return 0
		}
		text = strings.TrimSpace(s)
	}
	if n, err := strconv.ParseInt(text, 10, 32); err == nil {
		return int(n)
	}
	f, err := strconv.ParseFloat(text, 64)
	if err != nil || f != math.Trunc(f) || math.Abs(f) > math.MaxInt32 {
		return 0
	}
	return int(f)
}
