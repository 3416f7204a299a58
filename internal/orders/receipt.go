package orders

import (
	"fmt"
	"strings"

	"saleor-tma-bot/internal/catalog"
)

// EmptyBody replaces the receipt body when no line survives.
const EmptyBody = "Nothing"

// Line is a priced cart line.
type Line struct {
	ItemID    catalog.ID
	Name      string
	Emoji     string
	Count     int
	UnitPrice int64
	Subtotal  int64
	Currency  string
}

func (l Line) String() string {
	return fmt.Sprintf("%dx %s %s", l.Count, l.Name, FormatPrice(l.UnitPrice, l.Currency))
}

// Receipt is the priced summary of a cart. It is a value; nothing mutates it after
// Format returns.
type Receipt struct {
	Restaurant string
	Lines      []Line
	Total      int64
	Currency   string
	Comment    string
}

func (r Receipt) Empty() bool {
	return len(r.Lines) == 0
}

// Body renders every line followed by a newline, or EmptyBody.
func (r Receipt) Body() string {
	if r.Empty() {
		return EmptyBody
	}
	var b strings.Builder
	for _, line := range r.Lines {
		b.WriteString(line.String())
		b.WriteByte('\n')
	}
	return b.String()
}

func (r Receipt) LineStrings() []string {
	out := make([]string, len(r.Lines))
	for i, line := range r.Lines {
		out[i] = line.String()
	}
	return out
}

func (r Receipt) FormattedTotal() string {
	return FormatPrice(r.Total, r.Currency)
}
