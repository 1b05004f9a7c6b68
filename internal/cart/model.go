package cart

import "github.com/shopspring/decimal"

type Line struct {
	ID        int             `json:"id"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"price"`
	ImageRef  string          `json:"image"`
	Quantity  int             `json:"quantity"`
}

func (l Line) Subtotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// ItemDetails is what a caller resolves from the menu before adding an item.
type ItemDetails struct {
	Name      string
	UnitPrice decimal.Decimal
	ImageRef  string
}

// Snapshot is an immutable copy of the cart handed to observers. Version
// grows by one with every committed mutation.
type Snapshot struct {
	Lines   []Line          `json:"items"`
	Total   decimal.Decimal `json:"total"`
	Count   int             `json:"count"`
	Version uint64          `json:"version"`
}

func (s Snapshot) Empty() bool {
	return len(s.Lines) == 0
}

func total(lines []Line) decimal.Decimal {
	sum := decimal.Zero
	for _, l := range lines {
		sum = sum.Add(l.Subtotal())
	}
	return sum
}

func count(lines []Line) int {
	n := 0
	for _, l := range lines {
		n += l.Quantity
	}
	return n
}
