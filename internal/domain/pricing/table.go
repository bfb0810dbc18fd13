package pricing

// DefaultPrice is returned for any product id missing from the table.
// Unknown ids are never an error; lookups are total.
const DefaultPrice = 799

// Table maps product identifiers to canonical integer prices. It is built
// once at startup and never mutated afterwards.
type Table struct {
	prices map[string]int
}

// NewTable copies the given entries into an immutable table.
func NewTable(entries map[string]int) *Table {
	prices := make(map[string]int, len(entries))
	for id, price := range entries {
		prices[id] = price
	}
	return &Table{prices: prices}
}

// Default returns the compiled-in storefront price table.
func Default() *Table {
	return NewTable(map[string]int{
		"iphone-16":      799,
		"iphone-16-pro":  999,
		"samsung-s25":    899,
		"samsung-fold6":  1799,
		"airpods-pro":    249,
		"galaxy-watch7":  299,
		"playstation-5":  499,
		"macbook-air-m3": 1099,
	})
}

// Price returns the canonical price for a product, falling back to
// DefaultPrice when the id is unrecognized. It never fails.
func (t *Table) Price(productID string) int {
	if t == nil {
		return DefaultPrice
	}
	if price, ok := t.prices[productID]; ok {
		return price
	}
	return DefaultPrice
}

// Len reports how many explicit entries the table holds.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.prices)
}
