package domain

// A CartLine pairs a product with a quantity that never drops below one.
type CartLine struct {
	Product  Product
	Quantity int
}

func (l CartLine) LineTotal() int64 {
	return l.Product.EffectivePrice() * int64(l.Quantity)
}

// CartTotal sums the effective price of every line.
func CartTotal(lines []CartLine) (total int64) {
	for _, l := range lines {
		total += l.LineTotal()
	}
	return total
}
