package entities

// Cart is an ordered list of line items, at most one per product id.
// Every method returns a new Cart and leaves the receiver untouched.
type Cart []OrderItem

type Wishlist []Product

func (c Cart) Add(p Product) Cart {
	res := make(Cart, 0, len(c)+1)
	found := false
	for _, item := range c {
		if item.Id == p.Id {
			item.Quantity++
			found = true
		}
		res = append(res, item)
	}
	if !found {
		res = append(res, OrderItem{Product: p, Quantity: 1})
	}
	return res
}

// UpdateQuantity shifts the quantity of id by delta, clamped at zero.
// Items that reach zero are dropped; an unknown id leaves the cart as is.
func (c Cart) UpdateQuantity(id string, delta int) Cart {
	res := make(Cart, 0, len(c))
	for _, item := range c {
		if item.Id == id {
			item.Quantity = max(0, item.Quantity+delta)
		}
		if item.Quantity > 0 {
			res = append(res, item)
		}
	}
	return res
}

func (c Cart) Clear() Cart {
	return Cart{}
}

func (c Cart) Subtotal() (total int) {
	for _, item := range c {
		total += item.Price * item.Quantity
	}
	return
}

func (c Cart) Count() (count int) {
	for _, item := range c {
		count += item.Quantity
	}
	return
}

// Snapshot copies the cart so later mutations cannot reach a stored order.
func (c Cart) Snapshot() []OrderItem {
	res := make([]OrderItem, len(c))
	copy(res, c)
	return res
}

func (w Wishlist) Contains(id string) bool {
	for _, p := range w {
		if p.Id == id {
			return true
		}
	}
	return false
}

func (w Wishlist) Toggle(p Product) Wishlist {
	if w.Contains(p.Id) {
		return w.Remove(p.Id)
	}
	res := make(Wishlist, 0, len(w)+1)
	res = append(res, w...)
	return append(res, p)
}

func (w Wishlist) Remove(id string) Wishlist {
	res := make(Wishlist, 0, len(w))
	for _, p := range w {
		if p.Id != id {
			res = append(res, p)
		}
	}
	return res
}
