package model

type Cart struct {
	CartID      int64      `json:"cartId"`
	Items       []CartItem `json:"items"`
	TotalAmount float64    `json:"totalAmount"`
}

type CartItem struct {
	ItemID      int64   `json:"itemId"`
	ProductID   int64   `json:"productId"`
	ProductName string  `json:"productName"`
	Price       float64 `json:"price"`
	Quantity    int     `json:"quantity"`
	ImageURL    string  `json:"imageUrl"`
	StoreID     int64   `json:"storeId"`
	StoreName   string  `json:"storeName"`
}

// LineTotal is price × quantity.
func (i CartItem) LineTotal() float64 {
	return i.Price * float64(i.Quantity)
}

type AddToCartRequest struct {
	ProductID int64 `json:"productId" validate:"required,gt=0"`
	Quantity  int   `json:"quantity" validate:"required,gt=0"`
}

// ComputedTotal is the sum of line totals. It should equal TotalAmount.
func (c Cart) ComputedTotal() float64 {
	var total float64
	for _, item := range c.Items {
		total += item.LineTotal()
	}
	return total
}

// ItemCount is the sum of quantities.
func (c Cart) ItemCount() int {
	n := 0
	for _, item := range c.Items {
		n += item.Quantity
	}
	return n
}
