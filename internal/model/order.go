package model

type OrderStatus string

const (
	OrderPending   OrderStatus = "PENDING"
	OrderAccepted  OrderStatus = "ACCEPTED"
	OrderPacked    OrderStatus = "PACKED"
	OrderShipped   OrderStatus = "SHIPPED"
	OrderDelivered OrderStatus = "DELIVERED"
	OrderCancelled OrderStatus = "CANCELLED"
)

type Order struct {
	OrderID         int64       `json:"orderId"`
	Customer        User        `json:"customer"`
	Store           Store       `json:"store"`
	DeliveryAddress string      `json:"deliveryAddress"`
	PaymentMethod   string      `json:"paymentMethod"`
	TotalAmount     float64     `json:"totalAmount"`
	Status          OrderStatus `json:"status"`
	Items           []OrderItem `json:"items"`
	CreatedAt       Timestamp   `json:"createdAt"`
	UpdatedAt       Timestamp   `json:"updatedAt"`
}

type OrderItem struct {
	OrderItemID  int64   `json:"orderItemId"`
	Product      Product `json:"product"`
	Quantity     int     `json:"quantity"`
	PriceAtOrder float64 `json:"priceAtOrder"`
}

type PlaceOrderRequest struct {
	StoreID       int64  `validate:"required,gt=0"`
	Address       string `validate:"required"`
	PaymentMethod string `validate:"required"`
}
