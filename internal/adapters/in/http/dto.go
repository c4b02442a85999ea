package http

import "time"

// ErrorResponse is the JSON body of every failed request.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// NewOrderLine is one requested item in an order placement request.
type NewOrderLine struct {
	ItemID    string `json:"itemId"`
	Quantity  int    `json:"quantity"`
	UnitPrice int64  `json:"unitPrice"`
}

// NewOrderRequest is the body of POST /api/v1/orders.
type NewOrderRequest struct {
	StoreID     string         `json:"storeId"`
	Lines       []NewOrderLine `json:"lines"`
	ArrivalTime time.Time      `json:"arrivalTime"`
	Demand      string         `json:"demand,omitempty"`
}

// CreateOrderResponse is the body returned after a successful placement.
type CreateOrderResponse struct {
	ID string `json:"id"`
}

// ChangeStatusRequest is the body of PATCH /api/v1/orders/:orderId/status.
type ChangeStatusRequest struct {
	Status string `json:"status"`
}

// OrderResponse is one order in the store order listing.
type OrderResponse struct {
	ID          string    `json:"id"`
	CustomerID  string    `json:"customerId"`
	TotalPrice  int64     `json:"totalPrice"`
	ArrivalTime time.Time `json:"arrivalTime"`
	Demand      string    `json:"demand,omitempty"`
	Status      string    `json:"status"`
}

// NotificationResponse is one entry of the persisted notification log.
type NotificationResponse struct {
	ID        string    `json:"id"`
	OrderID   string    `json:"orderId"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}
