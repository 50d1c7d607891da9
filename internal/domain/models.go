package domain

import "time"

// Product товар каталога киоска
type Product struct {
	ID          int64     `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" gorm:"size:100;not null"`
	Price       float64   `json:"price" gorm:"not null"`
	Category    string    `json:"category" gorm:"size:50;not null"`
	Image       string    `json:"image" gorm:"size:255"`
	Description string    `json:"description" gorm:"type:text"`
	Stock       int64     `json:"stock" gorm:"not null;default:0"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// OrderStatus тип статуса заказа
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

// Valid сообщает, входит ли значение в фиксированный набор статусов
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusProcessing, OrderStatusShipped,
		OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

// OrderItem позиция заказа: снимок товара на момент покупки
type OrderItem struct {
	ProductID int64   `json:"product_id"`
	Name      string  `json:"name"`
	Quantity  int64   `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
}

// Order сущность заказа
type Order struct {
	ID               int64       `json:"id" gorm:"primaryKey"`
	TransactionID    string      `json:"transaction_id" gorm:"size:64;uniqueIndex;not null"`
	Items            []OrderItem `json:"items" gorm:"serializer:json;type:text"`
	TotalPrice       float64     `json:"total_price" gorm:"not null"`
	PaymentMethod    string      `json:"payment_method" gorm:"size:50"`
	Street           string      `json:"street" gorm:"size:120"`
	City             string      `json:"city" gorm:"size:60"`
	State            string      `json:"state" gorm:"size:60"`
	Zip              string      `json:"zip" gorm:"size:20"`
	Status           OrderStatus `json:"status" gorm:"size:20;not null"`
	CustomerName     string      `json:"customer_name" gorm:"size:100"`
	Email            string      `json:"email" gorm:"size:120"`
	Phone            string      `json:"phone" gorm:"size:30"`
	Notes            string      `json:"notes" gorm:"type:text"`
	ExpectedDelivery time.Time   `json:"expected_delivery"`
	CreatedAt        time.Time   `json:"created_at"`
	UpdatedAt        time.Time   `json:"updated_at"`
}
