package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type Category struct {
	ID          int64
	Name        string
	Description string
	CreatedAt   time.Time
}

type Product struct {
	ID            int64
	Name          string
	CategoryID    int64
	CategoryName  string
	Price         decimal.Decimal
	StockQuantity int
	Description   string
	ImageURL      string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

type Customer struct {
	ID           int64
	FirstName    string
	LastName     string
	Email        string
	PasswordHash string
	Phone        string
	Address      string
	City         string
	State        string
	ZipCode      string
	Country      string
	Role         string
	CreatedAt    time.Time
}

// CartLine is a cart entry joined with the product's current name and price.
// Subtotal is always quantity times the live price; nothing is locked in
// until checkout freezes it into an OrderItem.
type CartLine struct {
	ID          int64
	CustomerID  int64
	ProductID   int64
	ProductName string
	UnitPrice   decimal.Decimal
	Quantity    int
	Subtotal    decimal.Decimal
	AddedAt     time.Time
}

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

type Order struct {
	ID              int64
	CustomerID      int64
	CustomerName    string
	CustomerEmail   string
	OrderDate       time.Time
	TotalAmount     decimal.Decimal
	Status          OrderStatus
	ShippingAddress string
	PaymentMethod   string
	Items           []OrderItem
}

// OrderItem freezes one product line at checkout time: UnitPrice is the
// price snapshot, decoupled from the live product price.
type OrderItem struct {
	ID          int64
	OrderID     int64
	ProductID   int64
	ProductName string
	Quantity    int
	UnitPrice   decimal.Decimal
	Subtotal    decimal.Decimal
}

type Review struct {
	ID         int64
	ProductID  int64
	CustomerID int64
	Rating     int
	Comment    string
	ReviewDate time.Time
}

// --- Analytics rows ---

type DailySales struct {
	Date    string
	Orders  int
	Revenue decimal.Decimal
}

type TopProduct struct {
	ProductID   int64
	ProductName string
	TotalSold   int
	Revenue     decimal.Decimal
}

type CategorySales struct {
	CategoryName string
	Orders       int
	Revenue      decimal.Decimal
}

// ResultSet is the tabular output of the ad-hoc query gateway: named columns
// and row values rendered as strings.
type ResultSet struct {
	Columns []string
	Rows    [][]string
}
