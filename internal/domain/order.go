package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus follows pending -> processing -> shipped -> delivered, with
// cancelled reachable from pending and processing.
type OrderStatus string

const (
	OrderPending    OrderStatus = "pending"
	OrderProcessing OrderStatus = "processing"
	OrderShipped    OrderStatus = "shipped"
	OrderDelivered  OrderStatus = "delivered"
	OrderCancelled  OrderStatus = "cancelled"
)

type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pending"
	PaymentPaid     PaymentStatus = "paid"
	PaymentFailed   PaymentStatus = "failed"
	PaymentRefunded PaymentStatus = "refunded"
)

// Order is an immutable snapshot of a checkout. Totals are fixed at
// creation and never recomputed.
type Order struct {
	ID              int64           `json:"id"`
	OrderNumber     string          `json:"orderNumber"`
	UserID          int64           `json:"userId"`
	Subtotal        decimal.Decimal `json:"subtotal"`
	ShippingCost    decimal.Decimal `json:"shippingCost"`
	Tax             decimal.Decimal `json:"tax"`
	Discount        decimal.Decimal `json:"discount"`
	Total           decimal.Decimal `json:"total"`
	Status          OrderStatus     `json:"status"`
	PaymentStatus   PaymentStatus   `json:"paymentStatus"`
	ShippingAddress string          `json:"shippingAddress"`
	ShippingPhone   string          `json:"shippingPhone,omitempty"`
	TrackingNumber  string          `json:"trackingNumber,omitempty"`
	PaymentMethod   string          `json:"paymentMethod,omitempty"`
	CustomerNotes   string          `json:"customerNotes,omitempty"`
	AdminNotes      string          `json:"adminNotes,omitempty"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
	ShippedAt       *time.Time      `json:"shippedAt,omitempty"`
	DeliveredAt     *time.Time      `json:"deliveredAt,omitempty"`
	Items           []OrderItem     `json:"items,omitempty"`
}

func (o Order) ItemCount() int {
	n := 0
	for _, item := range o.Items {
		n += item.Quantity
	}
	return n
}

// OrderItem snapshots product name/price at order time so later catalog
// changes do not alter historical orders. ProductID is nil for custom cases.
type OrderItem struct {
	ID          int64                  `json:"id"`
	OrderID     int64                  `json:"orderId"`
	ProductID   *int64                 `json:"productId,omitempty"`
	ProductName string                 `json:"productName"`
	ProductSKU  string                 `json:"productSku,omitempty"`
	Price       decimal.Decimal        `json:"price"`
	Quantity    int                    `json:"quantity"`
	CustomSpecs map[string]interface{} `json:"customSpecs,omitempty"`
	CreatedAt   time.Time              `json:"createdAt"`
}

func (i OrderItem) TotalPrice() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// ShippingInfo is collected during checkout and held in the session until
// the order is finalized.
type ShippingInfo struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Address   string `json:"address"`
	City      string `json:"city"`
	State     string `json:"state"`
	ZipCode   string `json:"zipCode"`
	Country   string `json:"country"`
	Phone     string `json:"phone"`
}

// Complete reports whether every field required to ship an order is set.
func (s ShippingInfo) Complete() bool {
	for _, v := range []string{s.Address, s.City, s.State, s.ZipCode, s.Country, s.Phone} {
		if strings.TrimSpace(v) == "" {
			return false
		}
	}
	return true
}

// FormatAddress renders the single-line address stored on the order row.
func (s ShippingInfo) FormatAddress() string {
	return s.Address + ", " + s.City + ", " + s.State + " " + s.ZipCode + ", " + s.Country
}
