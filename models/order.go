package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	PaymentStatusPending = "pending"
	PaymentStatusPaid    = "paid"
	PaymentStatusFailed  = "failed"
)

type Order struct {
	ID            uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	CustomerName  string    `gorm:"not null" json:"customer_name"`
	ParentName    *string   `json:"parent_name,omitempty"`
	Phone         string    `gorm:"not null" json:"phone"`
	CafeName      string    `gorm:"not null;index" json:"cafe_name"`
	TxRef         string    `gorm:"uniqueIndex;not null" json:"tx_ref"`
	Amount        float64   `gorm:"not null" json:"amount"`
	Currency      string    `gorm:"type:varchar(10);not null" json:"currency"`
	PaymentStatus string    `gorm:"type:varchar(20);not null;default:'pending';index" json:"payment_status"`
	OrderStatus   string    `gorm:"type:varchar(32);not null;default:'Pending'" json:"order_status"`
	Delivered     bool      `gorm:"not null;default:false;index" json:"delivered"`
	Grade         string    `gorm:"type:varchar(16)" json:"grade,omitempty"`
	ScheduledAt   *time.Time
	PaidAt        *time.Time
	FailedAt      *time.Time
	CreatedAt     time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
	Items         []OrderItem    `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
}

type OrderItem struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	OrderID   uuid.UUID `gorm:"type:uuid;not null;index" json:"order_id"`
	Name      string    `gorm:"not null" json:"name"`
	Quantity  int       `gorm:"not null" json:"quantity"`
	UnitPrice float64   `gorm:"not null" json:"unit_price"`
}

type Admin struct {
	ID           uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Username     string    `gorm:"uniqueIndex;not null" json:"username"`
	PasswordHash string    `gorm:"not null" json:"-"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// OrderEvent is the payload published when a payment transition lands.
type OrderEvent struct {
	Event     string    `json:"event"` // e.g. "order.paid"
	OrderID   string    `json:"order_id"`
	TxRef     string    `json:"tx_ref"`
	CafeName  string    `json:"cafe_name"`
	Amount    float64   `json:"amount"`
	Timestamp time.Time `json:"timestamp"`
}
