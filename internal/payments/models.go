package payments

import (
	"time"

	"github.com/google/uuid"
)

// Payment is an audit ledger row. Failed charge attempts are recorded too;
// they never roll back with the booking transaction.
type Payment struct {
	ID            uuid.UUID         `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	BookingID     uuid.UUID         `gorm:"type:uuid;not null;index" json:"booking_id"`
	UserID        uuid.UUID         `gorm:"type:uuid;not null;index" json:"user_id"`
	Amount        float64           `gorm:"not null" json:"amount"`
	Method        PaymentMethod     `gorm:"not null" json:"method"`
	Status        TransactionStatus `gorm:"not null" json:"status"`
	TransactionID string            `gorm:"not null;index" json:"transaction_id"`
	CreatedAt     time.Time         `json:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at"`
}

// TableName sets the table name for Payment
func (Payment) TableName() string {
	return "payments"
}

type PaymentMethod string

const (
	MethodCard      PaymentMethod = "CARD"
	MethodApplePay  PaymentMethod = "APPLE_PAY"
	MethodGooglePay PaymentMethod = "GOOGLE_PAY"
)

func (m PaymentMethod) IsValid() bool {
	switch m {
	case MethodCard, MethodApplePay, MethodGooglePay:
		return true
	}
	return false
}

type TransactionStatus string

const (
	StatusPending  TransactionStatus = "PENDING"
	StatusSuccess  TransactionStatus = "SUCCESS"
	StatusFailed   TransactionStatus = "FAILED"
	StatusRefunded TransactionStatus = "REFUNDED"
)
