package payments

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/google/uuid"
)

var ErrPaymentDeclined = errors.New("payment declined")

// ChargeRequest carries one seat's charge. Seats confirmed together share a
// TransactionID so the batch shows up as one purchase in payment history.
type ChargeRequest struct {
	BookingID     uuid.UUID
	UserID        uuid.UUID
	Amount        float64
	Method        PaymentMethod
	CardNumber    string
	TransactionID string
}

// Gateway is the payment processor boundary. The shipped implementation is a
// deterministic mock; no money moves anywhere.
type Gateway interface {
	Charge(ctx context.Context, req ChargeRequest) (*Payment, error)
	Refund(ctx context.Context, bookingID uuid.UUID) (bool, error)
}

type mockGateway struct {
	repo Repository
}

func NewMockGateway(repo Repository) Gateway {
	return &mockGateway{repo: repo}
}

// NewTransactionID mints a batch transaction id, e.g. TXN-9F86D081.
func NewTransactionID() string {
	return "TXN-" + strings.ToUpper(uuid.New().String()[:8])
}

// Charge approves or declines deterministically: card payments pass a Luhn
// check, wallet payments always succeed. The outcome is persisted either way
// so declined attempts stay visible in the ledger.
func (g *mockGateway) Charge(ctx context.Context, req ChargeRequest) (*Payment, error) {
	if !req.Method.IsValid() {
		return nil, fmt.Errorf("unsupported payment method: %s", req.Method)
	}
	if req.Amount < 0 {
		return nil, fmt.Errorf("charge amount cannot be negative")
	}

	status := StatusSuccess
	if req.Method == MethodCard && !validCard(req.CardNumber) {
		status = StatusFailed
	}

	payment := &Payment{
		BookingID:     req.BookingID,
		UserID:        req.UserID,
		Amount:        req.Amount,
		Method:        req.Method,
		Status:        status,
		TransactionID: req.TransactionID,
	}
	if err := g.repo.Create(ctx, payment); err != nil {
		return nil, fmt.Errorf("failed to record payment: %w", err)
	}

	if status == StatusFailed {
		return payment, ErrPaymentDeclined
	}
	return payment, nil
}

// Refund marks the booking's successful payment as REFUNDED. Returns false
// when the booking never had a successful payment (nothing to refund).
func (g *mockGateway) Refund(ctx context.Context, bookingID uuid.UUID) (bool, error) {
	payment, err := g.repo.GetSuccessfulByBookingID(ctx, bookingID)
	if err != nil {
		return false, err
	}
	if payment == nil {
		return false, nil
	}

	payment.Status = StatusRefunded
	if err := g.repo.Update(ctx, payment); err != nil {
		return false, fmt.Errorf("failed to mark payment refunded: %w", err)
	}
	return true, nil
}

// validCard strips spaces and dashes, then runs the Luhn checksum. Anything
// shorter than 13 digits or containing other characters is declined.
func validCard(number string) bool {
	cleaned := strings.Map(func(r rune) rune {
		if r == ' ' || r == '-' {
			return -1
		}
		return r
	}, number)

	if len(cleaned) < 13 {
		return false
	}
	for _, r := range cleaned {
		if !unicode.IsDigit(r) {
			return false
		}
	}

	sum := 0
	double := false
	for i := len(cleaned) - 1; i >= 0; i-- {
		digit := int(cleaned[i] - '0')
		if double {
			digit *= 2
			if digit > 9 {
				digit -= 9
			}
		}
		sum += digit
		double = !double
	}
	return sum%10 == 0
}
