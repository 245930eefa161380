package bookings

// ConfirmResult is the outcome of a confirmed batch.
type ConfirmResult struct {
	PNR           string    `json:"pnr"`
	TransactionID string    `json:"transaction_id"`
	Total         float64   `json:"total"`
	Bookings      []Booking `json:"bookings"`
}

// CancelResult reports the refund decided by the cancellation policy.
type CancelResult struct {
	BookingID    string  `json:"booking_id"`
	RefundAmount float64 `json:"refund_amount"`
	RefundIssued bool    `json:"refund_issued"`
}
