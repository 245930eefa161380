package payments

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// TransactionGroup is one purchase: every payment sharing a transaction id.
type TransactionGroup struct {
	TransactionID string    `json:"transaction_id"`
	Total         float64   `json:"total"`
	Payments      []Payment `json:"payments"`
}

type Service interface {
	GetUserPayments(ctx context.Context, userID uuid.UUID) ([]TransactionGroup, error)
	ListAllPayments(ctx context.Context, status TransactionStatus) ([]Payment, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// GetUserPayments groups a user's ledger rows by transaction id, newest first.
func (s *service) GetUserPayments(ctx context.Context, userID uuid.UUID) ([]TransactionGroup, error) {
	payments, err := s.repo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get payments: %w", err)
	}

	index := make(map[string]int)
	groups := make([]TransactionGroup, 0)
	for _, p := range payments {
		i, ok := index[p.TransactionID]
		if !ok {
			i = len(groups)
			index[p.TransactionID] = i
			groups = append(groups, TransactionGroup{TransactionID: p.TransactionID})
		}
		groups[i].Payments = append(groups[i].Payments, p)
		if p.Status == StatusSuccess || p.Status == StatusRefunded {
			groups[i].Total += p.Amount
		}
	}
	return groups, nil
}

func (s *service) ListAllPayments(ctx context.Context, status TransactionStatus) ([]Payment, error) {
	if status != "" && status != StatusPending && status != StatusSuccess &&
		status != StatusFailed && status != StatusRefunded {
		return nil, fmt.Errorf("unknown payment status: %s", status)
	}
	return s.repo.GetAll(ctx, status)
}
