package service

import (
	"cliprace/backend/internal/domain"
	"cliprace/backend/internal/repository"
	"context"
	"errors"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// platformFeeRate is the flat share of every cashout kept by the platform.
var platformFeeRate = decimal.NewFromFloat(0.15)

// --- Error Definitions ---
var (
	ErrInvalidCashoutAmount = errors.New("cashout amount must be a positive number of cents")
)

// PlatformFeeCents returns floor(grossCents * 0.15). Floored, never rounded,
// so the fee can never exceed 15% of the gross amount.
func PlatformFeeCents(grossCents int64) int64 {
	if grossCents <= 0 {
		return 0
	}
	return platformFeeRate.
		Mul(decimal.NewFromInt(grossCents)).
		Floor().
		IntPart()
}

// --- Service Interface ---
type CashoutService interface {
	RequestCashout(ctx context.Context, creatorID primitive.ObjectID, grossCents int64) (*domain.Cashout, error)
	GetCashoutsByCreator(ctx context.Context, creatorID primitive.ObjectID) ([]domain.Cashout, error)
}

// --- Service Implementation ---

// cashoutService implements the CashoutService interface.
type cashoutService struct {
	cashoutRepo repository.CashoutRepository
}

// NewCashoutService creates a new instance of cashoutService.
func NewCashoutService(cashoutRepo repository.CashoutRepository) CashoutService {
	return &cashoutService{
		cashoutRepo: cashoutRepo,
	}
}

// RequestCashout records a pending withdrawal for the creator. The platform
// fee is deducted up front; net never goes below zero.
func (s *cashoutService) RequestCashout(ctx context.Context, creatorID primitive.ObjectID, grossCents int64) (*domain.Cashout, error) {
	if creatorID == primitive.NilObjectID {
		return nil, errors.New("creator ID is required")
	}
	if grossCents <= 0 {
		return nil, ErrInvalidCashoutAmount
	}

	fee := PlatformFeeCents(grossCents)
	net := grossCents - fee
	if net < 0 {
		net = 0
	}

	cashout := &domain.Cashout{
		CreatorID:        creatorID,
		GrossCents:       grossCents,
		PlatformFeeCents: fee,
		NetCents:         net,
		Status:           domain.CashoutPending,
		// ID, CreatedAt set by the repository
	}

	cashoutID, err := s.cashoutRepo.Create(ctx, cashout)
	if err != nil {
		return nil, err
	}
	cashout.ID = cashoutID
	return cashout, nil
}

// GetCashoutsByCreator retrieves the creator's cashout history.
func (s *cashoutService) GetCashoutsByCreator(ctx context.Context, creatorID primitive.ObjectID) ([]domain.Cashout, error) {
	if creatorID == primitive.NilObjectID {
		return nil, errors.New("creator ID is required")
	}
	return s.cashoutRepo.GetByCreatorID(ctx, creatorID)
}
