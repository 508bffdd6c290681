package usecase

import (
	"context"
	"fmt"

	"github.com/Abdurahmanit/GroupProject/rental-service/internal/domain"
	"github.com/Abdurahmanit/GroupProject/rental-service/internal/platform/logger"
	"github.com/Abdurahmanit/GroupProject/rental-service/internal/platform/metrics"
	"go.uber.org/zap"
)

const MessageFundsAdded = "Successfully added funds to wallet"

// PaymentUsecase implements wallet top ups and balance lookups.
type PaymentUsecase struct {
	payments  domain.PaymentsPort
	publisher EventPublisher
	metrics   *metrics.MetricsManager
	logger    *logger.Logger
}

func NewPaymentUsecase(payments domain.PaymentsPort, publisher EventPublisher, mm *metrics.MetricsManager, log *logger.Logger) *PaymentUsecase {
	return &PaymentUsecase{
		payments:  payments,
		publisher: publisher,
		metrics:   mm,
		logger:    log.Named("PaymentUsecase"),
	}
}

// AddFundsToWallet credits the caller's wallet and reports the new balance.
func (uc *PaymentUsecase) AddFundsToWallet(ctx context.Context, rc domain.RequestContext, amount float64) (*WalletResponse, error) {
	if err := rc.RequireIdentity(); err != nil {
		return nil, err
	}
	if amount <= 0 {
		return &WalletResponse{Envelope: envelopeFailure(fmt.Errorf("%w: amount must be greater than 0", domain.ErrValidation))}, nil
	}

	balance, err := uc.payments.AddFunds(ctx, rc.UserID(), amount)
	if err != nil {
		uc.logger.Warn("Failed to add funds", zap.String("user_id", rc.UserID()), zap.Float64("amount", amount), zap.Error(err))
		return &WalletResponse{Envelope: envelopeFailure(err)}, nil
	}

	uc.metrics.FundsAdded()
	publishEvent(ctx, uc.publisher, uc.logger, SubjectWalletFunded, map[string]interface{}{
		"guest_id": rc.UserID(),
		"amount":   amount,
		"balance":  balance,
	})
	return &WalletResponse{Envelope: envelopeOK(MessageFundsAdded), Amount: &balance}, nil
}

// Funds returns the caller's wallet balance.
func (uc *PaymentUsecase) Funds(ctx context.Context, rc domain.RequestContext) (float64, error) {
	if err := rc.RequireIdentity(); err != nil {
		return 0, err
	}
	return uc.payments.GetUserWalletAmount(ctx, rc.UserID())
}
