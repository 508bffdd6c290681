package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Abdurahmanit/GroupProject/rental-service/internal/domain"
	"github.com/Abdurahmanit/GroupProject/rental-service/internal/platform/logger"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// WalletRepository implements domain.PaymentsPort with one document per guest.
type WalletRepository struct {
	collection *mongo.Collection
	logger     *logger.Logger
}

var _ domain.PaymentsPort = (*WalletRepository)(nil)

func NewWalletRepository(db *mongo.Database, log *logger.Logger) *WalletRepository {
	return &WalletRepository{
		collection: db.Collection(walletCollectionName),
		logger:     log.Named("WalletRepository"),
	}
}

// GetUserWalletAmount returns the guest's balance. A guest without a wallet has 0.
func (r *WalletRepository) GetUserWalletAmount(ctx context.Context, guestID string) (float64, error) {
	var doc walletDocument
	err := r.collection.FindOne(ctx, bson.M{"_id": guestID}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return 0, nil
		}
		r.logger.Error("Failed to get wallet from DB", zap.String("guest_id", guestID), zap.Error(err))
		return 0, fmt.Errorf("%w: db findone failed: %v", domain.ErrRepository, err)
	}
	return doc.Amount, nil
}

// SubtractFunds debits the wallet in a single conditional update, so the
// balance can never go below zero even under concurrent debits.
func (r *WalletRepository) SubtractFunds(ctx context.Context, guestID string, amount float64) error {
	if amount < 0 {
		return fmt.Errorf("%w: amount cannot be negative", domain.ErrValidation)
	}
	if amount == 0 {
		return nil
	}

	result, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": guestID, "amount": bson.M{"$gte": amount}},
		bson.M{
			"$inc": bson.M{"amount": -amount},
			"$set": bson.M{"updated_at": time.Now().UTC()},
		},
	)
	if err != nil {
		r.logger.Error("Failed to debit wallet", zap.String("guest_id", guestID), zap.Float64("amount", amount), zap.Error(err))
		return fmt.Errorf("%w: db update failed: %v", domain.ErrRepository, err)
	}
	if result.MatchedCount == 0 {
		r.logger.Info("Wallet debit rejected", zap.String("guest_id", guestID), zap.Float64("amount", amount))
		return domain.ErrInsufficientFunds
	}
	return nil
}

// AddFunds credits the wallet, creating it on first use, and returns the new balance.
func (r *WalletRepository) AddFunds(ctx context.Context, guestID string, amount float64) (float64, error) {
	if amount <= 0 {
		return 0, fmt.Errorf("%w: amount must be greater than 0", domain.ErrValidation)
	}

	var doc walletDocument
	err := r.collection.FindOneAndUpdate(ctx,
		bson.M{"_id": guestID},
		bson.M{
			"$inc": bson.M{"amount": amount},
			"$set": bson.M{"updated_at": time.Now().UTC()},
		},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		r.logger.Error("Failed to credit wallet", zap.String("guest_id", guestID), zap.Float64("amount", amount), zap.Error(err))
		return 0, fmt.Errorf("%w: db update failed: %v", domain.ErrRepository, err)
	}
	r.logger.Info("Wallet credited", zap.String("guest_id", guestID), zap.Float64("amount", amount), zap.Float64("balance", doc.Amount))
	return doc.Amount, nil
}
