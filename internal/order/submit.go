package order

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/MikeMC777/ordenes-storefront/internal/journal"
	"github.com/MikeMC777/ordenes-storefront/internal/logging"
	"github.com/MikeMC777/ordenes-storefront/internal/product"
)

// Creator issues the order-creation call. idempotencyKey is sent along so the
// backend can drop duplicates; the client never retries either way.
type Creator interface {
	CreateOrder(ctx context.Context, req CreateRequest, idempotencyKey string) (*Order, error)
}

type SubmitInput struct {
	UserID          int64
	ProductID       int64
	Quantity        int
	DeliveryAddress string
	// Stock is the snapshot the quantity was chosen against.
	Stock product.Stock
}

type Submitter struct {
	api     Creator
	journal journal.Sink
	logger  *zap.Logger
}

func NewSubmitter(api Creator, j journal.Sink, logger *zap.Logger) *Submitter {
	if j == nil {
		j = journal.Nop
	}
	return &Submitter{api: api, journal: j, logger: logging.OrNop(logger)}
}

// ValidateForm checks the fields that need no stock snapshot.
func ValidateForm(deliveryAddress string, quantity int) error {
	if strings.TrimSpace(deliveryAddress) == "" {
		return ErrMissingAddress
	}
	if quantity < 1 {
		return ErrInvalidQuantity
	}
	return nil
}

// Validate runs the checks Submit performs before any network call.
func Validate(in SubmitInput) error {
	if err := ValidateForm(in.DeliveryAddress, in.Quantity); err != nil {
		return err
	}
	if !product.CanSubmit(in.Quantity, in.Stock) {
		return ErrInsufficientStock
	}
	return nil
}

// Submit places one order. It issues at most one request.
func (s *Submitter) Submit(ctx context.Context, in SubmitInput) (*Order, error) {
	if err := Validate(in); err != nil {
		return nil, err
	}

	req := CreateRequest{
		UserID:          in.UserID,
		ProductID:       in.ProductID,
		Quantity:        in.Quantity,
		DeliveryAddress: strings.TrimSpace(in.DeliveryAddress),
	}
	key := uuid.NewString()
	o, err := s.api.CreateOrder(ctx, req, key)
	if err != nil {
		s.logger.Error("create order failed",
			zap.Int64("product_id", in.ProductID),
			zap.Int("quantity", in.Quantity),
			zap.String("idempotency_key", key),
			zap.Error(err))
		return nil, &BackendError{Op: "create order", Err: err}
	}

	s.logger.Info("order placed",
		zap.Int64("order_id", o.ID),
		zap.Int64("product_id", in.ProductID),
		zap.Int("quantity", in.Quantity))
	journal.Record(ctx, s.journal, s.logger, journal.Event{
		Kind:      journal.KindSubmitted,
		OrderID:   o.ID,
		UserID:    in.UserID,
		ProductID: in.ProductID,
		Quantity:  in.Quantity,
		Detail:    key,
	})
	return o, nil
}
