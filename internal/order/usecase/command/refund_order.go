package command

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	inventorydomain "github.com/tavernhq/backoffice/internal/inventory/domain"
	"github.com/tavernhq/backoffice/internal/inventory/ledger"
	"github.com/tavernhq/backoffice/internal/order/domain"
	"github.com/tavernhq/backoffice/kafka"
	"github.com/tavernhq/backoffice/pkg/logger"
)

// RefundOrderCommand represents the command to refund an order. A zero
// Amount means a full refund of what remains refundable.
type RefundOrderCommand struct {
	OrderID uint
	Amount  decimal.Decimal
	Reason  string
	ActorID uint
}

// RefundOrderHandler handles refund order command
type RefundOrderHandler struct {
	repo      domain.OrderRepository
	publisher EventPublisher
}

// NewRefundOrderHandler creates a new refund order handler
func NewRefundOrderHandler(repo domain.OrderRepository, publisher EventPublisher) *RefundOrderHandler {
	return &RefundOrderHandler{repo: repo, publisher: publisher}
}

// Handle refunds an order. A full refund re-credits every ingredient the
// order deducted, by replaying the order's own ledger movements rather than
// the current recipe, so later recipe edits cannot skew the reversal. A
// partial refund adjusts money only; goods already left the kitchen.
func (h *RefundOrderHandler) Handle(ctx context.Context, cmd RefundOrderCommand) (*domain.Order, error) {
	if cmd.OrderID == 0 {
		return nil, fmt.Errorf("order_id is required")
	}
	if cmd.Amount.IsNegative() {
		return nil, fmt.Errorf("refund amount cannot be negative")
	}

	var (
		order *domain.Order
		full  bool
	)

	err := h.repo.InTx(ctx, func(store domain.FulfillmentStore) error {
		var err error
		order, err = store.OrderForUpdate(ctx, cmd.OrderID)
		if err != nil {
			return err
		}
		if order.PaymentStatus == domain.PaymentRefunded {
			return domain.ErrAlreadyRefunded
		}

		refundable := order.Total.Sub(order.RefundedAmount)
		amount := cmd.Amount
		if amount.IsZero() {
			amount = refundable
		}
		if amount.GreaterThan(refundable) {
			return domain.ErrRefundExceedsTotal
		}

		full = amount.Equal(refundable)
		if full {
			if err := recreditStock(ctx, store, order, cmd.ActorID); err != nil {
				return err
			}
			order.PaymentStatus = domain.PaymentRefunded

			if order.CustomerID != nil {
				if err := store.AdjustCustomerStats(ctx, *order.CustomerID, order.Total.Neg(), -1); err != nil {
					return fmt.Errorf("failed to update customer stats: %w", err)
				}
			}
		}

		now := time.Now()
		order.RefundedAmount = order.RefundedAmount.Add(amount)
		order.RefundedAt = &now
		order.RefundedBy = &cmd.ActorID
		order.RefundReason = cmd.Reason

		if err := store.UpdateOrder(ctx, order); err != nil {
			return fmt.Errorf("failed to update order: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := h.publisher.PublishOrderRefunded(ctx, kafka.OrderRefundedEvent{
		OrderID:      order.ID,
		OrderNo:      order.OrderNo,
		RefundAmount: order.RefundedAmount,
		FullRefund:   full,
	}); err != nil {
		logger.Error(ctx).Err(err).Uint("order_id", order.ID).Msg("Failed to publish order refunded event")
	}

	return order, nil
}

// recreditStock reverses the order's out movements one for one
func recreditStock(ctx context.Context, store domain.FulfillmentStore, order *domain.Order, actorID uint) error {
	movements, err := store.MovementsByReference(ctx, inventorydomain.RefOrder, order.ID)
	if err != nil {
		return fmt.Errorf("failed to load order movements: %w", err)
	}

	for _, mv := range movements {
		if mv.Type != inventorydomain.MovementOut {
			continue
		}
		if _, err := ledger.Apply(ctx, store.Ledger(), inventorydomain.Movement{
			IngredientID:  mv.IngredientID,
			Type:          inventorydomain.MovementIn,
			Quantity:      mv.Quantity,
			ReferenceID:   &order.ID,
			ReferenceType: inventorydomain.RefRefund,
			Notes:         "refund " + order.OrderNo,
			ActorID:       actorID,
		}); err != nil {
			return err
		}
	}
	return nil
}
