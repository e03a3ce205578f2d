package command

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	inventorydomain "github.com/tavernhq/backoffice/internal/inventory/domain"
	"github.com/tavernhq/backoffice/internal/inventory/ledger"
	"github.com/tavernhq/backoffice/internal/order/domain"
	"github.com/tavernhq/backoffice/kafka"
	"github.com/tavernhq/backoffice/pkg/logger"
)

// EventPublisher is the slice of the kafka publisher the order commands
// need. *kafka.Publisher satisfies it and drops events when nil.
type EventPublisher interface {
	PublishOrderPlaced(ctx context.Context, event kafka.OrderPlacedEvent) error
	PublishOrderRefunded(ctx context.Context, event kafka.OrderRefundedEvent) error
	PublishStockLow(ctx context.Context, event kafka.StockLowEvent) error
}

// OrderLine is one requested product line
type OrderLine struct {
	ProductID uint
	Quantity  int
}

// CreateOrderCommand represents the command to place an order
type CreateOrderCommand struct {
	Items         []OrderLine
	CustomerID    *uint
	Discount      decimal.Decimal
	Tax           decimal.Decimal
	PaymentMethod string
	Notes         string
	ActorID       uint
}

// CreateOrderHandler handles create order command
type CreateOrderHandler struct {
	repo      domain.OrderRepository
	publisher EventPublisher
}

// NewCreateOrderHandler creates a new create order handler
func NewCreateOrderHandler(repo domain.OrderRepository, publisher EventPublisher) *CreateOrderHandler {
	return &CreateOrderHandler{repo: repo, publisher: publisher}
}

// Handle places an order. The order row, its items and every recipe-exploded
// stock deduction commit in one transaction; if any ingredient would go
// negative the whole order rolls back and nothing is deducted.
func (h *CreateOrderHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (*domain.Order, error) {
	if len(cmd.Items) == 0 {
		return nil, fmt.Errorf("order must contain at least one item")
	}
	for _, line := range cmd.Items {
		if line.ProductID == 0 {
			return nil, fmt.Errorf("product_id is required on every line")
		}
		if line.Quantity <= 0 {
			return nil, fmt.Errorf("quantity must be positive")
		}
	}
	if cmd.Discount.IsNegative() || cmd.Tax.IsNegative() {
		return nil, fmt.Errorf("discount and tax cannot be negative")
	}
	switch cmd.PaymentMethod {
	case domain.MethodCash, domain.MethodCard, domain.MethodQR:
	default:
		return nil, fmt.Errorf("unsupported payment method %q", cmd.PaymentMethod)
	}

	var (
		order    *domain.Order
		lowStock []kafka.StockLowEvent
	)

	err := h.repo.InTx(ctx, func(store domain.FulfillmentStore) error {
		productIDs := make([]uint, 0, len(cmd.Items))
		for _, line := range cmd.Items {
			productIDs = append(productIDs, line.ProductID)
		}

		products, err := store.ProductsByIDs(ctx, productIDs)
		if err != nil {
			return fmt.Errorf("failed to load products: %w", err)
		}

		subtotal := decimal.Zero
		items := make([]domain.OrderItem, 0, len(cmd.Items))
		for _, line := range cmd.Items {
			p, ok := products[line.ProductID]
			if !ok {
				return fmt.Errorf("product %d not found", line.ProductID)
			}
			if !p.IsActive {
				return fmt.Errorf("product %s is not for sale", p.Name)
			}

			lineTotal := p.Price.Mul(decimal.NewFromInt(int64(line.Quantity)))
			subtotal = subtotal.Add(lineTotal)
			items = append(items, domain.OrderItem{
				ProductID:   p.ID,
				ProductName: p.Name,
				Quantity:    line.Quantity,
				UnitPrice:   p.Price,
				LineTotal:   lineTotal,
			})
		}

		if cmd.Discount.GreaterThan(subtotal) {
			return fmt.Errorf("discount cannot exceed subtotal")
		}
		total := subtotal.Sub(cmd.Discount).Add(cmd.Tax)

		order = &domain.Order{
			OrderNo:       newOrderNo(),
			CustomerID:    cmd.CustomerID,
			Subtotal:      subtotal,
			Discount:      cmd.Discount,
			Tax:           cmd.Tax,
			Total:         total,
			PaymentMethod: cmd.PaymentMethod,
			PaymentStatus: domain.PaymentPaid,
			Notes:         cmd.Notes,
			CreatedBy:     cmd.ActorID,
			Items:         items,
		}
		if err := store.CreateOrder(ctx, order); err != nil {
			return fmt.Errorf("failed to create order: %w", err)
		}

		required, err := explodeRecipes(ctx, store, cmd.Items, productIDs)
		if err != nil {
			return err
		}

		// Lock ingredients in ascending id order so concurrent orders
		// cannot deadlock on each other.
		ingredientIDs := make([]uint, 0, len(required))
		for id := range required {
			ingredientIDs = append(ingredientIDs, id)
		}
		sort.Slice(ingredientIDs, func(i, j int) bool { return ingredientIDs[i] < ingredientIDs[j] })

		for _, ingredientID := range ingredientIDs {
			entry, err := ledger.Apply(ctx, store.Ledger(), inventorydomain.Movement{
				IngredientID:  ingredientID,
				Type:          inventorydomain.MovementOut,
				Quantity:      required[ingredientID],
				ReferenceID:   &order.ID,
				ReferenceType: inventorydomain.RefOrder,
				Notes:         "order " + order.OrderNo,
				ActorID:       cmd.ActorID,
			})
			if err != nil {
				return err
			}

			ing, err := store.Ledger().IngredientForUpdate(ctx, ingredientID)
			if err != nil {
				return fmt.Errorf("failed to reload ingredient %d: %w", ingredientID, err)
			}
			if entry.NewStock.LessThan(ing.MinStock) {
				lowStock = append(lowStock, kafka.StockLowEvent{
					IngredientID: ing.ID,
					Name:         ing.Name,
					CurrentStock: entry.NewStock,
					MinStock:     ing.MinStock,
				})
			}
		}

		if cmd.CustomerID != nil {
			if err := store.AdjustCustomerStats(ctx, *cmd.CustomerID, total, 1); err != nil {
				return fmt.Errorf("failed to update customer stats: %w", err)
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	// Events go out only after the transaction commits. Publish failures are
	// logged, never surfaced: the sale already happened.
	if err := h.publisher.PublishOrderPlaced(ctx, kafka.OrderPlacedEvent{
		OrderID:       order.ID,
		OrderNo:       order.OrderNo,
		CustomerID:    order.CustomerID,
		TotalAmount:   order.Total,
		PaymentMethod: order.PaymentMethod,
		ItemCount:     len(order.Items),
	}); err != nil {
		logger.Error(ctx).Err(err).Uint("order_id", order.ID).Msg("Failed to publish order placed event")
	}
	for _, event := range lowStock {
		if err := h.publisher.PublishStockLow(ctx, event); err != nil {
			logger.Error(ctx).Err(err).Uint("ingredient_id", event.IngredientID).Msg("Failed to publish stock low event")
		}
	}

	return order, nil
}

// explodeRecipes aggregates the ingredient quantities the ordered lines
// consume: sum over lines of line quantity times the recipe's qty per unit.
// Products without a recipe deduct nothing.
func explodeRecipes(ctx context.Context, store domain.FulfillmentStore, lines []OrderLine, productIDs []uint) (map[uint]decimal.Decimal, error) {
	recipes, err := store.RecipesByProductIDs(ctx, productIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load recipes: %w", err)
	}

	required := make(map[uint]decimal.Decimal)
	for _, line := range lines {
		qty := decimal.NewFromInt(int64(line.Quantity))
		for _, rec := range recipes[line.ProductID] {
			need := rec.QtyPerUnit.Mul(qty)
			if need.IsZero() {
				continue
			}
			required[rec.IngredientID] = required[rec.IngredientID].Add(need)
		}
	}
	return required, nil
}

func newOrderNo() string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:6])
	return fmt.Sprintf("ORD-%s-%s", time.Now().Format("20060102"), suffix)
}
