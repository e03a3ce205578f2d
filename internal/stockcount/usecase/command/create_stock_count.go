package command

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	inventorydomain "github.com/tavernhq/backoffice/internal/inventory/domain"
	"github.com/tavernhq/backoffice/internal/stockcount/domain"
)

// CreateStockCountLine selects one ingredient for the session. CountedQty is
// optional: when present the line is counted on the spot and its variance is
// fixed at creation, so a one-shot count can go straight to submit.
type CreateStockCountLine struct {
	IngredientID uint
	CountedQty   *decimal.Decimal
}

// CreateStockCountCommand opens a count session. An empty Items snapshots
// every active ingredient.
type CreateStockCountCommand struct {
	Type    domain.CountType
	Items   []CreateStockCountLine
	Notes   string
	ActorID uint
}

// CreateStockCountHandler handles create stock count command
type CreateStockCountHandler struct {
	repo        domain.StockCountRepository
	ingredients inventorydomain.IngredientRepository
}

// NewCreateStockCountHandler creates a new create stock count handler
func NewCreateStockCountHandler(repo domain.StockCountRepository, ingredients inventorydomain.IngredientRepository) *CreateStockCountHandler {
	return &CreateStockCountHandler{repo: repo, ingredients: ingredients}
}

// Handle opens a draft count with SystemQty snapshot from current stock
func (h *CreateStockCountHandler) Handle(ctx context.Context, cmd CreateStockCountCommand) (*domain.StockCount, error) {
	countType := cmd.Type
	switch countType {
	case "":
		countType = domain.CountClosing
	case domain.CountOpening, domain.CountClosing:
	default:
		return nil, fmt.Errorf("unknown count type %q", cmd.Type)
	}

	var items []domain.StockCountItem
	if len(cmd.Items) == 0 {
		snapshot, err := h.ingredients.FindAll(ctx, 1000, 0)
		if err != nil {
			return nil, fmt.Errorf("failed to load ingredients: %w", err)
		}
		for _, ing := range snapshot {
			items = append(items, domain.StockCountItem{
				IngredientID: ing.ID,
				SystemQty:    ing.CurrentStock,
			})
		}
	} else {
		seen := make(map[uint]bool, len(cmd.Items))
		for _, line := range cmd.Items {
			if seen[line.IngredientID] {
				return nil, fmt.Errorf("duplicate ingredient %d", line.IngredientID)
			}
			seen[line.IngredientID] = true

			ing, err := h.ingredients.FindByID(ctx, line.IngredientID)
			if err != nil {
				return nil, fmt.Errorf("failed to load ingredient %d: %w", line.IngredientID, err)
			}

			item := domain.StockCountItem{
				IngredientID: ing.ID,
				SystemQty:    ing.CurrentStock,
			}
			if line.CountedQty != nil {
				if line.CountedQty.IsNegative() {
					return nil, fmt.Errorf("negative count for ingredient %d", line.IngredientID)
				}
				q := *line.CountedQty
				item.CountedQty = &q
				item.Variance = q.Sub(item.SystemQty)
			}
			items = append(items, item)
		}
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("nothing to count")
	}

	sc := &domain.StockCount{
		CountNo:   newCountNo(),
		Type:      countType,
		Status:    domain.CountDraft,
		Notes:     cmd.Notes,
		CreatedBy: cmd.ActorID,
		Items:     items,
	}
	if err := h.repo.Create(ctx, sc); err != nil {
		return nil, fmt.Errorf("failed to create stock count: %w", err)
	}

	return sc, nil
}

func newCountNo() string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:6])
	return fmt.Sprintf("SC-%s-%s", time.Now().Format("20060102"), suffix)
}
