package query

import (
	"context"
	"fmt"

	"github.com/tavernhq/backoffice/internal/inventory/domain"
	"github.com/tavernhq/backoffice/internal/inventory/ledger"
)

// ListMovementsQuery represents the query to list an ingredient's movements
type ListMovementsQuery struct {
	IngredientID uint
	Limit        int
}

// ListMovementsHandler handles list movements query
type ListMovementsHandler struct {
	ledger *ledger.Ledger
}

// NewListMovementsHandler creates a new list movements handler
func NewListMovementsHandler(l *ledger.Ledger) *ListMovementsHandler {
	return &ListMovementsHandler{ledger: l}
}

// Handle executes the list movements query, most recent first
func (h *ListMovementsHandler) Handle(ctx context.Context, q ListMovementsQuery) ([]domain.StockMovement, error) {
	if q.IngredientID == 0 {
		return nil, fmt.Errorf("ingredient_id is required")
	}

	movements, err := h.ledger.Movements(ctx, q.IngredientID, q.Limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list movements: %w", err)
	}

	return movements, nil
}
