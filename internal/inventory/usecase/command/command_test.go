package command

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/tavernhq/backoffice/internal/inventory/domain"
	"github.com/tavernhq/backoffice/internal/inventory/ledger"
	"github.com/tavernhq/backoffice/kafka"
)

// stockStore is an in-memory LedgerRepository and IngredientRepository for
// exercising adjustments without a database.
type stockStore struct {
	ingredients map[uint]*domain.Ingredient
	movements   []domain.StockMovement
	nextID      uint
}

func newStockStore(ings ...*domain.Ingredient) *stockStore {
	s := &stockStore{ingredients: map[uint]*domain.Ingredient{}, nextID: 1}
	for _, ing := range ings {
		cp := *ing
		s.ingredients[ing.ID] = &cp
	}
	return s
}

func (s *stockStore) IngredientForUpdate(_ context.Context, id uint) (*domain.Ingredient, error) {
	ing, ok := s.ingredients[id]
	if !ok {
		return nil, errors.New("ingredient not found")
	}
	cp := *ing
	return &cp, nil
}

func (s *stockStore) UpdateIngredientStock(_ context.Context, ing *domain.Ingredient) error {
	cp := *ing
	s.ingredients[ing.ID] = &cp
	return nil
}

func (s *stockStore) AppendMovement(_ context.Context, mv *domain.StockMovement) error {
	mv.ID = s.nextID
	s.nextID++
	s.movements = append(s.movements, *mv)
	return nil
}

func (s *stockStore) MovementsAsc(_ context.Context, ingredientID uint) ([]domain.StockMovement, error) {
	var out []domain.StockMovement
	for _, mv := range s.movements {
		if mv.IngredientID == ingredientID {
			out = append(out, mv)
		}
	}
	return out, nil
}

func (s *stockStore) InTx(_ context.Context, fn func(store domain.LedgerStore) error) error {
	snapIngs := map[uint]*domain.Ingredient{}
	for id, ing := range s.ingredients {
		cp := *ing
		snapIngs[id] = &cp
	}
	snapMovs := append([]domain.StockMovement(nil), s.movements...)
	snapNext := s.nextID

	if err := fn(s); err != nil {
		s.ingredients = snapIngs
		s.movements = snapMovs
		s.nextID = snapNext
		return err
	}
	return nil
}

func (s *stockStore) MovementsByIngredient(ctx context.Context, ingredientID uint, limit int) ([]domain.StockMovement, error) {
	movs, _ := s.MovementsAsc(ctx, ingredientID)
	var out []domain.StockMovement
	for i := len(movs) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, movs[i])
	}
	return out, nil
}

func (s *stockStore) IngredientIDs(_ context.Context) ([]uint, error) {
	var ids []uint
	for id := range s.ingredients {
		ids = append(ids, id)
	}
	return ids, nil
}

// IngredientRepository methods
func (s *stockStore) Create(_ context.Context, _ *domain.Ingredient) error { return nil }
func (s *stockStore) FindByID(ctx context.Context, id uint) (*domain.Ingredient, error) {
	return s.IngredientForUpdate(ctx, id)
}
func (s *stockStore) FindAll(_ context.Context, _, _ int) ([]domain.Ingredient, error) {
	var out []domain.Ingredient
	for _, ing := range s.ingredients {
		out = append(out, *ing)
	}
	return out, nil
}
func (s *stockStore) FindBelowMinStock(_ context.Context) ([]domain.Ingredient, error) {
	return nil, nil
}
func (s *stockStore) Update(ctx context.Context, ing *domain.Ingredient) error {
	return s.UpdateIngredientStock(ctx, ing)
}
func (s *stockStore) Delete(_ context.Context, _ uint) error { return nil }

// alertRecorder captures stock low events instead of producing to kafka.
type alertRecorder struct {
	events []kafka.StockLowEvent
}

func (r *alertRecorder) PublishStockLow(_ context.Context, event kafka.StockLowEvent) error {
	r.events = append(r.events, event)
	return nil
}

func qty(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestAdjustStock_DecreaseBelowMinPublishesAlert(t *testing.T) {
	store := newStockStore(&domain.Ingredient{ID: 1, Name: "flour", Unit: "kg", CurrentStock: qty("10"), MinStock: qty("8")})
	rec := &alertRecorder{}
	h := NewAdjustStockHandler(ledger.New(store), store, rec)
	ctx := context.Background()

	entry, err := h.Handle(ctx, AdjustStockCommand{IngredientID: 1, Quantity: qty("3"), Direction: domain.DirectionDecrease, Reason: "spoilage", ActorID: 1})
	if err != nil {
		t.Fatalf("adjust: %v", err)
	}
	if entry.NewStock.String() != "7" {
		t.Fatalf("expected new stock 7, got %s", entry.NewStock)
	}

	if len(rec.events) != 1 {
		t.Fatalf("expected exactly 1 stock low event, got %d", len(rec.events))
	}
	event := rec.events[0]
	if event.IngredientID != 1 || event.Name != "flour" {
		t.Fatalf("expected alert for flour, got %+v", event)
	}
	if event.CurrentStock.String() != "7" || event.MinStock.String() != "8" {
		t.Fatalf("expected stock 7 against min 8, got %s / %s", event.CurrentStock, event.MinStock)
	}
}

func TestAdjustStock_DecreaseAboveMinStaysQuiet(t *testing.T) {
	store := newStockStore(&domain.Ingredient{ID: 1, Name: "flour", Unit: "kg", CurrentStock: qty("10"), MinStock: qty("2")})
	rec := &alertRecorder{}
	h := NewAdjustStockHandler(ledger.New(store), store, rec)

	if _, err := h.Handle(context.Background(), AdjustStockCommand{IngredientID: 1, Quantity: qty("3"), Direction: domain.DirectionDecrease, Reason: "spoilage", ActorID: 1}); err != nil {
		t.Fatalf("adjust: %v", err)
	}
	if len(rec.events) != 0 {
		t.Fatalf("expected no stock low events, got %d", len(rec.events))
	}
}

func TestAdjustStock_IncreaseNeverAlerts(t *testing.T) {
	// An ingredient already under its minimum that only gains stock must
	// not alert; the watermark is checked on decreases.
	store := newStockStore(&domain.Ingredient{ID: 1, Name: "flour", Unit: "kg", CurrentStock: qty("1"), MinStock: qty("8")})
	rec := &alertRecorder{}
	h := NewAdjustStockHandler(ledger.New(store), store, rec)

	if _, err := h.Handle(context.Background(), AdjustStockCommand{IngredientID: 1, Quantity: qty("2"), Direction: domain.DirectionIncrease, Reason: "recount", ActorID: 1}); err != nil {
		t.Fatalf("adjust: %v", err)
	}
	if len(rec.events) != 0 {
		t.Fatalf("expected no stock low events, got %d", len(rec.events))
	}
}

func TestAdjustStock_Validation(t *testing.T) {
	store := newStockStore(&domain.Ingredient{ID: 1, Name: "flour", Unit: "kg", CurrentStock: qty("10")})
	h := NewAdjustStockHandler(ledger.New(store), store, &alertRecorder{})
	ctx := context.Background()

	cases := []struct {
		name string
		cmd  AdjustStockCommand
	}{
		{"missing ingredient", AdjustStockCommand{Quantity: qty("1"), Direction: domain.DirectionDecrease, Reason: "x"}},
		{"zero quantity", AdjustStockCommand{IngredientID: 1, Quantity: qty("0"), Direction: domain.DirectionDecrease, Reason: "x"}},
		{"missing direction", AdjustStockCommand{IngredientID: 1, Quantity: qty("1"), Reason: "x"}},
		{"missing reason", AdjustStockCommand{IngredientID: 1, Quantity: qty("1"), Direction: domain.DirectionDecrease}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := h.Handle(ctx, tc.cmd); err == nil {
				t.Fatal("expected error")
			}
		})
	}

	var insufficient *domain.InsufficientStockError
	if _, err := h.Handle(ctx, AdjustStockCommand{IngredientID: 1, Quantity: qty("11"), Direction: domain.DirectionDecrease, Reason: "x"}); !errors.As(err, &insufficient) {
		t.Fatalf("expected InsufficientStockError, got %v", err)
	}
	if len(store.movements) != 0 {
		t.Fatalf("failed adjustment must not write movements, got %d", len(store.movements))
	}
}
