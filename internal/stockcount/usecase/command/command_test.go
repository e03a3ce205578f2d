package command

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	inventorydomain "github.com/tavernhq/backoffice/internal/inventory/domain"
	"github.com/tavernhq/backoffice/internal/stockcount/domain"
	"github.com/tavernhq/backoffice/kafka"
)

// alertRecorder captures stock low events instead of producing to kafka.
type alertRecorder struct {
	events []kafka.StockLowEvent
}

func (r *alertRecorder) PublishStockLow(_ context.Context, event kafka.StockLowEvent) error {
	r.events = append(r.events, event)
	return nil
}

// countStore is an in-memory StockCountRepository, IngredientRepository and
// LedgerStore for exercising the count workflow without a database.
type countStore struct {
	counts      map[uint]*domain.StockCount
	ingredients map[uint]*inventorydomain.Ingredient
	movements   []inventorydomain.StockMovement
	nextID      uint
}

func newCountStore(ings ...*inventorydomain.Ingredient) *countStore {
	s := &countStore{
		counts:      map[uint]*domain.StockCount{},
		ingredients: map[uint]*inventorydomain.Ingredient{},
		nextID:      1,
	}
	for _, ing := range ings {
		cp := *ing
		s.ingredients[ing.ID] = &cp
	}
	return s
}

func cloneCount(sc *domain.StockCount) *domain.StockCount {
	cp := *sc
	cp.Items = append([]domain.StockCountItem(nil), sc.Items...)
	return &cp
}

func (s *countStore) Create(_ context.Context, sc *domain.StockCount) error {
	sc.ID = s.nextID
	s.nextID++
	s.counts[sc.ID] = cloneCount(sc)
	return nil
}

func (s *countStore) FindByID(_ context.Context, id uint) (*domain.StockCount, error) {
	sc, ok := s.counts[id]
	if !ok {
		return nil, domain.ErrStockCountNotFound
	}
	return cloneCount(sc), nil
}

func (s *countStore) FindAll(_ context.Context, _, _ int) ([]domain.StockCount, error) {
	var out []domain.StockCount
	for _, sc := range s.counts {
		out = append(out, *cloneCount(sc))
	}
	return out, nil
}

func (s *countStore) Update(_ context.Context, sc *domain.StockCount) error {
	s.counts[sc.ID] = cloneCount(sc)
	return nil
}

func (s *countStore) Delete(_ context.Context, id uint) error {
	delete(s.counts, id)
	return nil
}

func (s *countStore) InTx(_ context.Context, fn func(store domain.ReconcileStore) error) error {
	// Snapshot and restore on error, like a rolled-back transaction.
	snapCounts := map[uint]*domain.StockCount{}
	for id, sc := range s.counts {
		snapCounts[id] = cloneCount(sc)
	}
	snapIngs := map[uint]*inventorydomain.Ingredient{}
	for id, ing := range s.ingredients {
		cp := *ing
		snapIngs[id] = &cp
	}
	snapMovs := append([]inventorydomain.StockMovement(nil), s.movements...)

	if err := fn(s); err != nil {
		s.counts = snapCounts
		s.ingredients = snapIngs
		s.movements = snapMovs
		return err
	}
	return nil
}

func (s *countStore) StockCountForUpdate(ctx context.Context, id uint) (*domain.StockCount, error) {
	return s.FindByID(ctx, id)
}

func (s *countStore) UpdateStockCount(ctx context.Context, sc *domain.StockCount) error {
	return s.Update(ctx, sc)
}

func (s *countStore) Ledger() inventorydomain.LedgerStore { return s }

func (s *countStore) IngredientForUpdate(_ context.Context, id uint) (*inventorydomain.Ingredient, error) {
	ing, ok := s.ingredients[id]
	if !ok {
		return nil, errors.New("ingredient not found")
	}
	cp := *ing
	return &cp, nil
}

func (s *countStore) UpdateIngredientStock(_ context.Context, ing *inventorydomain.Ingredient) error {
	cp := *ing
	s.ingredients[ing.ID] = &cp
	return nil
}

func (s *countStore) AppendMovement(_ context.Context, mv *inventorydomain.StockMovement) error {
	s.movements = append(s.movements, *mv)
	return nil
}

func (s *countStore) MovementsAsc(_ context.Context, ingredientID uint) ([]inventorydomain.StockMovement, error) {
	var out []inventorydomain.StockMovement
	for _, mv := range s.movements {
		if mv.IngredientID == ingredientID {
			out = append(out, mv)
		}
	}
	return out, nil
}

// IngredientRepository methods used by count creation
func (s *countStore) FindAllIngredients(_ context.Context, _, _ int) ([]inventorydomain.Ingredient, error) {
	var out []inventorydomain.Ingredient
	for _, ing := range s.ingredients {
		out = append(out, *ing)
	}
	return out, nil
}

type ingredientRepo struct{ *countStore }

func (r ingredientRepo) Create(_ context.Context, _ *inventorydomain.Ingredient) error { return nil }
func (r ingredientRepo) FindByID(ctx context.Context, id uint) (*inventorydomain.Ingredient, error) {
	return r.IngredientForUpdate(ctx, id)
}
func (r ingredientRepo) FindAll(ctx context.Context, limit, offset int) ([]inventorydomain.Ingredient, error) {
	return r.FindAllIngredients(ctx, limit, offset)
}
func (r ingredientRepo) FindBelowMinStock(_ context.Context) ([]inventorydomain.Ingredient, error) {
	return nil, nil
}
func (r ingredientRepo) Update(ctx context.Context, ing *inventorydomain.Ingredient) error {
	return r.UpdateIngredientStock(ctx, ing)
}
func (r ingredientRepo) Delete(_ context.Context, _ uint) error { return nil }

func qty(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func seedStore() *countStore {
	return newCountStore(
		&inventorydomain.Ingredient{ID: 1, Name: "rice", Unit: "kg", CurrentStock: qty("10")},
		&inventorydomain.Ingredient{ID: 2, Name: "oil", Unit: "l", CurrentStock: qty("4")},
	)
}

func runThruApproval(t *testing.T, store *countStore, counts []CountLine) *domain.StockCount {
	t.Helper()
	ctx := context.Background()

	sc, err := NewCreateStockCountHandler(store, ingredientRepo{store}).Handle(ctx, CreateStockCountCommand{ActorID: 1})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if sc.Status != domain.CountDraft || len(sc.Items) != 2 {
		t.Fatalf("expected draft with 2 items, got %s with %d", sc.Status, len(sc.Items))
	}
	if sc.Type != domain.CountClosing {
		t.Fatalf("expected closing count by default, got %s", sc.Type)
	}

	sc, err = NewSubmitStockCountHandler(store).Handle(ctx, SubmitStockCountCommand{StockCountID: sc.ID, Counts: counts, ActorID: 1})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}

	sc, err = NewApproveStockCountHandler(store).Handle(ctx, ApproveStockCountCommand{StockCountID: sc.ID, ActorID: 2})
	if err != nil {
		t.Fatalf("approve: %v", err)
	}
	if sc.Status != domain.CountApproved || sc.ApprovedBy == nil || *sc.ApprovedBy != 2 {
		t.Fatalf("expected approved by 2, got %+v", sc)
	}
	return sc
}

func TestStockCount_ShrinkagePostsOutMovement(t *testing.T) {
	store := seedStore()
	ctx := context.Background()

	sc := runThruApproval(t, store, []CountLine{
		{IngredientID: 1, CountedQty: qty("7")}, // system 10, shrinkage of 3
		{IngredientID: 2, CountedQty: qty("4")}, // matches, no movement
	})

	completed, err := NewCompleteStockCountHandler(store, nil, &alertRecorder{}).Handle(ctx, CompleteStockCountCommand{StockCountID: sc.ID, ActorID: 2})
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if completed.Status != domain.CountCompleted {
		t.Fatalf("expected completed, got %s", completed.Status)
	}

	if len(store.movements) != 1 {
		t.Fatalf("expected exactly 1 movement, got %d", len(store.movements))
	}
	mv := store.movements[0]
	if mv.Type != inventorydomain.MovementOut || mv.Quantity.String() != "3" {
		t.Fatalf("expected out movement of 3, got %s of %s", mv.Type, mv.Quantity)
	}
	if mv.ReferenceType != inventorydomain.RefStockCount {
		t.Fatalf("expected stock_count reference, got %s", mv.ReferenceType)
	}
	if got := store.ingredients[1].CurrentStock.String(); got != "7" {
		t.Fatalf("rice expected 7 after reconcile, got %s", got)
	}
	if got := store.ingredients[2].CurrentStock.String(); got != "4" {
		t.Fatalf("oil must be untouched, got %s", got)
	}
}

func TestStockCount_SurplusPostsInMovement(t *testing.T) {
	store := seedStore()
	sc := runThruApproval(t, store, []CountLine{
		{IngredientID: 1, CountedQty: qty("12.5")},
		{IngredientID: 2, CountedQty: qty("4")},
	})

	if _, err := NewCompleteStockCountHandler(store, nil, &alertRecorder{}).Handle(context.Background(), CompleteStockCountCommand{StockCountID: sc.ID, ActorID: 2}); err != nil {
		t.Fatalf("complete: %v", err)
	}

	if len(store.movements) != 1 {
		t.Fatalf("expected exactly 1 movement, got %d", len(store.movements))
	}
	mv := store.movements[0]
	if mv.Type != inventorydomain.MovementIn || mv.Quantity.String() != "2.5" {
		t.Fatalf("expected in movement of 2.5, got %s of %s", mv.Type, mv.Quantity)
	}
	if got := store.ingredients[1].CurrentStock.String(); got != "12.5" {
		t.Fatalf("rice expected 12.5, got %s", got)
	}
}

func TestStockCount_ShrinkageBelowMinPublishesAlert(t *testing.T) {
	store := newCountStore(
		&inventorydomain.Ingredient{ID: 1, Name: "rice", Unit: "kg", CurrentStock: qty("10"), MinStock: qty("8")},
		&inventorydomain.Ingredient{ID: 2, Name: "oil", Unit: "l", CurrentStock: qty("4"), MinStock: qty("1")},
	)
	sc := runThruApproval(t, store, []CountLine{
		{IngredientID: 1, CountedQty: qty("7")}, // lands under min stock of 8
		{IngredientID: 2, CountedQty: qty("3")}, // shrinkage but still above min
	})

	rec := &alertRecorder{}
	if _, err := NewCompleteStockCountHandler(store, nil, rec).Handle(context.Background(), CompleteStockCountCommand{StockCountID: sc.ID, ActorID: 2}); err != nil {
		t.Fatalf("complete: %v", err)
	}

	if len(rec.events) != 1 {
		t.Fatalf("expected exactly 1 stock low event, got %d", len(rec.events))
	}
	event := rec.events[0]
	if event.IngredientID != 1 || event.Name != "rice" {
		t.Fatalf("expected alert for rice, got %+v", event)
	}
	if event.CurrentStock.String() != "7" || event.MinStock.String() != "8" {
		t.Fatalf("expected stock 7 against min 8, got %s / %s", event.CurrentStock, event.MinStock)
	}
}

func TestCreateStockCount_CountedAtCreation(t *testing.T) {
	store := seedStore()
	ctx := context.Background()

	counted := qty("7")
	matching := qty("4")
	sc, err := NewCreateStockCountHandler(store, ingredientRepo{store}).Handle(ctx, CreateStockCountCommand{
		Items: []CreateStockCountLine{
			{IngredientID: 1, CountedQty: &counted},
			{IngredientID: 2, CountedQty: &matching},
		},
		ActorID: 1,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	for _, item := range sc.Items {
		if item.CountedQty == nil {
			t.Fatalf("ingredient %d expected counted at creation", item.IngredientID)
		}
		if item.IngredientID == 1 && item.Variance.String() != "-3" {
			t.Fatalf("variance expected -3 at creation, got %s", item.Variance)
		}
	}

	// All lines carry counts, so an empty submit moves the session on.
	sc, err = NewSubmitStockCountHandler(store).Handle(ctx, SubmitStockCountCommand{StockCountID: sc.ID, ActorID: 1})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if sc.Status != domain.CountSubmitted {
		t.Fatalf("expected submitted, got %s", sc.Status)
	}

	if _, err := NewApproveStockCountHandler(store).Handle(ctx, ApproveStockCountCommand{StockCountID: sc.ID, ActorID: 2}); err != nil {
		t.Fatalf("approve: %v", err)
	}
	if _, err := NewCompleteStockCountHandler(store, nil, &alertRecorder{}).Handle(ctx, CompleteStockCountCommand{StockCountID: sc.ID, ActorID: 2}); err != nil {
		t.Fatalf("complete: %v", err)
	}
	if len(store.movements) != 1 || store.movements[0].Quantity.String() != "3" {
		t.Fatalf("expected one out movement of 3, got %+v", store.movements)
	}
	if got := store.ingredients[1].CurrentStock.String(); got != "7" {
		t.Fatalf("rice expected 7 after reconcile, got %s", got)
	}
}

func TestCreateStockCount_RejectsNegativeCountedLine(t *testing.T) {
	store := seedStore()
	bad := qty("-1")
	if _, err := NewCreateStockCountHandler(store, ingredientRepo{store}).Handle(context.Background(), CreateStockCountCommand{
		Items:   []CreateStockCountLine{{IngredientID: 1, CountedQty: &bad}},
		ActorID: 1,
	}); err == nil {
		t.Fatal("negative counted quantity must be rejected")
	}
}

func TestStockCount_CompleteTwiceFails(t *testing.T) {
	store := seedStore()
	sc := runThruApproval(t, store, []CountLine{
		{IngredientID: 1, CountedQty: qty("7")},
		{IngredientID: 2, CountedQty: qty("4")},
	})
	h := NewCompleteStockCountHandler(store, nil, &alertRecorder{})
	ctx := context.Background()

	if _, err := h.Handle(ctx, CompleteStockCountCommand{StockCountID: sc.ID}); err != nil {
		t.Fatalf("complete: %v", err)
	}
	if _, err := h.Handle(ctx, CompleteStockCountCommand{StockCountID: sc.ID}); !errors.Is(err, domain.ErrAlreadyCompleted) {
		t.Fatalf("expected ErrAlreadyCompleted, got %v", err)
	}
	if len(store.movements) != 1 {
		t.Fatalf("second attempt must not post movements, got %d", len(store.movements))
	}
}

func TestStockCount_CompleteRequiresApproval(t *testing.T) {
	store := seedStore()
	ctx := context.Background()

	sc, err := NewCreateStockCountHandler(store, ingredientRepo{store}).Handle(ctx, CreateStockCountCommand{ActorID: 1})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, err := NewCompleteStockCountHandler(store, nil, &alertRecorder{}).Handle(ctx, CompleteStockCountCommand{StockCountID: sc.ID}); !errors.Is(err, domain.ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition for draft, got %v", err)
	}
	if _, err := NewApproveStockCountHandler(store).Handle(ctx, ApproveStockCountCommand{StockCountID: sc.ID}); !errors.Is(err, domain.ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition approving draft, got %v", err)
	}
}

func TestCreateStockCount_TypeValidation(t *testing.T) {
	store := seedStore()
	h := NewCreateStockCountHandler(store, ingredientRepo{store})
	ctx := context.Background()

	sc, err := h.Handle(ctx, CreateStockCountCommand{Type: domain.CountOpening, ActorID: 1})
	if err != nil {
		t.Fatalf("create opening count: %v", err)
	}
	if sc.Type != domain.CountOpening {
		t.Fatalf("expected opening count, got %s", sc.Type)
	}

	if _, err := h.Handle(ctx, CreateStockCountCommand{Type: "weekly", ActorID: 1}); err == nil {
		t.Fatal("unknown count type must be rejected")
	}
}

func TestSubmitStockCount_Validation(t *testing.T) {
	store := seedStore()
	ctx := context.Background()

	sc, err := NewCreateStockCountHandler(store, ingredientRepo{store}).Handle(ctx, CreateStockCountCommand{ActorID: 1})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	h := NewSubmitStockCountHandler(store)

	cases := []struct {
		name   string
		counts []CountLine
	}{
		{"missing line", []CountLine{{IngredientID: 1, CountedQty: qty("7")}}},
		{"negative count", []CountLine{{IngredientID: 1, CountedQty: qty("-1")}, {IngredientID: 2, CountedQty: qty("4")}}},
		{"duplicate line", []CountLine{{IngredientID: 1, CountedQty: qty("7")}, {IngredientID: 1, CountedQty: qty("8")}}},
		{"foreign ingredient", []CountLine{{IngredientID: 1, CountedQty: qty("7")}, {IngredientID: 2, CountedQty: qty("4")}, {IngredientID: 9, CountedQty: qty("1")}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := h.Handle(ctx, SubmitStockCountCommand{StockCountID: sc.ID, Counts: tc.counts}); err == nil {
				t.Fatal("expected error")
			}
		})
	}

	// Re-submitting a submitted count overwrites its lines.
	if _, err := h.Handle(ctx, SubmitStockCountCommand{StockCountID: sc.ID, Counts: []CountLine{
		{IngredientID: 1, CountedQty: qty("7")},
		{IngredientID: 2, CountedQty: qty("4")},
	}}); err != nil {
		t.Fatalf("submit: %v", err)
	}
	resubmitted, err := h.Handle(ctx, SubmitStockCountCommand{StockCountID: sc.ID, Counts: []CountLine{
		{IngredientID: 1, CountedQty: qty("8")},
		{IngredientID: 2, CountedQty: qty("4")},
	}})
	if err != nil {
		t.Fatalf("resubmit: %v", err)
	}
	for _, item := range resubmitted.Items {
		if item.IngredientID == 1 && item.Variance.String() != "-2" {
			t.Fatalf("variance expected -2 after resubmit, got %s", item.Variance)
		}
	}
}

func TestDeleteStockCount_CompletedIsFrozen(t *testing.T) {
	store := seedStore()
	sc := runThruApproval(t, store, []CountLine{
		{IngredientID: 1, CountedQty: qty("10")},
		{IngredientID: 2, CountedQty: qty("4")},
	})
	ctx := context.Background()

	if _, err := NewCompleteStockCountHandler(store, nil, &alertRecorder{}).Handle(ctx, CompleteStockCountCommand{StockCountID: sc.ID}); err != nil {
		t.Fatalf("complete: %v", err)
	}

	if err := NewDeleteStockCountHandler(store).Handle(ctx, DeleteStockCountCommand{StockCountID: sc.ID}); !errors.Is(err, domain.ErrCannotDeleteCompleted) {
		t.Fatalf("expected ErrCannotDeleteCompleted, got %v", err)
	}

	draft, err := NewCreateStockCountHandler(store, ingredientRepo{store}).Handle(ctx, CreateStockCountCommand{ActorID: 1})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := NewDeleteStockCountHandler(store).Handle(ctx, DeleteStockCountCommand{StockCountID: draft.ID}); err != nil {
		t.Fatalf("delete draft: %v", err)
	}
	if _, err := store.FindByID(ctx, draft.ID); !errors.Is(err, domain.ErrStockCountNotFound) {
		t.Fatalf("expected ErrStockCountNotFound, got %v", err)
	}
}
