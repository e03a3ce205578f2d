package command

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	catalogdomain "github.com/tavernhq/backoffice/internal/catalog/domain"
	inventorydomain "github.com/tavernhq/backoffice/internal/inventory/domain"
	"github.com/tavernhq/backoffice/internal/order/domain"
	"github.com/tavernhq/backoffice/kafka"
)

// eventRecorder captures published events instead of producing to kafka.
type eventRecorder struct {
	placed   []kafka.OrderPlacedEvent
	refunded []kafka.OrderRefundedEvent
	lowStock []kafka.StockLowEvent
}

func (r *eventRecorder) PublishOrderPlaced(_ context.Context, event kafka.OrderPlacedEvent) error {
	r.placed = append(r.placed, event)
	return nil
}

func (r *eventRecorder) PublishOrderRefunded(_ context.Context, event kafka.OrderRefundedEvent) error {
	r.refunded = append(r.refunded, event)
	return nil
}

func (r *eventRecorder) PublishStockLow(_ context.Context, event kafka.StockLowEvent) error {
	r.lowStock = append(r.lowStock, event)
	return nil
}

// fakeStore is an in-memory FulfillmentStore and OrderRepository. InTx
// snapshots state and restores it on error, so rollback behavior is
// observable in tests.
type fakeStore struct {
	products    map[uint]catalogdomain.Product
	recipes     map[uint][]catalogdomain.Recipe
	ingredients map[uint]*inventorydomain.Ingredient
	movements   []inventorydomain.StockMovement
	orders      map[uint]*domain.Order
	stats       map[uint]customerStats

	nextOrderID    uint
	nextMovementID uint
}

type customerStats struct {
	spent  decimal.Decimal
	orders int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		products:       map[uint]catalogdomain.Product{},
		recipes:        map[uint][]catalogdomain.Recipe{},
		ingredients:    map[uint]*inventorydomain.Ingredient{},
		orders:         map[uint]*domain.Order{},
		stats:          map[uint]customerStats{},
		nextOrderID:    1,
		nextMovementID: 1,
	}
}

func (s *fakeStore) CreateOrder(_ context.Context, o *domain.Order) error {
	o.ID = s.nextOrderID
	s.nextOrderID++
	cp := *o
	s.orders[o.ID] = &cp
	return nil
}

func (s *fakeStore) UpdateOrder(_ context.Context, o *domain.Order) error {
	cp := *o
	s.orders[o.ID] = &cp
	return nil
}

func (s *fakeStore) OrderForUpdate(_ context.Context, id uint) (*domain.Order, error) {
	o, ok := s.orders[id]
	if !ok {
		return nil, domain.ErrOrderNotFound
	}
	cp := *o
	return &cp, nil
}

func (s *fakeStore) ProductsByIDs(_ context.Context, ids []uint) (map[uint]catalogdomain.Product, error) {
	out := map[uint]catalogdomain.Product{}
	for _, id := range ids {
		if p, ok := s.products[id]; ok {
			out[id] = p
		}
	}
	return out, nil
}

func (s *fakeStore) RecipesByProductIDs(_ context.Context, ids []uint) (map[uint][]catalogdomain.Recipe, error) {
	out := map[uint][]catalogdomain.Recipe{}
	for _, id := range ids {
		out[id] = s.recipes[id]
	}
	return out, nil
}

func (s *fakeStore) MovementsByReference(_ context.Context, refType inventorydomain.ReferenceType, refID uint) ([]inventorydomain.StockMovement, error) {
	var out []inventorydomain.StockMovement
	for _, mv := range s.movements {
		if mv.ReferenceType == refType && mv.ReferenceID != nil && *mv.ReferenceID == refID {
			out = append(out, mv)
		}
	}
	return out, nil
}

func (s *fakeStore) AdjustCustomerStats(_ context.Context, customerID uint, spentDelta decimal.Decimal, orderDelta int) error {
	st := s.stats[customerID]
	st.spent = st.spent.Add(spentDelta)
	if st.spent.IsNegative() {
		st.spent = decimal.Zero
	}
	st.orders += orderDelta
	if st.orders < 0 {
		st.orders = 0
	}
	s.stats[customerID] = st
	return nil
}

func (s *fakeStore) Ledger() inventorydomain.LedgerStore { return s }

func (s *fakeStore) IngredientForUpdate(_ context.Context, id uint) (*inventorydomain.Ingredient, error) {
	ing, ok := s.ingredients[id]
	if !ok {
		return nil, errors.New("ingredient not found")
	}
	cp := *ing
	return &cp, nil
}

func (s *fakeStore) UpdateIngredientStock(_ context.Context, ing *inventorydomain.Ingredient) error {
	cp := *ing
	s.ingredients[ing.ID] = &cp
	return nil
}

func (s *fakeStore) AppendMovement(_ context.Context, mv *inventorydomain.StockMovement) error {
	mv.ID = s.nextMovementID
	s.nextMovementID++
	s.movements = append(s.movements, *mv)
	return nil
}

func (s *fakeStore) MovementsAsc(_ context.Context, ingredientID uint) ([]inventorydomain.StockMovement, error) {
	var out []inventorydomain.StockMovement
	for _, mv := range s.movements {
		if mv.IngredientID == ingredientID {
			out = append(out, mv)
		}
	}
	return out, nil
}

func (s *fakeStore) InTx(_ context.Context, fn func(store domain.FulfillmentStore) error) error {
	snap := s.snapshot()
	if err := fn(s); err != nil {
		s.restore(snap)
		return err
	}
	return nil
}

func (s *fakeStore) FindByID(ctx context.Context, id uint) (*domain.Order, error) {
	return s.OrderForUpdate(ctx, id)
}

func (s *fakeStore) FindAll(_ context.Context, _ domain.OrderFilter) ([]domain.Order, error) {
	var out []domain.Order
	for _, o := range s.orders {
		out = append(out, *o)
	}
	return out, nil
}

type fakeSnapshot struct {
	ingredients    map[uint]*inventorydomain.Ingredient
	movements      []inventorydomain.StockMovement
	orders         map[uint]*domain.Order
	stats          map[uint]customerStats
	nextOrderID    uint
	nextMovementID uint
}

func (s *fakeStore) snapshot() fakeSnapshot {
	snap := fakeSnapshot{
		ingredients:    map[uint]*inventorydomain.Ingredient{},
		movements:      append([]inventorydomain.StockMovement(nil), s.movements...),
		orders:         map[uint]*domain.Order{},
		stats:          map[uint]customerStats{},
		nextOrderID:    s.nextOrderID,
		nextMovementID: s.nextMovementID,
	}
	for id, ing := range s.ingredients {
		cp := *ing
		snap.ingredients[id] = &cp
	}
	for id, o := range s.orders {
		cp := *o
		snap.orders[id] = &cp
	}
	for id, st := range s.stats {
		snap.stats[id] = st
	}
	return snap
}

func (s *fakeStore) restore(snap fakeSnapshot) {
	s.ingredients = snap.ingredients
	s.movements = snap.movements
	s.orders = snap.orders
	s.stats = snap.stats
	s.nextOrderID = snap.nextOrderID
	s.nextMovementID = snap.nextMovementID
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// seedCafe sets up two products: a latte (product 1, price 120) consuming
// 0.2 of beans (ingredient 1) and 0.25 of milk (ingredient 2), and a plain
// espresso (product 2, price 80) consuming 0.2 of beans.
func seedCafe() *fakeStore {
	s := newFakeStore()
	s.products[1] = catalogdomain.Product{ID: 1, Name: "Latte", Price: dec("120"), IsActive: true}
	s.products[2] = catalogdomain.Product{ID: 2, Name: "Espresso", Price: dec("80"), IsActive: true}
	s.recipes[1] = []catalogdomain.Recipe{
		{ProductID: 1, IngredientID: 1, QtyPerUnit: dec("0.2")},
		{ProductID: 1, IngredientID: 2, QtyPerUnit: dec("0.25")},
	}
	s.recipes[2] = []catalogdomain.Recipe{
		{ProductID: 2, IngredientID: 1, QtyPerUnit: dec("0.2")},
	}
	s.ingredients[1] = &inventorydomain.Ingredient{ID: 1, Name: "beans", Unit: "kg", CurrentStock: dec("10")}
	s.ingredients[2] = &inventorydomain.Ingredient{ID: 2, Name: "milk", Unit: "l", CurrentStock: dec("5")}
	return s
}

func TestCreateOrder_DeductsExplodedRecipes(t *testing.T) {
	store := seedCafe()
	h := NewCreateOrderHandler(store, &eventRecorder{})
	customerID := uint(7)

	order, err := h.Handle(context.Background(), CreateOrderCommand{
		Items:         []OrderLine{{ProductID: 1, Quantity: 2}, {ProductID: 2, Quantity: 1}},
		CustomerID:    &customerID,
		Discount:      dec("20"),
		Tax:           dec("10"),
		PaymentMethod: domain.MethodCash,
		ActorID:       1,
	})
	if err != nil {
		t.Fatalf("create order: %v", err)
	}

	// 2*120 + 1*80 = 320; 320 - 20 + 10 = 310
	if order.Subtotal.String() != "320" || order.Total.String() != "310" {
		t.Fatalf("expected subtotal 320 total 310, got %s / %s", order.Subtotal, order.Total)
	}
	if order.PaymentStatus != domain.PaymentPaid {
		t.Fatalf("expected status paid, got %s", order.PaymentStatus)
	}
	if len(order.Items) != 2 || order.Items[0].ProductName != "Latte" || order.Items[0].UnitPrice.String() != "120" {
		t.Fatalf("unexpected item snapshots: %+v", order.Items)
	}

	// beans: 10 - (2*0.2 + 1*0.2) = 9.4; milk: 5 - 2*0.25 = 4.5
	if got := store.ingredients[1].CurrentStock.String(); got != "9.4" {
		t.Fatalf("beans expected 9.4, got %s", got)
	}
	if got := store.ingredients[2].CurrentStock.String(); got != "4.5" {
		t.Fatalf("milk expected 4.5, got %s", got)
	}

	movs, _ := store.MovementsByReference(context.Background(), inventorydomain.RefOrder, order.ID)
	if len(movs) != 2 {
		t.Fatalf("expected 2 order movements, got %d", len(movs))
	}
	for _, mv := range movs {
		if mv.Type != inventorydomain.MovementOut {
			t.Fatalf("expected out movement, got %s", mv.Type)
		}
	}

	st := store.stats[customerID]
	if st.orders != 1 || st.spent.String() != "310" {
		t.Fatalf("customer stats expected 1 order / 310 spent, got %d / %s", st.orders, st.spent)
	}
}

func TestCreateOrder_InsufficientStockRollsBackEverything(t *testing.T) {
	store := seedCafe()
	store.ingredients[2].CurrentStock = dec("0.3") // not enough milk for 2 lattes
	h := NewCreateOrderHandler(store, &eventRecorder{})

	_, err := h.Handle(context.Background(), CreateOrderCommand{
		Items:         []OrderLine{{ProductID: 1, Quantity: 2}},
		PaymentMethod: domain.MethodCard,
	})

	var insufficient *inventorydomain.InsufficientStockError
	if !errors.As(err, &insufficient) {
		t.Fatalf("expected InsufficientStockError, got %v", err)
	}
	if insufficient.Name != "milk" {
		t.Fatalf("expected milk shortage, got %s", insufficient.Name)
	}

	if len(store.orders) != 0 {
		t.Fatalf("order must not persist on rollback, got %d", len(store.orders))
	}
	if len(store.movements) != 0 {
		t.Fatalf("no movements may persist on rollback, got %d", len(store.movements))
	}
	// Beans were deducted before milk failed; the rollback must undo it.
	if got := store.ingredients[1].CurrentStock.String(); got != "10" {
		t.Fatalf("beans must be restored to 10, got %s", got)
	}
}

func TestCreateOrder_RejectsBadInput(t *testing.T) {
	store := seedCafe()
	inactive := store.products[2]
	inactive.IsActive = false
	store.products[2] = inactive
	h := NewCreateOrderHandler(store, &eventRecorder{})
	ctx := context.Background()

	cases := []struct {
		name string
		cmd  CreateOrderCommand
	}{
		{"no items", CreateOrderCommand{PaymentMethod: domain.MethodCash}},
		{"zero quantity", CreateOrderCommand{Items: []OrderLine{{ProductID: 1, Quantity: 0}}, PaymentMethod: domain.MethodCash}},
		{"unknown product", CreateOrderCommand{Items: []OrderLine{{ProductID: 99, Quantity: 1}}, PaymentMethod: domain.MethodCash}},
		{"inactive product", CreateOrderCommand{Items: []OrderLine{{ProductID: 2, Quantity: 1}}, PaymentMethod: domain.MethodCash}},
		{"bad payment method", CreateOrderCommand{Items: []OrderLine{{ProductID: 1, Quantity: 1}}, PaymentMethod: "crypto"}},
		{"discount over subtotal", CreateOrderCommand{Items: []OrderLine{{ProductID: 1, Quantity: 1}}, Discount: dec("500"), PaymentMethod: domain.MethodCash}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := h.Handle(ctx, tc.cmd); err == nil {
				t.Fatal("expected error")
			}
		})
	}
	if len(store.orders) != 0 || len(store.movements) != 0 {
		t.Fatal("rejected commands must leave no trace")
	}
}

func placeOrder(t *testing.T, store *fakeStore, customerID *uint) *domain.Order {
	t.Helper()
	order, err := NewCreateOrderHandler(store, &eventRecorder{}).Handle(context.Background(), CreateOrderCommand{
		Items:         []OrderLine{{ProductID: 1, Quantity: 2}},
		CustomerID:    customerID,
		PaymentMethod: domain.MethodCash,
		ActorID:       1,
	})
	if err != nil {
		t.Fatalf("place order: %v", err)
	}
	return order
}

func TestRefundOrder_FullRefundRestoresStockAndStats(t *testing.T) {
	store := seedCafe()
	customerID := uint(7)
	order := placeOrder(t, store, &customerID)

	h := NewRefundOrderHandler(store, &eventRecorder{})
	refunded, err := h.Handle(context.Background(), RefundOrderCommand{
		OrderID: order.ID,
		Reason:  "wrong order",
		ActorID: 2,
	})
	if err != nil {
		t.Fatalf("refund: %v", err)
	}

	if refunded.PaymentStatus != domain.PaymentRefunded {
		t.Fatalf("expected status refunded, got %s", refunded.PaymentStatus)
	}
	if !refunded.RefundedAmount.Equal(order.Total) {
		t.Fatalf("refunded amount expected %s, got %s", order.Total, refunded.RefundedAmount)
	}

	if got := store.ingredients[1].CurrentStock.String(); got != "10" {
		t.Fatalf("beans must be restored to 10, got %s", got)
	}
	if got := store.ingredients[2].CurrentStock.String(); got != "5" {
		t.Fatalf("milk must be restored to 5, got %s", got)
	}

	credits, _ := store.MovementsByReference(context.Background(), inventorydomain.RefRefund, order.ID)
	if len(credits) != 2 {
		t.Fatalf("expected 2 refund movements, got %d", len(credits))
	}
	for _, mv := range credits {
		if mv.Type != inventorydomain.MovementIn {
			t.Fatalf("expected in movement, got %s", mv.Type)
		}
	}

	st := store.stats[customerID]
	if st.orders != 0 || !st.spent.IsZero() {
		t.Fatalf("customer stats expected zeroed, got %d / %s", st.orders, st.spent)
	}
}

func TestRefundOrder_PartialRefundLeavesStockAlone(t *testing.T) {
	store := seedCafe()
	order := placeOrder(t, store, nil)
	movementsBefore := len(store.movements)

	h := NewRefundOrderHandler(store, &eventRecorder{})
	refunded, err := h.Handle(context.Background(), RefundOrderCommand{
		OrderID: order.ID,
		Amount:  dec("40"),
		Reason:  "late delivery",
	})
	if err != nil {
		t.Fatalf("partial refund: %v", err)
	}

	if refunded.PaymentStatus != domain.PaymentPaid {
		t.Fatalf("partial refund must keep status paid, got %s", refunded.PaymentStatus)
	}
	if refunded.RefundedAmount.String() != "40" {
		t.Fatalf("refunded amount expected 40, got %s", refunded.RefundedAmount)
	}
	if len(store.movements) != movementsBefore {
		t.Fatal("partial refund must not touch stock")
	}
	if got := store.ingredients[1].CurrentStock.String(); got != "9.6" {
		t.Fatalf("beans expected 9.6, got %s", got)
	}
}

func TestRefundOrder_PartialsAccumulateToFull(t *testing.T) {
	store := seedCafe()
	order := placeOrder(t, store, nil) // total 240

	h := NewRefundOrderHandler(store, &eventRecorder{})
	if _, err := h.Handle(context.Background(), RefundOrderCommand{OrderID: order.ID, Amount: dec("100")}); err != nil {
		t.Fatalf("first partial: %v", err)
	}
	refunded, err := h.Handle(context.Background(), RefundOrderCommand{OrderID: order.ID, Amount: dec("140")})
	if err != nil {
		t.Fatalf("closing partial: %v", err)
	}

	// The second refund exhausts the remainder and flips the order over.
	if refunded.PaymentStatus != domain.PaymentRefunded {
		t.Fatalf("expected status refunded, got %s", refunded.PaymentStatus)
	}
	if got := store.ingredients[1].CurrentStock.String(); got != "10" {
		t.Fatalf("beans must be restored to 10, got %s", got)
	}
}

func TestRefundOrder_Errors(t *testing.T) {
	store := seedCafe()
	order := placeOrder(t, store, nil)
	h := NewRefundOrderHandler(store, &eventRecorder{})
	ctx := context.Background()

	if _, err := h.Handle(ctx, RefundOrderCommand{OrderID: order.ID, Amount: dec("9999")}); !errors.Is(err, domain.ErrRefundExceedsTotal) {
		t.Fatalf("expected ErrRefundExceedsTotal, got %v", err)
	}

	if _, err := h.Handle(ctx, RefundOrderCommand{OrderID: order.ID}); err != nil {
		t.Fatalf("full refund: %v", err)
	}
	if _, err := h.Handle(ctx, RefundOrderCommand{OrderID: order.ID}); !errors.Is(err, domain.ErrAlreadyRefunded) {
		t.Fatalf("expected ErrAlreadyRefunded, got %v", err)
	}

	if _, err := h.Handle(ctx, RefundOrderCommand{OrderID: 999}); !errors.Is(err, domain.ErrOrderNotFound) {
		t.Fatalf("expected ErrOrderNotFound, got %v", err)
	}
}

func TestCreateOrder_PublishesPlacedAndLowStockEvents(t *testing.T) {
	store := seedCafe()
	store.ingredients[2].MinStock = dec("5") // milk sits exactly at its minimum

	rec := &eventRecorder{}
	order, err := NewCreateOrderHandler(store, rec).Handle(context.Background(), CreateOrderCommand{
		Items:         []OrderLine{{ProductID: 1, Quantity: 2}},
		PaymentMethod: domain.MethodCash,
		ActorID:       1,
	})
	if err != nil {
		t.Fatalf("place order: %v", err)
	}

	if len(rec.placed) != 1 {
		t.Fatalf("expected 1 order placed event, got %d", len(rec.placed))
	}
	placed := rec.placed[0]
	if placed.OrderID != order.ID || placed.OrderNo != order.OrderNo {
		t.Fatalf("placed event does not match order: %+v", placed)
	}
	if !placed.TotalAmount.Equal(order.Total) || placed.ItemCount != 1 {
		t.Fatalf("expected total %s with 1 line, got %+v", order.Total, placed)
	}

	// Two lattes take milk from 5 to 4.5, under the minimum; beans stay
	// well stocked.
	if len(rec.lowStock) != 1 {
		t.Fatalf("expected 1 stock low event, got %d", len(rec.lowStock))
	}
	low := rec.lowStock[0]
	if low.IngredientID != 2 || low.Name != "milk" {
		t.Fatalf("expected alert for milk, got %+v", low)
	}
	if low.CurrentStock.String() != "4.5" || low.MinStock.String() != "5" {
		t.Fatalf("expected stock 4.5 against min 5, got %s / %s", low.CurrentStock, low.MinStock)
	}
}

func TestRefundOrder_PublishesRefundedEvent(t *testing.T) {
	store := seedCafe()
	order := placeOrder(t, store, nil)

	rec := &eventRecorder{}
	if _, err := NewRefundOrderHandler(store, rec).Handle(context.Background(), RefundOrderCommand{
		OrderID: order.ID,
		Reason:  "wrong order",
		ActorID: 2,
	}); err != nil {
		t.Fatalf("refund: %v", err)
	}

	if len(rec.refunded) != 1 {
		t.Fatalf("expected 1 order refunded event, got %d", len(rec.refunded))
	}
	event := rec.refunded[0]
	if event.OrderID != order.ID || !event.FullRefund {
		t.Fatalf("expected full refund event for order %d, got %+v", order.ID, event)
	}
	if !event.RefundAmount.Equal(order.Total) {
		t.Fatalf("refund amount expected %s, got %s", order.Total, event.RefundAmount)
	}
}
