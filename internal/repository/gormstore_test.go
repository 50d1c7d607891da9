package repository

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"kiosk/internal/domain"
)

func newGormStore(t *testing.T) (*GormStore, *GormOrders) {
	t.Helper()
	store, err := OpenSQLite(filepath.Join(t.TempDir(), "kiosk.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store, NewGormOrders(store)
}

func TestGormStore_ProductCRUD(t *testing.T) {
	ctx := context.Background()
	store, _ := newGormStore(t)

	p := domain.Product{Name: "Rice", Category: "Grains", Price: 50, Stock: 5}
	if err := store.Create(ctx, &p); err != nil {
		t.Fatalf("create: %v", err)
	}
	if p.ID == 0 {
		t.Fatalf("no id")
	}

	got, err := store.GetByID(ctx, p.ID)
	if err != nil || got.Name != "Rice" {
		t.Fatalf("get: %v %v", got, err)
	}

	p.Price = 55
	if err := store.Update(ctx, &p); err != nil {
		t.Fatalf("update: %v", err)
	}
	got, _ = store.GetByID(ctx, p.ID)
	if got.Price != 55 {
		t.Fatalf("price not updated: %v", got.Price)
	}

	if err := store.Update(ctx, &domain.Product{ID: 999, Name: "Ghost", Price: 1}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("update missing: expected not found, got %v", err)
	}

	if err := store.Delete(ctx, p.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := store.GetByID(ctx, p.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if err := store.Delete(ctx, p.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("second delete: expected not found, got %v", err)
	}
}

func TestGormStore_DecrementStock(t *testing.T) {
	ctx := context.Background()
	store, _ := newGormStore(t)

	p := domain.Product{Name: "Rice", Category: "Grains", Price: 50, Stock: 5}
	if err := store.Create(ctx, &p); err != nil {
		t.Fatal(err)
	}

	if err := store.DecrementStock(ctx, p.ID, 3); err != nil {
		t.Fatalf("decrement: %v", err)
	}
	got, _ := store.GetByID(ctx, p.ID)
	if got.Stock != 2 {
		t.Fatalf("stock expected 2, got %v", got.Stock)
	}

	// shortage: zero rows affected, stock untouched
	if err := store.DecrementStock(ctx, p.ID, 3); !errors.Is(err, ErrInsufficientStock) {
		t.Fatalf("expected insufficient stock, got %v", err)
	}
	got, _ = store.GetByID(ctx, p.ID)
	if got.Stock != 2 {
		t.Fatalf("stock changed on failed decrement: %v", got.Stock)
	}

	// zero rows affected because the product does not exist at all
	if err := store.DecrementStock(ctx, 999, 1); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestGormStore_CategoryFilter(t *testing.T) {
	ctx := context.Background()
	store, _ := newGormStore(t)

	for _, p := range []domain.Product{
		{Name: "Rice", Category: "Grains", Price: 50, Stock: 5},
		{Name: "Wheat", Category: "Grains", Price: 45, Stock: 4},
		{Name: "Milk", Category: "Dairy", Price: 55, Stock: 3},
	} {
		cp := p
		if err := store.Create(ctx, &cp); err != nil {
			t.Fatal(err)
		}
	}

	list, err := store.List(ctx, ProductFilter{Category: "grains"})
	if err != nil || len(list) != 2 {
		t.Fatalf("category filter: expected 2, got %d (%v)", len(list), err)
	}
	for _, c := range []string{"", "all", "ALL"} {
		list, _ = store.List(ctx, ProductFilter{Category: c})
		if len(list) != 3 {
			t.Fatalf("filter %q: expected 3, got %d", c, len(list))
		}
	}
	list, err = store.List(ctx, ProductFilter{Category: "Fruits"})
	if err != nil || len(list) != 0 {
		t.Fatalf("expected empty result, got %v %v", list, err)
	}
}

func TestGormStore_TransactionRollback(t *testing.T) {
	ctx := context.Background()
	store, orders := newGormStore(t)

	p := domain.Product{Name: "Rice", Category: "Grains", Price: 50, Stock: 5}
	if err := store.Create(ctx, &p); err != nil {
		t.Fatal(err)
	}

	// decrement and order insert succeed, then the unit of work fails:
	// both mutations must be rolled back
	boom := errors.New("boom")
	err := store.WithTransaction(ctx, func(ctx context.Context) error {
		if err := store.DecrementStock(ctx, p.ID, 3); err != nil {
			return err
		}
		o := domain.Order{
			TransactionID: "tx-rollback",
			Items:         []domain.OrderItem{{ProductID: p.ID, Name: p.Name, Quantity: 3, UnitPrice: p.Price}},
			TotalPrice:    150,
			Status:        domain.OrderStatusPending,
		}
		if err := orders.Create(ctx, &o); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}

	got, err := store.GetByID(ctx, p.ID)
	if err != nil || got.Stock != 5 {
		t.Fatalf("stock not rolled back: %v %v", got, err)
	}
	if _, err := orders.GetByTransactionID(ctx, "tx-rollback"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("order not rolled back: %v", err)
	}
	list, _ := orders.List(ctx)
	if len(list) != 0 {
		t.Fatalf("ledger expected empty, got %d", len(list))
	}
}

func TestGormOrders_ItemsRoundTrip(t *testing.T) {
	ctx := context.Background()
	_, orders := newGormStore(t)

	items := []domain.OrderItem{
		{ProductID: 1, Name: "Rice", Quantity: 2, UnitPrice: 50},
		{ProductID: 2, Name: "Milk", Quantity: 1, UnitPrice: 55.5},
	}
	o := domain.Order{
		TransactionID: "tx-rt",
		Items:         items,
		TotalPrice:    155.5,
		PaymentMethod: "card",
		Status:        domain.OrderStatusPending,
		CustomerName:  "Jane",
	}
	if err := orders.Create(ctx, &o); err != nil {
		t.Fatalf("create: %v", err)
	}

	// the JSON serializer must reproduce the snapshot exactly
	got, err := orders.GetByID(ctx, o.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(got.Items) != len(items) {
		t.Fatalf("items length %d", len(got.Items))
	}
	for i, it := range got.Items {
		if it != items[i] {
			t.Fatalf("item %d mismatch: %+v vs %+v", i, it, items[i])
		}
	}
	if got.Status != domain.OrderStatusPending || got.TotalPrice != 155.5 {
		t.Fatalf("order fields mismatch: %+v", got)
	}
}

func TestGormOrders_ListAndLookup(t *testing.T) {
	ctx := context.Background()
	_, orders := newGormStore(t)

	for _, txID := range []string{"a", "b", "c"} {
		o := domain.Order{TransactionID: txID, Status: domain.OrderStatusPending}
		if err := orders.Create(ctx, &o); err != nil {
			t.Fatal(err)
		}
	}

	list, err := orders.List(ctx)
	if err != nil || len(list) != 3 {
		t.Fatalf("list: %v %d", err, len(list))
	}
	for i := 1; i < len(list); i++ {
		if list[i-1].ID < list[i].ID {
			t.Fatalf("orders not newest first")
		}
	}

	got, err := orders.GetByTransactionID(ctx, "b")
	if err != nil || got.TransactionID != "b" {
		t.Fatalf("lookup: %v %v", got, err)
	}
	if _, err := orders.GetByTransactionID(ctx, "zzz"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}

	// duplicate transaction_id rejected by the unique index
	dup := domain.Order{TransactionID: "b", Status: domain.OrderStatusPending}
	if err := orders.Create(ctx, &dup); err == nil {
		t.Fatalf("expected unique index violation")
	}

	if err := orders.Delete(ctx, got.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := orders.Delete(ctx, got.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected not found on second delete, got %v", err)
	}
}
