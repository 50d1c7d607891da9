package repository

import (
	"context"
	"testing"

	"kiosk/internal/domain"
)

func TestMemoryStore_ProductCRUD(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	p := domain.Product{Name: "Rice", Category: "Grains", Price: 50, Stock: 5}
	if err := store.Create(ctx, &p); err != nil {
		t.Fatalf("create: %v", err)
	}
	if p.ID == 0 {
		t.Fatalf("no id")
	}

	got, err := store.GetByID(ctx, p.ID)
	if err != nil || got.ID != p.ID {
		t.Fatalf("get: %v", err)
	}

	p.Price = 55
	if err := store.Update(ctx, &p); err != nil {
		t.Fatalf("update: %v", err)
	}

	if err := store.Delete(ctx, p.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := store.GetByID(ctx, p.ID); err == nil {
		t.Fatalf("expected not found")
	}
}

func TestMemoryStore_DecrementStock(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

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

	// shortage leaves stock untouched
	if err := store.DecrementStock(ctx, p.ID, 3); err != ErrInsufficientStock {
		t.Fatalf("expected insufficient stock, got %v", err)
	}
	got, _ = store.GetByID(ctx, p.ID)
	if got.Stock != 2 {
		t.Fatalf("stock changed on failed decrement: %v", got.Stock)
	}

	if err := store.DecrementStock(ctx, 999, 1); err != ErrNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestMemoryTx_TransactionalCheckout(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	tx := NewMemoryTx(store)
	orders := NewMemoryOrders(store)

	// seed product
	p := domain.Product{Name: "Rice", Category: "Grains", Price: 50, Stock: 5}
	if err := store.Create(ctx, &p); err != nil {
		t.Fatal(err)
	}

	// emulate atomic checkout: decrement plus order insert
	err := tx.WithTransaction(ctx, func(ctx context.Context) error {
		if err := store.DecrementStock(ctx, p.ID, 3); err != nil {
			return err
		}
		o := domain.Order{
			TransactionID: "tx-1",
			Items:         []domain.OrderItem{{ProductID: p.ID, Name: p.Name, Quantity: 3, UnitPrice: p.Price}},
			TotalPrice:    150,
			Status:        domain.OrderStatusPending,
		}
		return orders.Create(ctx, &o)
	})
	if err != nil {
		t.Fatalf("tx: %v", err)
	}

	pp, _ := store.GetByID(context.Background(), p.ID)
	if pp.Stock != 2 {
		t.Fatalf("stock expected 2, got %v", pp.Stock)
	}
	if _, err := orders.GetByTransactionID(context.Background(), "tx-1"); err != nil {
		t.Fatalf("order by tx id: %v", err)
	}
}

func TestList_CategoryFilter(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	add := func(n, cat string) {
		p := domain.Product{Name: n, Category: cat, Price: 10, Stock: 1}
		if err := store.Create(ctx, &p); err != nil {
			t.Fatal(err)
		}
	}
	add("Rice", "Grains")
	add("Wheat", "Grains")
	add("Milk", "Dairy")

	// case-insensitive category
	list, _ := store.List(ctx, ProductFilter{Category: "grains"})
	if len(list) != 2 {
		t.Fatalf("category filter: expected 2, got %d", len(list))
	}

	// "all" in any case returns everything
	for _, c := range []string{"", "all", "ALL", "All"} {
		list, _ = store.List(ctx, ProductFilter{Category: c})
		if len(list) != 3 {
			t.Fatalf("filter %q: expected 3, got %d", c, len(list))
		}
	}

	// no match is an empty slice, not an error
	list, err := store.List(ctx, ProductFilter{Category: "Fruits"})
	if err != nil || len(list) != 0 {
		t.Fatalf("expected empty result, got %v %v", list, err)
	}
}

func TestMemoryOrders_DuplicateTransactionID(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	orders := NewMemoryOrders(store)

	first := domain.Order{TransactionID: "tx-dup", Status: domain.OrderStatusPending}
	if err := orders.Create(ctx, &first); err != nil {
		t.Fatalf("create: %v", err)
	}

	// transaction_id is unique, same as the database index
	second := domain.Order{TransactionID: "tx-dup", Status: domain.OrderStatusPending}
	if err := orders.Create(ctx, &second); err != ErrDuplicateTransaction {
		t.Fatalf("expected duplicate transaction, got %v", err)
	}

	list, _ := orders.List(ctx)
	if len(list) != 1 {
		t.Fatalf("expected 1 order, got %d", len(list))
	}
}

func TestMemoryOrders_ListNewestFirst(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	orders := NewMemoryOrders(store)

	for _, txID := range []string{"a", "b", "c"} {
		o := domain.Order{TransactionID: txID, Status: domain.OrderStatusPending}
		if err := orders.Create(ctx, &o); err != nil {
			t.Fatal(err)
		}
	}

	list, err := orders.List(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 3 {
		t.Fatalf("expected 3 orders, got %d", len(list))
	}
	for i := 1; i < len(list); i++ {
		if list[i-1].ID < list[i].ID {
			t.Fatalf("orders not newest first: %v", list)
		}
	}

	if err := orders.Delete(ctx, list[0].ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := orders.Delete(ctx, list[0].ID); err != ErrNotFound {
		t.Fatalf("expected not found on second delete, got %v", err)
	}
}
