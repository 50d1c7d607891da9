package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"kiosk/internal/domain"
	"kiosk/internal/repository"
)

var (
	// ErrInvalidStatus целевой статус вне фиксированного набора
	ErrInvalidStatus = errors.New("invalid status")
	// ErrTotalMismatch заявленная клиентом сумма расходится с пересчитанной
	ErrTotalMismatch = errors.New("total price mismatch")
)

// totalTolerance допуск на округление при сверке суммы заказа
var totalTolerance = decimal.NewFromFloat(0.01)

// deliveryEstimate срок ожидаемой доставки для заказов из чекаута
const deliveryEstimate = 72 * time.Hour

// InsufficientStockError нехватка остатка по конкретной позиции корзины
type InsufficientStockError struct {
	ProductID int64
	Name      string
	Requested int64
	Available int64
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for %s: requested %d, available %d", e.Name, e.Requested, e.Available)
}

// CartLine позиция корзины, присланная клиентом. Name информативное:
// авторитетные имя и цена берутся из каталога.
type CartLine struct {
	ProductID int64
	Name      string
	Quantity  int64
}

// CheckoutInput параметры чекаута
type CheckoutInput struct {
	Cart          []CartLine
	DeclaredTotal float64
	PaymentMethod string
	CustomerName  string
	Email         string
	Phone         string
	Street        string
	City          string
	State         string
	Zip           string
	Notes         string
}

// RecordOrderInput полный платёж заказа для идемпотентной записи
type RecordOrderInput struct {
	TransactionID    string
	Items            []domain.OrderItem
	TotalPrice       float64
	PaymentMethod    string
	CustomerName     string
	Email            string
	Phone            string
	Street           string
	City             string
	State            string
	Zip              string
	Notes            string
	ExpectedDelivery time.Time
}

// OrderService движок чекаута, идемпотентная запись заказов и машина статусов
type OrderService struct {
	products repository.ProductRepository
	orders   repository.OrderRepository
	tx       repository.TxManager
}

func NewOrderService(products repository.ProductRepository, orders repository.OrderRepository, tx repository.TxManager) *OrderService {
	return &OrderService{products: products, orders: orders, tx: tx}
}

// Checkout проверяет корзину, пересчитывает сумму по ценам каталога и в одной
// транзакции списывает остатки и создаёт заказ в статусе pending.
// Списание идёт через условный декремент, поэтому конкурентные чекауты
// по одному товару не могут оба пройти проверку и увести остаток в минус.
func (s *OrderService) Checkout(ctx context.Context, in CheckoutInput) (*domain.Order, error) {
	if len(in.Cart) == 0 {
		return nil, ErrInvalidInput
	}
	for _, line := range in.Cart {
		if line.ProductID <= 0 || line.Quantity <= 0 {
			return nil, ErrInvalidInput
		}
	}

	var created *domain.Order
	err := s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		// resolve lines against the catalog and price the order;
		// quantities accumulate per product so a split line cannot pass
		// validation and fail halfway through the decrements
		items := make([]domain.OrderItem, 0, len(in.Cart))
		requested := make(map[int64]int64)
		total := decimal.Zero
		for _, line := range in.Cart {
			p, err := s.products.GetByID(ctx, line.ProductID)
			if err != nil {
				if errors.Is(err, repository.ErrNotFound) {
					return &InsufficientStockError{ProductID: line.ProductID, Name: line.Name, Requested: line.Quantity}
				}
				return err
			}
			requested[p.ID] += line.Quantity
			if p.Stock < requested[p.ID] {
				return &InsufficientStockError{ProductID: p.ID, Name: p.Name, Requested: requested[p.ID], Available: p.Stock}
			}
			items = append(items, domain.OrderItem{
				ProductID: p.ID,
				Name:      p.Name,
				Quantity:  line.Quantity,
				UnitPrice: p.Price,
			})
			total = total.Add(decimal.NewFromFloat(p.Price).Mul(decimal.NewFromInt(line.Quantity)))
		}

		declared := decimal.NewFromFloat(in.DeclaredTotal)
		if declared.Sub(total).Abs().GreaterThan(totalTolerance) {
			return fmt.Errorf("%w: declared %s, computed %s", ErrTotalMismatch, declared.StringFixed(2), total.StringFixed(2))
		}

		// decrement after full validation; the conditional decrement still
		// guards against a concurrent checkout that won the race
		for i, line := range in.Cart {
			if err := s.products.DecrementStock(ctx, line.ProductID, line.Quantity); err != nil {
				if errors.Is(err, repository.ErrInsufficientStock) || errors.Is(err, repository.ErrNotFound) {
					it := items[i]
					return &InsufficientStockError{ProductID: it.ProductID, Name: it.Name, Requested: it.Quantity}
				}
				return err
			}
		}

		o := domain.Order{
			TransactionID:    uuid.NewString(),
			Items:            items,
			TotalPrice:       roundMoney(total),
			PaymentMethod:    in.PaymentMethod,
			Street:           in.Street,
			City:             in.City,
			State:            in.State,
			Zip:              in.Zip,
			Status:           domain.OrderStatusPending,
			CustomerName:     in.CustomerName,
			Email:            in.Email,
			Phone:            in.Phone,
			Notes:            in.Notes,
			ExpectedDelivery: time.Now().UTC().Add(deliveryEstimate),
		}
		if err := s.orders.Create(ctx, &o); err != nil {
			return err
		}
		created = &o
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// RecordOrder идемпотентная запись: по известному transaction_id возвращается
// существующий заказ, иначе вставляется новый как есть. Остатки не трогаются.
func (s *OrderService) RecordOrder(ctx context.Context, in RecordOrderInput) (*domain.Order, bool, error) {
	if len(in.Items) == 0 {
		return nil, false, ErrInvalidInput
	}
	if in.TransactionID == "" {
		in.TransactionID = uuid.NewString()
	}

	var (
		out     *domain.Order
		created bool
	)
	err := s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		existing, err := s.orders.GetByTransactionID(ctx, in.TransactionID)
		if err == nil {
			out = existing
			return nil
		}
		if !errors.Is(err, repository.ErrNotFound) {
			return err
		}

		o := domain.Order{
			TransactionID:    in.TransactionID,
			Items:            in.Items,
			TotalPrice:       in.TotalPrice,
			PaymentMethod:    in.PaymentMethod,
			Street:           in.Street,
			City:             in.City,
			State:            in.State,
			Zip:              in.Zip,
			Status:           domain.OrderStatusPending,
			CustomerName:     in.CustomerName,
			Email:            in.Email,
			Phone:            in.Phone,
			Notes:            in.Notes,
			ExpectedDelivery: in.ExpectedDelivery,
		}
		if err := s.orders.Create(ctx, &o); err != nil {
			// lost a duplicate-submission race: the unique index on
			// transaction_id rejected the insert, return the winner
			if existing, lookupErr := s.orders.GetByTransactionID(ctx, in.TransactionID); lookupErr == nil {
				out = existing
				return nil
			}
			return err
		}
		out = &o
		created = true
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	return out, created, nil
}

// SetStatus свободный переход в любой статус из фиксированного набора;
// порядок переходов не контролируется, меняется только поле статуса
func (s *OrderService) SetStatus(ctx context.Context, id int64, status string) (*domain.Order, error) {
	if id <= 0 {
		return nil, ErrInvalidInput
	}
	st := domain.OrderStatus(strings.ToLower(status))
	if !st.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}

	var updated *domain.Order
	err := s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		o, err := s.orders.GetByID(ctx, id)
		if err != nil {
			return err
		}
		o.Status = st
		if err := s.orders.Update(ctx, o); err != nil {
			return err
		}
		updated = o
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// GetOrder возвращает заказ по id
func (s *OrderService) GetOrder(ctx context.Context, id int64) (*domain.Order, error) {
	if id <= 0 {
		return nil, ErrInvalidInput
	}
	return s.orders.GetByID(ctx, id)
}

// ListOrders все заказы от новых к старым; пустой срез — не ошибка
func (s *OrderService) ListOrders(ctx context.Context) ([]domain.Order, error) {
	return s.orders.List(ctx)
}

// DeleteOrder административное удаление
func (s *OrderService) DeleteOrder(ctx context.Context, id int64) error {
	if id <= 0 {
		return ErrInvalidInput
	}
	return s.orders.Delete(ctx, id)
}

func roundMoney(d decimal.Decimal) float64 {
	f, _ := d.Round(2).Float64()
	return f
}
