package repository

import (
	"context"
	"errors"
	"strings"

	"kiosk/internal/domain"
)

// ErrNotFound возвращается, когда сущность не найдена
var ErrNotFound = errors.New("not found")

// ErrInsufficientStock возвращается при нехватке остатка для списания
var ErrInsufficientStock = errors.New("insufficient stock")

// ErrDuplicateTransaction вставка заказа с уже занятым transaction_id
var ErrDuplicateTransaction = errors.New("duplicate transaction id")

// ProductFilter параметры выборки каталога. Пустая категория или "all" — без фильтра.
type ProductFilter struct {
	Category string
}

// Matches проверяет категорию товара без учёта регистра
func (f ProductFilter) Matches(category string) bool {
	if f.Category == "" || strings.EqualFold(f.Category, "all") {
		return true
	}
	return strings.EqualFold(category, f.Category)
}

// ProductRepository интерфейс репозитория товаров
type ProductRepository interface {
	Create(ctx context.Context, p *domain.Product) error
	GetByID(ctx context.Context, id int64) (*domain.Product, error)
	Update(ctx context.Context, p *domain.Product) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, f ProductFilter) ([]domain.Product, error)
	// DecrementStock атомарно списывает qty единиц: либо остаток достаточен и
	// уменьшается целиком, либо возвращается ErrInsufficientStock без изменений.
	DecrementStock(ctx context.Context, id int64, qty int64) error
}

// OrderRepository интерфейс репозитория заказов
type OrderRepository interface {
	Create(ctx context.Context, o *domain.Order) error
	GetByID(ctx context.Context, id int64) (*domain.Order, error)
	GetByTransactionID(ctx context.Context, txID string) (*domain.Order, error)
	Update(ctx context.Context, o *domain.Order) error
	Delete(ctx context.Context, id int64) error
	// List возвращает заказы от новых к старым
	List(ctx context.Context) ([]domain.Order, error)
}

// TxManager абстракция транзакции: все мутации внутри fn применяются целиком или никак
type TxManager interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
