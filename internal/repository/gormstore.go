package repository

import (
	"context"
	"errors"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"kiosk/internal/domain"
)

// GormStore хранилище на SQLite через GORM. Реализует ProductRepository и TxManager;
// заказы — через обёртку GormOrders (имена методов Create/Update совпадают).
type GormStore struct {
	db *gorm.DB
}

var (
	_ ProductRepository = (*GormStore)(nil)
	_ TxManager         = (*GormStore)(nil)
)

// OpenSQLite открывает файл базы и накатывает схему
func OpenSQLite(dsn string) (*GormStore, error) {
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(&domain.Product{}, &domain.Order{}); err != nil {
		return nil, err
	}
	return &GormStore{db: db}, nil
}

func (s *GormStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// gormTxKey помечает контекст открытой транзакцией
type gormTxKey struct{}

// conn возвращает транзакционное соединение из контекста либо базовое
func (s *GormStore) conn(ctx context.Context) *gorm.DB {
	if tx, ok := ctx.Value(gormTxKey{}).(*gorm.DB); ok {
		return tx
	}
	return s.db.WithContext(ctx)
}

// WithTransaction открывает транзакцию БД; ошибка из fn откатывает все мутации
func (s *GormStore) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(context.WithValue(ctx, gormTxKey{}, tx))
	})
}

// ProductRepository implementation
func (s *GormStore) Create(ctx context.Context, p *domain.Product) error {
	return s.conn(ctx).Create(p).Error
}

func (s *GormStore) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	var p domain.Product
	if err := s.conn(ctx).First(&p, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (s *GormStore) Update(ctx context.Context, p *domain.Product) error {
	res := s.conn(ctx).Model(&domain.Product{}).Where("id = ?", p.ID).Updates(map[string]any{
		"name":        p.Name,
		"price":       p.Price,
		"category":    p.Category,
		"image":       p.Image,
		"description": p.Description,
		"stock":       p.Stock,
	})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *GormStore) Delete(ctx context.Context, id int64) error {
	res := s.conn(ctx).Delete(&domain.Product{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *GormStore) List(ctx context.Context, f ProductFilter) ([]domain.Product, error) {
	q := s.conn(ctx).Model(&domain.Product{}).Order("id")
	if !f.Matches("") {
		// filter set and not "all"
		q = q.Where("LOWER(category) = LOWER(?)", f.Category)
	}
	out := make([]domain.Product, 0)
	if err := q.Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// DecrementStock условный UPDATE: строка меняется только при достаточном остатке,
// нехватка и отсутствие товара различаются по числу затронутых строк
func (s *GormStore) DecrementStock(ctx context.Context, id int64, qty int64) error {
	res := s.conn(ctx).Model(&domain.Product{}).
		Where("id = ? AND stock >= ?", id, qty).
		UpdateColumn("stock", gorm.Expr("stock - ?", qty))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		var n int64
		if err := s.conn(ctx).Model(&domain.Product{}).Where("id = ?", id).Count(&n).Error; err != nil {
			return err
		}
		if n == 0 {
			return ErrNotFound
		}
		return ErrInsufficientStock
	}
	return nil
}

// GormOrders реализация OrderRepository поверх того же соединения
type GormOrders struct{ store *GormStore }

func NewGormOrders(store *GormStore) *GormOrders { return &GormOrders{store: store} }

var _ OrderRepository = (*GormOrders)(nil)

func (r *GormOrders) Create(ctx context.Context, o *domain.Order) error {
	return r.store.conn(ctx).Create(o).Error
}

func (r *GormOrders) GetByID(ctx context.Context, id int64) (*domain.Order, error) {
	var o domain.Order
	if err := r.store.conn(ctx).First(&o, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &o, nil
}

func (r *GormOrders) GetByTransactionID(ctx context.Context, txID string) (*domain.Order, error) {
	var o domain.Order
	if err := r.store.conn(ctx).Where("transaction_id = ?", txID).First(&o).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &o, nil
}

func (r *GormOrders) Update(ctx context.Context, o *domain.Order) error {
	res := r.store.conn(ctx).Model(&domain.Order{}).Where("id = ?", o.ID).Updates(map[string]any{
		"status": o.Status,
		"notes":  o.Notes,
	})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *GormOrders) Delete(ctx context.Context, id int64) error {
	res := r.store.conn(ctx).Delete(&domain.Order{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *GormOrders) List(ctx context.Context) ([]domain.Order, error) {
	out := make([]domain.Order, 0)
	if err := r.store.conn(ctx).Order("id DESC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
