package service

import (
	"context"
	"errors"

	"kiosk/internal/domain"
	"kiosk/internal/repository"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	// ErrEmptyCatalog отличает пустой каталог от пустого результата фильтра
	ErrEmptyCatalog = errors.New("catalog is empty")
)

// CatalogService инкапсулирует бизнес-логику вокруг каталога товаров
type CatalogService struct {
	repo repository.ProductRepository
}

func NewCatalogService(repo repository.ProductRepository) *CatalogService {
	return &CatalogService{repo: repo}
}

func (s *CatalogService) Create(ctx context.Context, p domain.Product) (*domain.Product, error) {
	if p.Name == "" || p.Price < 0 || p.Stock < 0 {
		return nil, ErrInvalidInput
	}
	if p.Category == "" {
		p.Category = "Uncategorized"
	}
	cp := p
	if err := s.repo.Create(ctx, &cp); err != nil {
		return nil, err
	}
	return &cp, nil
}

func (s *CatalogService) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	if id <= 0 {
		return nil, ErrInvalidInput
	}
	return s.repo.GetByID(ctx, id)
}

func (s *CatalogService) Update(ctx context.Context, p domain.Product) (*domain.Product, error) {
	if p.ID <= 0 || p.Name == "" || p.Price < 0 || p.Stock < 0 {
		return nil, ErrInvalidInput
	}
	cp := p
	if err := s.repo.Update(ctx, &cp); err != nil {
		return nil, err
	}
	return &cp, nil
}

func (s *CatalogService) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return ErrInvalidInput
	}
	return s.repo.Delete(ctx, id)
}

// List возвращает товары по категории (пустая или "all" — весь каталог).
// Пустой каталог — ErrEmptyCatalog; непустой без совпадений — пустой срез без ошибки.
func (s *CatalogService) List(ctx context.Context, category string) ([]domain.Product, error) {
	list, err := s.repo.List(ctx, repository.ProductFilter{Category: category})
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		all, err := s.repo.List(ctx, repository.ProductFilter{})
		if err != nil {
			return nil, err
		}
		if len(all) == 0 {
			return nil, ErrEmptyCatalog
		}
	}
	return list, nil
}
