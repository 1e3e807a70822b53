package services

import (
	"fmt"
	"time"

	"shopbot/internal/cache"
	"shopbot/internal/domain"
	"shopbot/internal/repos"
)

// catalogTTL bounds how stale a browsing view may be. Checkout never reads
// prices through the cache.
const catalogTTL = 120 * time.Second

type CatalogService struct {
	repo *repos.CatalogRepo

	cats  *cache.TTL[[]domain.Category]
	prods *cache.TTL[[]domain.Product]
	prod  *cache.TTL[domain.Product]
}

func NewCatalogService(repo *repos.CatalogRepo) *CatalogService {
	return &CatalogService{
		repo:  repo,
		cats:  cache.New[[]domain.Category](catalogTTL),
		prods: cache.New[[]domain.Product](catalogTTL),
		prod:  cache.New[domain.Product](catalogTTL),
	}
}

func (s *CatalogService) RootCategories() ([]domain.Category, error) {
	const key = "categories:root"
	if v, ok := s.cats.Get(key); ok {
		return v, nil
	}
	v, err := s.repo.RootCategories()
	if err != nil {
		return nil, err
	}
	s.cats.Set(key, v)
	return v, nil
}

func (s *CatalogService) Subcategories(parentID int64) ([]domain.Category, error) {
	key := fmt.Sprintf("subcategories:%d", parentID)
	if v, ok := s.cats.Get(key); ok {
		return v, nil
	}
	v, err := s.repo.Subcategories(parentID)
	if err != nil {
		return nil, err
	}
	s.cats.Set(key, v)
	return v, nil
}

func (s *CatalogService) ProductsByCategory(categoryID int64) ([]domain.Product, error) {
	key := fmt.Sprintf("products:%d", categoryID)
	if v, ok := s.prods.Get(key); ok {
		return v, nil
	}
	v, err := s.repo.ProductsByCategory(categoryID)
	if err != nil {
		return nil, err
	}
	s.prods.Set(key, v)
	return v, nil
}

// Product serves the browsing view of a single product. Misses are not
// negatively cached: ErrProductNotFound always reflects the current row.
func (s *CatalogService) Product(id int64) (domain.Product, error) {
	key := fmt.Sprintf("product:%d", id)
	if v, ok := s.prod.Get(key); ok {
		return v, nil
	}
	v, err := s.repo.Product(id)
	if err != nil {
		return domain.Product{}, err
	}
	s.prod.Set(key, v)
	return v, nil
}
