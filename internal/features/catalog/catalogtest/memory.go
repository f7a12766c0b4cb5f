// Package catalogtest provides an in-memory catalog store for tests.
package catalogtest

import (
	"context"
	"fmt"
	"sync"

	"go-stocksync/internal/features/catalog"
)

// Store is an in-memory catalog.Store with per-SKU fault injection.
type Store struct {
	mu       sync.Mutex
	products map[string]*catalog.Product
	bySKU    map[string]string
	next     int

	PingErr  error
	FindErr  map[string]error
	LoadMiss map[string]bool
	SaveErr  map[string]error

	Saves map[string]int
}

func NewStore() *Store {
	return &Store{
		products: make(map[string]*catalog.Product),
		bySKU:    make(map[string]string),
		FindErr:  make(map[string]error),
		LoadMiss: make(map[string]bool),
		SaveErr:  make(map[string]error),
		Saves:    make(map[string]int),
	}
}

// Add registers a product. A nil quantity leaves stock untracked.
func (s *Store) Add(sku string, quantity *int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.next++
	key := fmt.Sprintf("p%d", s.next)
	s.products[key] = &catalog.Product{Key: key, SKU: sku, Name: sku, StockQuantity: quantity, ManageStock: quantity != nil}
	s.bySKU[sku] = key
}

// Quantity returns the stored quantity for a SKU.
func (s *Store) Quantity(sku string) *int {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.products[s.bySKU[sku]]
	if !ok || p.StockQuantity == nil {
		return nil
	}
	q := *p.StockQuantity
	return &q
}

func (s *Store) Product(sku string) catalog.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	return *s.products[s.bySKU[sku]]
}

func (s *Store) Ping(context.Context) error {
	return s.PingErr
}

func (s *Store) FindIDBySKU(_ context.Context, sku string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.FindErr[sku]; err != nil {
		return "", err
	}
	return s.bySKU[sku], nil
}

func (s *Store) Load(_ context.Context, key string) (*catalog.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.products[key]
	if !ok || s.LoadMiss[p.SKU] {
		return nil, nil
	}
	clone := *p
	if p.StockQuantity != nil {
		q := *p.StockQuantity
		clone.StockQuantity = &q
	}
	return &clone, nil
}

func (s *Store) Save(_ context.Context, product *catalog.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.SaveErr[product.SKU]; err != nil {
		return err
	}
	clone := *product
	s.products[product.Key] = &clone
	s.Saves[product.SKU]++
	return nil
}

func Qty(n int) *int {
	return &n
}
