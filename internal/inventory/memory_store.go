// Stockpit - Inventory Management with Real-Time Order Notifications
// Copyright 2026 Stockpit Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/stockpit/stockpit

package inventory

import (
	"sort"
	"sync"
	"time"

	"github.com/stockpit/stockpit/internal/models"
)

// MemoryStore is an in-memory Store used by tests and development mode.
type MemoryStore struct {
	mu       sync.RWMutex
	products map[string]models.Product
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{products: make(map[string]models.Product)}
}

// List returns all products sorted by SKU.
func (s *MemoryStore) List() ([]models.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Product, 0, len(s.products))
	for _, p := range s.products {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SKU < out[j].SKU })
	return out, nil
}

// Get returns the product for a SKU or ErrNotFound.
func (s *MemoryStore) Get(sku string) (models.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.products[sku]
	if !ok {
		return models.Product{}, ErrNotFound
	}
	return p, nil
}

// Upsert inserts or replaces a product.
func (s *MemoryStore) Upsert(p models.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p.Updated = time.Now().UTC()
	s.products[p.SKU] = p
	return nil
}

// Delete removes a product; deleting an unknown SKU returns ErrNotFound.
func (s *MemoryStore) Delete(sku string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.products[sku]; !ok {
		return ErrNotFound
	}
	delete(s.products, sku)
	return nil
}
