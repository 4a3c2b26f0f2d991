// Stockpit - Inventory Management with Real-Time Order Notifications
// Copyright 2026 Stockpit Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/stockpit/stockpit

package inventory

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/stockpit/stockpit/internal/models"
)

// csvHeader is the fixed column layout of the spreadsheet file.
var csvHeader = []string{"sku", "name", "category", "price", "quantity", "updated"}

// CSVStore persists products in a single CSV spreadsheet. The whole
// sheet is held in memory and rewritten atomically (temp file + rename)
// on every mutation; inventories this application manages are small.
type CSVStore struct {
	path string

	mu       sync.RWMutex
	products map[string]models.Product
}

// OpenCSV loads the spreadsheet at path, creating an empty one when the
// file does not exist yet.
func OpenCSV(path string) (*CSVStore, error) {
	s := &CSVStore{
		path:     path,
		products: make(map[string]models.Product),
	}

	f, err := os.Open(path)
	if os.IsNotExist(err) {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("create spreadsheet directory: %w", err)
		}
		if err := s.flushLocked(); err != nil {
			return nil, err
		}
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open spreadsheet: %w", err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read spreadsheet: %w", err)
	}
	for i, rec := range records {
		if i == 0 || len(rec) < len(csvHeader) {
			continue // header or short row
		}
		price, _ := strconv.ParseFloat(rec[3], 64)
		qty, _ := strconv.Atoi(rec[4])
		updated, _ := time.Parse(time.RFC3339, rec[5])
		s.products[rec[0]] = models.Product{
			SKU:      rec[0],
			Name:     rec[1],
			Category: rec[2],
			Price:    price,
			Quantity: qty,
			Updated:  updated,
		}
	}
	return s, nil
}

// List returns all products sorted by SKU.
func (s *CSVStore) List() ([]models.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sortedLocked(), nil
}

// Get returns the product for a SKU or ErrNotFound.
func (s *CSVStore) Get(sku string) (models.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.products[sku]
	if !ok {
		return models.Product{}, ErrNotFound
	}
	return p, nil
}

// Upsert inserts or replaces a product and rewrites the sheet.
func (s *CSVStore) Upsert(p models.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p.Updated = time.Now().UTC()
	s.products[p.SKU] = p
	return s.flushLocked()
}

// Delete removes a product; deleting an unknown SKU returns ErrNotFound.
func (s *CSVStore) Delete(sku string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.products[sku]; !ok {
		return ErrNotFound
	}
	delete(s.products, sku)
	return s.flushLocked()
}

// sortedLocked returns products in SKU order (caller holds a lock).
func (s *CSVStore) sortedLocked() []models.Product {
	out := make([]models.Product, 0, len(s.products))
	for _, p := range s.products {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SKU < out[j].SKU })
	return out
}

// flushLocked rewrites the spreadsheet atomically (caller holds the
// write lock).
func (s *CSVStore) flushLocked() error {
	tmp := s.path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("write spreadsheet: %w", err)
	}

	w := csv.NewWriter(f)
	if err := w.Write(csvHeader); err != nil {
		f.Close()
		return err
	}
	for _, p := range s.sortedLocked() {
		rec := []string{
			p.SKU,
			p.Name,
			p.Category,
			strconv.FormatFloat(p.Price, 'f', -1, 64),
			strconv.Itoa(p.Quantity),
			p.Updated.Format(time.RFC3339),
		}
		if err := w.Write(rec); err != nil {
			f.Close()
			return err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(tmp, s.path)
}
