// Stockpit - Inventory Management with Real-Time Order Notifications
// Copyright 2026 Stockpit Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/stockpit/stockpit

package inventory

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stockpit/stockpit/internal/models"
)

func tempSheet(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "inventory.csv")
}

func TestOpenCSV_CreatesMissingSheet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "inventory.csv")

	store, err := OpenCSV(path)
	if err != nil {
		t.Fatalf("OpenCSV: %v", err)
	}

	if _, err := os.Stat(path); err != nil {
		t.Errorf("sheet not created: %v", err)
	}

	products, err := store.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(products) != 0 {
		t.Errorf("fresh sheet has %d products", len(products))
	}
}

func TestCSVStore_RoundTrip(t *testing.T) {
	path := tempSheet(t)

	store, err := OpenCSV(path)
	if err != nil {
		t.Fatalf("OpenCSV: %v", err)
	}

	items := []models.Product{
		{SKU: "B-2", Name: "Bolt", Category: "hardware", Price: 0.25, Quantity: 900},
		{SKU: "A-1", Name: "Anvil", Category: "hardware", Price: 120, Quantity: 3},
	}
	for _, p := range items {
		if err := store.Upsert(p); err != nil {
			t.Fatalf("Upsert(%s): %v", p.SKU, err)
		}
	}

	// A second open must see what the first one wrote.
	reopened, err := OpenCSV(path)
	if err != nil {
		t.Fatalf("reopening: %v", err)
	}

	products, err := reopened.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(products) != 2 {
		t.Fatalf("products = %d, want 2", len(products))
	}
	if products[0].SKU != "A-1" || products[1].SKU != "B-2" {
		t.Errorf("list not sorted by SKU: %v, %v", products[0].SKU, products[1].SKU)
	}

	anvil, err := reopened.Get("A-1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if anvil.Name != "Anvil" || anvil.Price != 120 || anvil.Quantity != 3 {
		t.Errorf("round-tripped product mismatch: %+v", anvil)
	}
	if anvil.Updated.IsZero() {
		t.Error("Updated timestamp lost in round trip")
	}
}

func TestCSVStore_UpsertReplaces(t *testing.T) {
	store, err := OpenCSV(tempSheet(t))
	if err != nil {
		t.Fatalf("OpenCSV: %v", err)
	}

	if err := store.Upsert(models.Product{SKU: "A-1", Name: "Anvil", Quantity: 3}); err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	if err := store.Upsert(models.Product{SKU: "A-1", Name: "Anvil", Quantity: 2}); err != nil {
		t.Fatalf("Upsert: %v", err)
	}

	p, err := store.Get("A-1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if p.Quantity != 2 {
		t.Errorf("Quantity = %d, want 2", p.Quantity)
	}

	products, _ := store.List()
	if len(products) != 1 {
		t.Errorf("products = %d, want 1", len(products))
	}
}

func TestCSVStore_DeleteUnknownSKU(t *testing.T) {
	store, err := OpenCSV(tempSheet(t))
	if err != nil {
		t.Fatalf("OpenCSV: %v", err)
	}

	if err := store.Delete("ghost"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Delete(ghost) = %v, want ErrNotFound", err)
	}
}

func TestCSVStore_GetUnknownSKU(t *testing.T) {
	store, err := OpenCSV(tempSheet(t))
	if err != nil {
		t.Fatalf("OpenCSV: %v", err)
	}

	if _, err := store.Get("ghost"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get(ghost) = %v, want ErrNotFound", err)
	}
}

func TestMemoryStore_ImplementsStore(t *testing.T) {
	var _ Store = NewMemoryStore()
	var _ Store = &CSVStore{}
}
