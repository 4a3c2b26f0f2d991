// Stockpit - Inventory Management with Real-Time Order Notifications
// Copyright 2026 Stockpit Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/stockpit/stockpit

// Package inventory provides the spreadsheet-backed product store. The
// notification layer does not depend on it; it exists so the CRUD
// handlers have a real boundary to talk to.
package inventory

import (
	"errors"

	"github.com/stockpit/stockpit/internal/models"
)

// ErrNotFound is returned when a SKU is absent from the store.
var ErrNotFound = errors.New("product not found")

// Store is the product persistence boundary. Implementations must be
// safe for concurrent use by HTTP handlers.
type Store interface {
	List() ([]models.Product, error)
	Get(sku string) (models.Product, error)
	Upsert(p models.Product) error
	Delete(sku string) error
}
