// Stockpit - Inventory Management with Real-Time Order Notifications
// Copyright 2026 Stockpit Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/stockpit/stockpit

package api

import (
	"errors"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"

	"github.com/stockpit/stockpit/internal/inventory"
	"github.com/stockpit/stockpit/internal/logging"
	"github.com/stockpit/stockpit/internal/models"
)

// maxImageUploadBytes caps product image uploads at 5 MiB.
const maxImageUploadBytes = 5 << 20

// ListProducts returns every product in the store.
// GET /api/v1/products
func (h *Handler) ListProducts(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	products, err := h.store.List()
	if err != nil {
		respondError(w, http.StatusInternalServerError, "STORE_ERROR", "Failed to read product store", err)
		return
	}
	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data:   products,
		Metadata: models.Metadata{
			Timestamp:   time.Now(),
			QueryTimeMS: time.Since(start).Milliseconds(),
		},
	})
}

// GetProduct returns a single product by SKU.
// GET /api/v1/products/{sku}
func (h *Handler) GetProduct(w http.ResponseWriter, r *http.Request) {
	sku := chi.URLParam(r, "sku")
	product, err := h.store.Get(sku)
	if err != nil {
		if errors.Is(err, inventory.ErrNotFound) {
			respondError(w, http.StatusNotFound, "PRODUCT_NOT_FOUND", "No product with that SKU", nil)
			return
		}
		respondError(w, http.StatusInternalServerError, "STORE_ERROR", "Failed to read product store", err)
		return
	}
	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status:   "success",
		Data:     product,
		Metadata: models.Metadata{Timestamp: time.Now()},
	})
}

// UpsertProduct creates or replaces a product.
// POST /api/v1/products
func (h *Handler) UpsertProduct(w http.ResponseWriter, r *http.Request) {
	var product models.Product
	if err := json.NewDecoder(r.Body).Decode(&product); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_PAYLOAD", "Request body is not valid JSON", err)
		return
	}
	if apiErr := validateRequest(&product); apiErr != nil {
		respondJSON(w, http.StatusBadRequest, &models.APIResponse{
			Status:   "error",
			Metadata: models.Metadata{Timestamp: time.Now()},
			Error:    apiErr,
		})
		return
	}

	product.Updated = time.Now().UTC()
	if err := h.store.Upsert(product); err != nil {
		respondError(w, http.StatusInternalServerError, "STORE_ERROR", "Failed to write product store", err)
		return
	}

	logging.Info().Str("sku", sanitizeLogValue(product.SKU)).Msg("product upserted")
	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status:   "success",
		Data:     product,
		Metadata: models.Metadata{Timestamp: time.Now()},
	})
}

// DeleteProduct removes a product by SKU.
// DELETE /api/v1/products/{sku}
func (h *Handler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	sku := chi.URLParam(r, "sku")
	if err := h.store.Delete(sku); err != nil {
		if errors.Is(err, inventory.ErrNotFound) {
			respondError(w, http.StatusNotFound, "PRODUCT_NOT_FOUND", "No product with that SKU", nil)
			return
		}
		respondError(w, http.StatusInternalServerError, "STORE_ERROR", "Failed to write product store", err)
		return
	}

	logging.Info().Str("sku", sanitizeLogValue(sku)).Msg("product deleted")
	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status:   "success",
		Data:     map[string]string{"sku": sku},
		Metadata: models.Metadata{Timestamp: time.Now()},
	})
}

// UploadProductImage stores a product image in the configured upload
// directory, named by SKU. The product must already exist.
// POST /api/v1/products/{sku}/image
func (h *Handler) UploadProductImage(w http.ResponseWriter, r *http.Request) {
	sku := chi.URLParam(r, "sku")
	if _, err := h.store.Get(sku); err != nil {
		if errors.Is(err, inventory.ErrNotFound) {
			respondError(w, http.StatusNotFound, "PRODUCT_NOT_FOUND", "No product with that SKU", nil)
			return
		}
		respondError(w, http.StatusInternalServerError, "STORE_ERROR", "Failed to read product store", err)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxImageUploadBytes)
	if err := r.ParseMultipartForm(maxImageUploadBytes); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_UPLOAD", "Expected a multipart form with an image field", err)
		return
	}
	file, header, err := r.FormFile("image")
	if err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_UPLOAD", "Missing image field", err)
		return
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(header.Filename))
	switch ext {
	case ".png", ".jpg", ".jpeg", ".gif", ".webp":
	default:
		respondError(w, http.StatusBadRequest, "INVALID_UPLOAD", "Unsupported image extension", nil)
		return
	}

	if err := os.MkdirAll(h.config.Inventory.UploadDir, 0o755); err != nil {
		respondError(w, http.StatusInternalServerError, "UPLOAD_FAILED", "Failed to prepare upload directory", err)
		return
	}

	// filepath.Base strips any path separators smuggled into the SKU.
	name := filepath.Base(sku) + ext
	dest := filepath.Join(h.config.Inventory.UploadDir, name)
	out, err := os.Create(dest)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "UPLOAD_FAILED", "Failed to create image file", err)
		return
	}
	defer out.Close()

	if _, err := io.Copy(out, file); err != nil {
		respondError(w, http.StatusInternalServerError, "UPLOAD_FAILED", "Failed to write image file", err)
		return
	}

	logging.Info().
		Str("sku", sanitizeLogValue(sku)).
		Str("file", sanitizeLogValue(name)).
		Msg("product image uploaded")
	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status:   "success",
		Data:     map[string]string{"sku": sku, "image": name},
		Metadata: models.Metadata{Timestamp: time.Now()},
	})
}
