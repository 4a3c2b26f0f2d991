// Stockpit - Inventory Management with Real-Time Order Notifications
// Copyright 2026 Stockpit Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/stockpit/stockpit

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/stockpit/stockpit/internal/middleware"
)

// Router wires handlers to routes.
type Router struct {
	handler       *Handler
	chiMiddleware *ChiMiddleware
}

// NewRouter creates a router for the given handler set.
func NewRouter(handler *Handler) *Router {
	return &Router{
		handler:       handler,
		chiMiddleware: NewChiMiddlewareFromConfig(handler.config.Security),
	}
}

// Setup configures all HTTP routes.
func (router *Router) Setup() http.Handler {
	r := chi.NewRouter()

	// Global stack, applied to every route in order. CORS is global so
	// OPTIONS preflight is answered before any route-level middleware.
	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(router.chiMiddleware.CORS())

	// Probes and metrics stay outside the rate limiter so monitoring
	// never competes with API traffic.
	r.Get("/livez", router.handler.Live)
	r.Get("/readyz", router.handler.Ready)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.With(router.chiMiddleware.RateLimit(), middleware.PrometheusMetrics).
			Get("/health", router.handler.Health)

		// Order ingestion. Public by necessity: the upstream order
		// system authenticates with the HMAC signature, not a session.
		r.With(router.chiMiddleware.RateLimitWebhook(), middleware.PrometheusMetrics).
			Post("/orders/webhook", router.handler.OrderWebhook)

		// Long-lived connections skip the Prometheus wrapper: it hides
		// the Flusher and Hijacker interfaces the stream and the
		// websocket upgrade need, and a duration histogram of
		// connections held open for hours is noise anyway.
		r.Get("/orders/events", router.handler.OrderEventStream)
		r.Get("/ws", router.handler.SocketConnect)

		r.Group(func(r chi.Router) {
			r.Use(router.chiMiddleware.RateLimit())
			r.Use(middleware.PrometheusMetrics)

			r.Get("/orders", router.handler.ListOrders)
			r.Post("/orders/{orderID}/status", router.handler.UpdateOrderStatus)

			r.Get("/products", router.handler.ListProducts)
			r.Post("/products", router.handler.UpsertProduct)
			r.Get("/products/{sku}", router.handler.GetProduct)
			r.Delete("/products/{sku}", router.handler.DeleteProduct)
			r.Post("/products/{sku}/image", router.handler.UploadProductImage)
		})
	})

	return r
}
