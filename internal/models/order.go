// Stockpit - Inventory Management with Real-Time Order Notifications
// Copyright 2026 Stockpit Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/stockpit/stockpit

package models

import "time"

// Order is the client-side cached view of an order, keyed by OrderID.
// It is upserted by NEW_ORDER/order_sync and field-merged by
// ORDER_STATUS_UPDATE.
type Order struct {
	OrderID         string     `json:"orderId"`
	CustomerName    string     `json:"customerName,omitempty"`
	CustomerEmail   string     `json:"customerEmail,omitempty"`
	CustomerPhone   string     `json:"customerPhone,omitempty"`
	Total           float64    `json:"total,omitempty"`
	Status          string     `json:"status,omitempty"`
	TrackingNumber  string     `json:"trackingNumber,omitempty"`
	Items           []LineItem `json:"items,omitempty"`
	ShippingAddress string     `json:"shippingAddress,omitempty"`
	PaymentMethod   string     `json:"paymentMethod,omitempty"`
	Timestamp       time.Time  `json:"timestamp,omitempty"`
}

// OrderFromNotification projects a notification into the cached order
// shape.
func OrderFromNotification(n Notification) Order {
	return Order{
		OrderID:         n.OrderID,
		CustomerName:    n.CustomerName,
		CustomerEmail:   n.CustomerEmail,
		CustomerPhone:   n.CustomerPhone,
		Total:           n.Total,
		Status:          n.Status,
		TrackingNumber:  n.TrackingNumber,
		Items:           n.Items,
		ShippingAddress: n.ShippingAddress,
		PaymentMethod:   n.PaymentMethod,
		Timestamp:       n.Timestamp,
	}
}

// Merge overlays non-zero fields of update onto o. The order identity
// never changes; zero values in update leave existing fields intact.
func (o *Order) Merge(update Order) {
	if update.Status != "" {
		o.Status = update.Status
	}
	if update.TrackingNumber != "" {
		o.TrackingNumber = update.TrackingNumber
	}
	if update.CustomerName != "" {
		o.CustomerName = update.CustomerName
	}
	if update.CustomerEmail != "" {
		o.CustomerEmail = update.CustomerEmail
	}
	if update.CustomerPhone != "" {
		o.CustomerPhone = update.CustomerPhone
	}
	if update.Total != 0 {
		o.Total = update.Total
	}
	if len(update.Items) > 0 {
		o.Items = update.Items
	}
	if update.ShippingAddress != "" {
		o.ShippingAddress = update.ShippingAddress
	}
	if update.PaymentMethod != "" {
		o.PaymentMethod = update.PaymentMethod
	}
	if !update.Timestamp.IsZero() {
		o.Timestamp = update.Timestamp
	}
}
