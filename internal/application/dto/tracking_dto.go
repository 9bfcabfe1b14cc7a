package dto

import "time"

// TrackingProductRefDTO producto vinculado a un código de rastreo.
type TrackingProductRefDTO struct {
	SKU        string `json:"sku"`
	Name       string `json:"name,omitempty"`
	Quantity   int64  `json:"quantity,omitempty"`
	ScannedSKU string `json:"scanned_sku,omitempty"`
}

// RecordTrackingRequest body para registrar un código de rastreo manualmente
// (el fallback del escaneo arma este mismo input internamente).
type RecordTrackingRequest struct {
	Code            string                  `json:"code"`
	Products        []TrackingProductRefDTO `json:"products,omitempty"`
	StockMovementID string                  `json:"stock_movement_id,omitempty"`
}

// TrackingCodeResponse representación de un código de rastreo.
type TrackingCodeResponse struct {
	ID              string                  `json:"id"`
	Code            string                  `json:"code"`
	CodeNormalized  string                  `json:"code_normalized"`
	UserID          string                  `json:"user_id"`
	UserName        string                  `json:"user_name"`
	CreatedAt       time.Time               `json:"created_at"`
	ProductSKU      string                  `json:"product_sku,omitempty"`
	ProductName     string                  `json:"product_name,omitempty"`
	Products        []TrackingProductRefDTO `json:"products,omitempty"`
	StockMovementID string                  `json:"stock_movement_id,omitempty"`
}

// SearchTrackingRequest query params para GET /api/tracking/search.
type SearchTrackingRequest struct {
	Prefix string `query:"prefix"`
	From   string `query:"from"`
	To     string `query:"to"`
	Limit  int    `query:"limit"`
}
