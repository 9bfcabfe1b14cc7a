package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ScanRequest body para POST /api/scan. Quantity llega como número JSON
// (el motor la valida y la trunca a entero >= 1).
type ScanRequest struct {
	Code     string  `json:"code"`
	Quantity float64 `json:"quantity"`
}

// KitAliasDTO alias de kit dentro de un producto.
type KitAliasDTO struct {
	SKU        string `json:"sku"`
	Label      string `json:"label"`
	Multiplier int64  `json:"multiplier"`
}

// ScanResponse resultado de un escaneo. Kind distingue el camino tomado:
// "stock_out"/"stock_in" cuando el código resolvió a un producto, "tracking"
// cuando se registró como código de rastreo (fallback).
type ScanResponse struct {
	Kind         string               `json:"kind"` // stock_out | stock_in | tracking
	Product      *ProductResponse     `json:"product,omitempty"`
	Kit          *KitAliasDTO         `json:"kit,omitempty"`
	ScannedSKU   string               `json:"scanned_sku,omitempty"`
	EffectiveQty int64                `json:"effective_qty,omitempty"`
	Movement     *MovementResponse    `json:"movement,omitempty"`
	Tracking     *TrackingCodeResponse `json:"tracking,omitempty"`
}

// ResolveResponse vista previa de resolución para la UI del escáner
// (GET /api/scan/resolve).
type ResolveResponse struct {
	Product    *ProductResponse `json:"product"`
	Kit        *KitAliasDTO     `json:"kit,omitempty"`
	Multiplier int64            `json:"multiplier"`
}

// MovementResponse representación de un movimiento del ledger.
type MovementResponse struct {
	ID           string          `json:"id"`
	ProductID    string          `json:"product_id"`
	SKU          string          `json:"sku"`
	Type         string          `json:"type"`
	Qty          int64           `json:"qty"`
	UserID       string          `json:"user_id"`
	UserName     string          `json:"user_name"`
	Timestamp    time.Time       `json:"timestamp"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	TotalValue   decimal.Decimal `json:"total_value"`
	ParentSKU    string          `json:"parent_sku,omitempty"`
	ScannedSKU   string          `json:"scanned_sku,omitempty"`
	Multiplier   int64           `json:"multiplier,omitempty"`
	EffectiveQty int64           `json:"effective_qty,omitempty"`
}
