package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento de stock.
const (
	MovementTypeOut = "out" // salida (escaneo)
	MovementTypeIn  = "in"  // entrada (reposición)
)

// StockMovement es una entrada inmutable del ledger de movimientos: se crea
// exactamente una vez por transacción exitosa, nunca se modifica, y solo se
// elimina mediante el borrado compensatorio del ledger.
//
// UnitPrice/TotalValue son el snapshot de precio al momento del movimiento,
// desacoplado del precio actual del producto. ParentSKU/ScannedSKU/Multiplier/
// EffectiveQty registran la procedencia de kit: qué código se escaneó
// físicamente y cómo se amplificó la cantidad (redundante con Qty, se
// conserva por claridad de auditoría).
type StockMovement struct {
	ID        string
	ProductID string
	SKU       string // SKU del producto padre
	Type      string // out, in
	Qty       int64  // cantidad efectiva, ya multiplicada

	UserID    string
	UserName  string
	Timestamp time.Time // asignado por el servidor al confirmar

	UnitPrice  decimal.Decimal
	TotalValue decimal.Decimal

	ParentSKU    string
	ScannedSKU   string
	Multiplier   int64
	EffectiveQty int64
}
