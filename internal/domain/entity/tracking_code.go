package entity

import "time"

// TrackingProductRef vincula un código de rastreo con un producto de un envío
// multi-artículo.
type TrackingProductRef struct {
	SKU        string `json:"sku"`
	Name       string `json:"name,omitempty"`
	Quantity   int64  `json:"quantity,omitempty"`
	ScannedSKU string `json:"scanned_sku,omitempty"`
}

// TrackingCode es un código de rastreo de transportadora registrado cuando un
// escaneo no resuelve a ningún producto. Code conserva el texto tal como se
// escaneó; CodeNormalized va en mayúsculas e indexado para búsqueda por prefijo.
// UserID es una FK débil hacia el directorio de usuarios (solo lookup).
type TrackingCode struct {
	ID             string
	Code           string
	CodeNormalized string
	UserID         string
	UserName       string
	CreatedAt      time.Time // asignado por el servidor

	ProductSKU  string
	ProductName string
	Products    []TrackingProductRef

	StockMovementID string // back-reference opcional al movimiento que acompaña
}
