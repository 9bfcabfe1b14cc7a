package dto

// ListMovementsRequest query params para GET /api/movements.
// From/To en RFC3339; Cursor es el token opaco devuelto en la página anterior.
type ListMovementsRequest struct {
	SKU        string `query:"sku"`
	ScannedSKU string `query:"scanned_sku"`
	UserID     string `query:"user_id"`
	Type       string `query:"type"`
	From       string `query:"from"`
	To         string `query:"to"`
	Limit      int    `query:"limit"`
	Cursor     string `query:"cursor"`
}

// MovementPageResponse página del ledger. NextCursor vacío = no hay más.
type MovementPageResponse struct {
	Movements  []MovementResponse `json:"movements"`
	NextCursor string             `json:"next_cursor,omitempty"`
}

// MovementExportResponse export del ledger (pagina internamente hasta el tope).
type MovementExportResponse struct {
	Movements []MovementResponse `json:"movements"`
	Total     int                `json:"total"`
	Truncated bool               `json:"truncated"` // true si se alcanzó el tope configurado
}
