package dto

import "github.com/jhoicas/Bodega-scan-api/internal/domain/entity"

// Mapeo entity -> DTO centralizado: los handlers nunca arman respuestas a mano.

// ToKitAliasDTO mapea un alias de kit.
func ToKitAliasDTO(k *entity.KitAlias) *KitAliasDTO {
	if k == nil {
		return nil
	}
	return &KitAliasDTO{SKU: k.SKU, Label: k.Label, Multiplier: k.Multiplier}
}

// ToProductResponse mapea un producto.
func ToProductResponse(p *entity.Product) *ProductResponse {
	if p == nil {
		return nil
	}
	kits := make([]KitAliasDTO, 0, len(p.Kits))
	for i := range p.Kits {
		kits = append(kits, *ToKitAliasDTO(&p.Kits[i]))
	}
	return &ProductResponse{
		ID:         p.ID,
		SKU:        p.SKU,
		Name:       p.Name,
		Category:   p.Category,
		Supplier:   p.Supplier,
		UnitPrice:  p.UnitPrice,
		Quantity:   p.Quantity,
		TotalValue: p.TotalValue,
		MinStock:   p.MinStock,
		Kits:       kits,
		KitSKUs:    p.KitSKUs,
		CreatedAt:  p.CreatedAt,
		UpdatedAt:  p.UpdatedAt,
	}
}

// ToMovementResponse mapea un movimiento del ledger.
func ToMovementResponse(m *entity.StockMovement) *MovementResponse {
	if m == nil {
		return nil
	}
	return &MovementResponse{
		ID:           m.ID,
		ProductID:    m.ProductID,
		SKU:          m.SKU,
		Type:         m.Type,
		Qty:          m.Qty,
		UserID:       m.UserID,
		UserName:     m.UserName,
		Timestamp:    m.Timestamp,
		UnitPrice:    m.UnitPrice,
		TotalValue:   m.TotalValue,
		ParentSKU:    m.ParentSKU,
		ScannedSKU:   m.ScannedSKU,
		Multiplier:   m.Multiplier,
		EffectiveQty: m.EffectiveQty,
	}
}

// ToMovementResponses mapea una lista de movimientos.
func ToMovementResponses(list []*entity.StockMovement) []MovementResponse {
	out := make([]MovementResponse, 0, len(list))
	for _, m := range list {
		out = append(out, *ToMovementResponse(m))
	}
	return out
}

// ToTrackingCodeResponse mapea un código de rastreo.
func ToTrackingCodeResponse(t *entity.TrackingCode) *TrackingCodeResponse {
	if t == nil {
		return nil
	}
	var products []TrackingProductRefDTO
	for _, p := range t.Products {
		products = append(products, TrackingProductRefDTO{
			SKU:        p.SKU,
			Name:       p.Name,
			Quantity:   p.Quantity,
			ScannedSKU: p.ScannedSKU,
		})
	}
	return &TrackingCodeResponse{
		ID:              t.ID,
		Code:            t.Code,
		CodeNormalized:  t.CodeNormalized,
		UserID:          t.UserID,
		UserName:        t.UserName,
		CreatedAt:       t.CreatedAt,
		ProductSKU:      t.ProductSKU,
		ProductName:     t.ProductName,
		Products:        products,
		StockMovementID: t.StockMovementID,
	}
}

// ToTrackingCodeResponses mapea una lista de códigos de rastreo.
func ToTrackingCodeResponses(list []*entity.TrackingCode) []TrackingCodeResponse {
	out := make([]TrackingCodeResponse, 0, len(list))
	for _, t := range list {
		out = append(out, *ToTrackingCodeResponse(t))
	}
	return out
}

// ToUserResponse mapea un usuario (sin hash).
func ToUserResponse(u *entity.User) *UserResponse {
	if u == nil {
		return nil
	}
	return &UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Role:      u.Role,
		Status:    u.Status,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
