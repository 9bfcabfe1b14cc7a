package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// KitAlias es un código escaneable secundario que representa un paquete de N
// unidades del producto padre. Multiplier siempre >= 1.
type KitAlias struct {
	SKU        string `json:"sku"`
	Label      string `json:"label"`
	Multiplier int64  `json:"multiplier"`
}

// Product representa un artículo con stock propio. Quantity nunca es negativo;
// TotalValue se recalcula siempre (nunca se edita de forma independiente).
// KitSKUs es el conjunto aplanado de los SKU de Kits, mantenido en sincronía
// para la búsqueda indexada por alias.
type Product struct {
	ID         string
	SKU        string // único entre productos padre
	Name       string
	Category   string
	Supplier   string
	UnitPrice  decimal.Decimal // no negativo, redondeo a 2 decimales
	Quantity   int64           // stock actual
	TotalValue decimal.Decimal // Quantity * UnitPrice, redondeado a 2
	MinStock   int64           // umbral de reposición (solo dashboards)
	Kits       []KitAlias
	KitSKUs    []string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// RecalcTotalValue recalcula TotalValue a partir de Quantity y UnitPrice.
// Debe invocarse después de cualquier cambio en alguno de los dos.
func (p *Product) RecalcTotalValue() {
	p.TotalValue = p.UnitPrice.Mul(decimal.NewFromInt(p.Quantity)).Round(2)
}

// SyncKitSKUs reconstruye KitSKUs desde Kits (invariante: todo Kits[i].SKU
// aparece en KitSKUs).
func (p *Product) SyncKitSKUs() {
	if len(p.Kits) == 0 {
		p.KitSKUs = nil
		return
	}
	skus := make([]string, 0, len(p.Kits))
	for _, k := range p.Kits {
		skus = append(skus, k.SKU)
	}
	p.KitSKUs = skus
}

// FindKit localiza el alias de kit con SKU exactamente igual al dado.
// Devuelve nil si no existe.
func (p *Product) FindKit(sku string) *KitAlias {
	for i := range p.Kits {
		if p.Kits[i].SKU == sku {
			return &p.Kits[i]
		}
	}
	return nil
}
