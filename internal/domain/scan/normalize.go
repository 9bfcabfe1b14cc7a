// Package scan contiene la lógica pura de normalización de códigos escaneados
// o tecleados, sin efectos secundarios ni dependencias de infraestructura.
package scan

import (
	"strings"

	"github.com/jhoicas/Bodega-scan-api/internal/domain"
)

// NormalizeCode recorta espacios y rechaza entrada vacía. No aplica case-folding:
// la búsqueda de SKU y alias de kit es por igualdad exacta contra lo almacenado.
func NormalizeCode(raw string) (string, error) {
	code := strings.TrimSpace(raw)
	if code == "" {
		return "", domain.ErrEmptyCode
	}
	return code, nil
}

// NormalizeTracking normaliza un código para comparación de rastreo:
// recorte + mayúsculas (los códigos de transportadora son case-insensitive).
func NormalizeTracking(raw string) (string, error) {
	code, err := NormalizeCode(raw)
	if err != nil {
		return "", err
	}
	return strings.ToUpper(code), nil
}
