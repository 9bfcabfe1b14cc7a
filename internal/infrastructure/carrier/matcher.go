// Package carrier implementa el matcher de formatos de número de rastreo de
// transportadora. Es el adaptador del puerto tracking.Matcher: el caso de uso
// solo conoce el veredicto, no las reglas.
package carrier

import (
	"regexp"

	"github.com/jhoicas/Bodega-scan-api/internal/application/tracking"
)

var _ tracking.Matcher = (*RegexMatcher)(nil)

// Formatos built-in, evaluados sobre el código normalizado (mayúsculas):
// UPU S10 (Correios y postales: SS123456785BR), UPS (1Z...), y numérico largo
// de 12 a 22 dígitos (FedEx y transportadoras locales).
var builtinPatterns = []*regexp.Regexp{
	regexp.MustCompile(`^[A-Z]{2}\d{9}[A-Z]{2}$`),
	regexp.MustCompile(`^1Z[A-Z0-9]{16}$`),
	regexp.MustCompile(`^\d{12,22}$`),
}

// RegexMatcher acepta un código si coincide con algún formato built-in o con
// alguno de los patrones extra configurados.
type RegexMatcher struct {
	patterns []*regexp.Regexp
}

// NewRegexMatcher construye el matcher. extra son regex adicionales (de
// SCAN_CARRIER_PATTERNS); los patrones inválidos se descartan con error.
func NewRegexMatcher(extra []string) (*RegexMatcher, error) {
	patterns := make([]*regexp.Regexp, 0, len(builtinPatterns)+len(extra))
	patterns = append(patterns, builtinPatterns...)
	for _, raw := range extra {
		re, err := regexp.Compile(raw)
		if err != nil {
			return nil, err
		}
		patterns = append(patterns, re)
	}
	return &RegexMatcher{patterns: patterns}, nil
}

// Match reporta si el código normalizado tiene formato de número de rastreo.
func (m *RegexMatcher) Match(codeNormalized string) bool {
	for _, re := range m.patterns {
		if re.MatchString(codeNormalized) {
			return true
		}
	}
	return false
}
