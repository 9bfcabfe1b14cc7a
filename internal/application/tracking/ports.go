package tracking

// Matcher decide si un código normalizado (mayúsculas) tiene formato de
// número de rastreo de transportadora. Las reglas de patrón/checksum viven en
// el adaptador (internal/infrastructure/carrier); el caso de uso solo ve el
// veredicto.
type Matcher interface {
	Match(codeNormalized string) bool
}
