package carrier_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Bodega-scan-api/internal/infrastructure/carrier"
)

func TestRegexMatcher_FormatosBuiltin(t *testing.T) {
	m, err := carrier.NewRegexMatcher(nil)
	require.NoError(t, err)

	// UPU S10 (Correios y postales)
	assert.True(t, m.Match("SS123456785BR"))
	assert.True(t, m.Match("RA987654321CN"))
	// UPS
	assert.True(t, m.Match("1Z999AA10123456784"))
	// Numérico largo (FedEx y transportadoras locales)
	assert.True(t, m.Match("123456789012"))
	assert.True(t, m.Match("9400111899223100000000"))
}

func TestRegexMatcher_RechazaCodigosQueNoSonRastreo(t *testing.T) {
	m, err := carrier.NewRegexMatcher(nil)
	require.NoError(t, err)

	assert.False(t, m.Match("ABC-123"))  // parece SKU
	assert.False(t, m.Match("XYZ999"))   // corto, no postal
	assert.False(t, m.Match("12345"))    // numérico corto
	assert.False(t, m.Match(""))
}

func TestRegexMatcher_PatronesExtra(t *testing.T) {
	m, err := carrier.NewRegexMatcher([]string{`^LOCAL-\d{6}$`})
	require.NoError(t, err)

	assert.True(t, m.Match("LOCAL-000123"))
	assert.False(t, m.Match("LOCAL-12"))
}

func TestRegexMatcher_PatronInvalidoRetornaError(t *testing.T) {
	_, err := carrier.NewRegexMatcher([]string{`^(`})
	assert.Error(t, err)
}
