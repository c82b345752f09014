package qty_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Kardex-api/pkg/qty"
)

func mustDecimal(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	require.NoError(t, err)
	return d
}

func TestParse_FormatosValidos(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"10", "10"},
		{"8.5", "8.5"},
		{"-2.75", "-2.75"},
		{"  3.00  ", "3"},
		{"0", "0"},
		// coma decimal (estilo es-CO)
		{"8,5", "8.5"},
		{"1.234,56", "1234.56"},
		// coma de miles (estilo en-US)
		{"1,234.56", "1234.56"},
		{"1,234,567.89", "1234567.89"},
		// varias comas sin punto: miles
		{"1,234,567", "1234567"},
	}
	for _, tc := range cases {
		got, err := qty.Parse(tc.in)
		require.NoError(t, err, "entrada %q debe parsear", tc.in)
		assert.True(t, got.Equal(mustDecimal(t, tc.want)),
			"entrada %q: esperaba %s, obtuve %s", tc.in, tc.want, got)
	}
}

func TestParse_EntradasInvalidas(t *testing.T) {
	for _, in := range []string{"", "   ", "abc", "12x", "1.2.3.4,", "--5"} {
		_, err := qty.Parse(in)
		assert.Error(t, err, "entrada %q debe fallar", in)
	}
}

func TestParse_NoUsaFloat(t *testing.T) {
	// 0.1 + 0.2 debe ser exactamente 0.3 en decimal.
	a, err := qty.Parse("0.1")
	require.NoError(t, err)
	b, err := qty.Parse("0.2")
	require.NoError(t, err)
	assert.True(t, a.Add(b).Equal(mustDecimal(t, "0.3")))
}

func TestParseNonNegative_RechazaNegativos(t *testing.T) {
	_, err := qty.ParseNonNegative("-1")
	assert.Error(t, err)

	d, err := qty.ParseNonNegative("0")
	require.NoError(t, err)
	assert.True(t, d.IsZero())
}
