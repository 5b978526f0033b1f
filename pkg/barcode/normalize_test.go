package barcode_test

import (
	"testing"

	"github.com/jhoicas/Inventario-wms/pkg/barcode"
	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	cases := map[string]string{
		"7701234567890":       "7701234567890",
		"  7701234567890\r\n": "7701234567890",
		"７７０１２３":              "770123",
		"ABC-01\t":            "ABC-01",
	}
	for in, want := range cases {
		assert.Equal(t, want, barcode.Normalize(in), "entrada %q", in)
	}
}

func TestNormalizeSKU_Mayusculas(t *testing.T) {
	assert.Equal(t, "SKU-ABC", barcode.NormalizeSKU(" sku-abc "))
}
