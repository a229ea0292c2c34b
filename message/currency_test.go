package message

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatBRL(t *testing.T) {
	tests := []struct {
		value float64
		want  string
	}{
		{0, "R$ 0,00"},
		{0.5, "R$ 0,50"},
		{5, "R$ 5,00"},
		{68.8, "R$ 68,80"},
		{68.80, "R$ 68,80"},
		{100, "R$ 100,00"},
		{1234.56, "R$ 1.234,56"},
		{1234567.89, "R$ 1.234.567,89"},
		{19.999, "R$ 20,00"},
	}

	for _, testCase := range tests {
		t.Run(testCase.want, func(t *testing.T) {
			assert.Equal(t, testCase.want, FormatBRL(testCase.value))
		})
	}
}

func TestParseChangeDue(t *testing.T) {
	tests := []struct {
		name    string
		details string
		want    float64
		ok      bool
	}{
		{"plain", "Troco para R$ 100,00", 100.00, true},
		{"no space after symbol", "Troco para R$50,00", 50.00, true},
		{"thousands", "Troco para R$ 1.500,00", 1500.00, true},
		{"embedded", "Pagamento em dinheiro. Troco para R$ 20,00 por favor", 20.00, true},
		{"no decimals", "Troco para R$ 100", 100.00, true},
		{"absent", "Pagamento em dinheiro", 0, false},
		{"empty", "", 0, false},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			got, ok := ParseChangeDue(testCase.details)
			assert.Equal(t, testCase.ok, ok)
			if testCase.ok {
				assert.InDelta(t, testCase.want, got, 0.001)
			}
		})
	}
}
