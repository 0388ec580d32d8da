package cart

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLineTotal(t *testing.T) {
	tests := map[string]struct {
		price float64
		qty   int
		want  float64
	}{
		"whole":      {price: 10, qty: 2, want: 20},
		"fractional": {price: 0.1, qty: 3, want: 0.3},
		"cents":      {price: 19.99, qty: 3, want: 59.97},
		"free":       {price: 0, qty: 4, want: 0},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tt.want, LineTotal(tt.price, tt.qty))
		})
	}
}

func TestTotal(t *testing.T) {
	items := []LineItem{
		{ProductID: "a", Quantity: 1, TotalItemPrice: 0.1},
		{ProductID: "b", Quantity: 1, TotalItemPrice: 0.2},
	}
	assert.Equal(t, 0.3, Total(items))
	assert.Equal(t, 0.0, Total(nil))
}
