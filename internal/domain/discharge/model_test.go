package discharge

import (
	"math"
	"testing"
)

func TestBillAmounts(t *testing.T) {
	tests := []struct {
		name         string
		subtotal     float64
		discount     float64
		wantDiscount float64
		wantTotal    float64
	}{
		{"ten percent", 1000, 10, 100, 900},
		{"no discount", 1234.56, 0, 0, 1234.56},
		{"full discount", 500, 100, 500, 0},
		{"fractional", 99.99, 12.5, 12.49875, 87.49125},
		{"zero subtotal", 0, 50, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			discount, total := BillAmounts(tt.subtotal, tt.discount)
			if math.Abs(discount-tt.wantDiscount) > 1e-9 {
				t.Errorf("discount = %v, want %v", discount, tt.wantDiscount)
			}
			if math.Abs(total-tt.wantTotal) > 1e-9 {
				t.Errorf("total = %v, want %v", total, tt.wantTotal)
			}
		})
	}
}

func TestBillAmounts_ZeroDiscountIsExact(t *testing.T) {
	subtotal := 0.1 + 0.2
	_, total := BillAmounts(subtotal, 0)
	if total != subtotal {
		t.Errorf("zero discount must return the subtotal unchanged, got %v", total)
	}
}
