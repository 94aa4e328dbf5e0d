package money

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestUSD(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"0", "$0.00"},
		{"660", "$660.00"},
		{"1234.5", "$1,234.50"},
		{"-140", "-$140.00"},
		{"10000.00", "$10,000.00"},
		{"0.005", "$0.01"},
		{"19.994", "$19.99"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got := USD(decimal.RequireFromString(tt.in))
			if got != tt.want {
				t.Errorf("USD(%s) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
