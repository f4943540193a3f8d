package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

func TestPrice(t *testing.T) {
	tests := []struct {
		name     string
		base     float64
		persons  int
		rule     domain.GroupPricingRule
		expected float64
	}{
		{
			name: "per person multiply",
			base: 50, persons: 3,
			rule:     domain.GroupPricingRule{Type: domain.PricingPerPersonMultiply},
			expected: 150.00,
		},
		{
			name: "fixed discount per person",
			base: 50, persons: 3,
			rule:     domain.GroupPricingRule{Type: domain.PricingFixedDiscountPerPerson, Amount: 10},
			expected: 120.00,
		},
		{
			name: "percentage discount total",
			base: 100, persons: 2,
			rule:     domain.GroupPricingRule{Type: domain.PricingPercentageDiscountTotal, Amount: 20},
			expected: 160.00,
		},
		{
			name: "fixed discount larger than price floors at zero",
			base: 20, persons: 4,
			rule:     domain.GroupPricingRule{Type: domain.PricingFixedDiscountPerPerson, Amount: 30},
			expected: 0,
		},
		{
			name: "discount over 100 percent floors at zero",
			base: 40, persons: 2,
			rule:     domain.GroupPricingRule{Type: domain.PricingPercentageDiscountTotal, Amount: 150},
			expected: 0,
		},
		{
			name: "unknown rule type falls back to multiply",
			base: 25, persons: 2,
			rule:     domain.GroupPricingRule{Type: "loyalty_bonus", Amount: 5},
			expected: 50.00,
		},
		{
			name: "person count below one treated as one",
			base: 75, persons: 0,
			rule:     domain.GroupPricingRule{Type: domain.PricingPerPersonMultiply},
			expected: 75.00,
		},
		{
			name: "rounds to two decimals",
			base: 33.335, persons: 1,
			rule:     domain.GroupPricingRule{Type: domain.PricingPerPersonMultiply},
			expected: 33.34,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, Price(tt.base, tt.persons, tt.rule), 0.001)
		})
	}
}
