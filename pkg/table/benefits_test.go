package table

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTranslateBenefits(t *testing.T) {
	tests := []struct {
		name     string
		benefits any
		want     []string
	}{
		{
			name: "great insurance with long leave and extras",
			benefits: map[string]any{
				"good_insurance":    true,
				"pregnancy":         true,
				"covers_dependents": false,
				"maternity_leaves":  6,
				"extras":            "gym",
			},
			want: []string{
				"Has GREAT insurance",
				"Pregnancy & childbirth is covered",
				"Maternity leave is more than standard, 6 months",
				"gym",
			},
		},
		{
			name: "standard everything",
			benefits: map[string]any{
				"good_insurance":   false,
				"maternity_leaves": 3,
			},
			want: []string{
				"Has standard insurance",
				"Maternity leave is standard to gov policy",
			},
		},
		{
			name: "good insurance at the threshold",
			benefits: map[string]any{
				"good_insurance":   true,
				"maternity_leaves": 4,
				"extras":           false,
			},
			want: []string{
				"Has good insurance",
				"Maternity leave is standard to gov policy",
			},
		},
		{
			name: "dependents alone upgrade insurance",
			benefits: map[string]any{
				"covers_dependents": true,
				"maternity_leaves":  4.5,
			},
			want: []string{
				"Has GREAT insurance",
				"Insurance is extended to dependents",
				"Maternity leave is more than standard, 4.5 months",
			},
		},
		{
			name:     "non-numeric leave",
			benefits: map[string]any{"maternity_leaves": "N/A"},
			want:     []string{"Has standard insurance", "WIP"},
		},
		{
			name:     "nil benefits",
			benefits: nil,
			want:     []string{"Has standard insurance", "WIP"},
		},
		{
			name:     "not a mapping",
			benefits: "lots",
			want:     []string{"Has standard insurance", "WIP"},
		},
		{
			name: "list extras append each item",
			benefits: map[string]any{
				"maternity_leaves": 2,
				"extras":           []any{"gym", "lunch"},
			},
			want: []string{
				"Has standard insurance",
				"Maternity leave is standard to gov policy",
				"gym",
				"lunch",
			},
		},
		{
			name: "empty extras string is kept",
			benefits: map[string]any{
				"maternity_leaves": 1,
				"extras":           "",
			},
			want: []string{
				"Has standard insurance",
				"Maternity leave is standard to gov policy",
				"",
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TranslateBenefits(tt.benefits))
		})
	}
}

func TestTranslateBenefitsDoesNotMutate(t *testing.T) {
	b := map[string]any{"pregnancy": true, "maternity_leaves": 9}
	_ = TranslateBenefits(b)
	assert.Equal(t, map[string]any{"pregnancy": true, "maternity_leaves": 9}, b)
}
