package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPostFilterNormalize(t *testing.T) {
	tests := []struct {
		name       string
		in         PostFilter
		wantPage   int
		wantLimit  int
		wantOffset int
	}{
		{
			name:       "within bounds",
			in:         PostFilter{Page: 3, Limit: 5},
			wantPage:   3,
			wantLimit:  5,
			wantOffset: 10,
		},
		{
			name: "over-cap limit clamps before the offset",
			// Unclamped this would skip rows 100-199 entirely: a query of
			// LIMIT 100 OFFSET 200 serves them on no page.
			in:         PostFilter{Page: 2, Limit: 200},
			wantPage:   2,
			wantLimit:  MaxPageLimit,
			wantOffset: MaxPageLimit,
		},
		{
			name:       "zero page",
			in:         PostFilter{Page: 0, Limit: 10},
			wantPage:   1,
			wantLimit:  10,
			wantOffset: 0,
		},
		{
			name:       "negative limit",
			in:         PostFilter{Page: 2, Limit: -1},
			wantPage:   2,
			wantLimit:  MaxPageLimit,
			wantOffset: MaxPageLimit,
		},
		{
			name:       "limit at the cap",
			in:         PostFilter{Page: 4, Limit: MaxPageLimit},
			wantPage:   4,
			wantLimit:  MaxPageLimit,
			wantOffset: 3 * MaxPageLimit,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.in.Normalize()
			assert.Equal(t, tt.wantPage, got.Page)
			assert.Equal(t, tt.wantLimit, got.Limit)
			assert.Equal(t, tt.wantOffset, got.Offset())
		})
	}
}
