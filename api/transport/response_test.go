package transport

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPageMeta(t *testing.T) {
	tests := []struct {
		name  string
		total int64
		page  int
		limit int
		want  PageMeta
	}{
		{
			name:  "first of three pages",
			total: 12, page: 1, limit: 5,
			want: PageMeta{Total: 12, Page: 1, Limit: 5, TotalPages: 3, HasNext: true, HasPrev: false},
		},
		{
			name:  "middle page",
			total: 12, page: 2, limit: 5,
			want: PageMeta{Total: 12, Page: 2, Limit: 5, TotalPages: 3, HasNext: true, HasPrev: true},
		},
		{
			name:  "last page",
			total: 12, page: 3, limit: 5,
			want: PageMeta{Total: 12, Page: 3, Limit: 5, TotalPages: 3, HasNext: false, HasPrev: true},
		},
		{
			name:  "exact fit",
			total: 10, page: 2, limit: 5,
			want: PageMeta{Total: 10, Page: 2, Limit: 5, TotalPages: 2, HasNext: false, HasPrev: true},
		},
		{
			name:  "empty listing",
			total: 0, page: 1, limit: 5,
			want: PageMeta{Total: 0, Page: 1, Limit: 5, TotalPages: 0, HasNext: false, HasPrev: false},
		},
		{
			name:  "zero page and limit normalized",
			total: 3, page: 0, limit: 0,
			want: PageMeta{Total: 3, Page: 1, Limit: 1, TotalPages: 3, HasNext: true, HasPrev: false},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NewPageMeta(tt.total, tt.page, tt.limit))
		})
	}
}
