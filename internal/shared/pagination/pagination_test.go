package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParse_Defaults(t *testing.T) {
	p := Parse("", "")
	assert.Equal(t, DefaultPage, p.Page)
	assert.Equal(t, DefaultLimit, p.Limit)
}

func TestParse_InvalidValuesFallBack(t *testing.T) {
	tests := []struct {
		name      string
		page      string
		limit     string
		wantPage  int
		wantLimit int
	}{
		{"non-numeric", "abc", "xyz", DefaultPage, DefaultLimit},
		{"zero", "0", "0", DefaultPage, DefaultLimit},
		{"negative", "-3", "-10", DefaultPage, DefaultLimit},
		{"valid", "4", "25", 4, 25},
		{"limit capped", "1", "500", 1, MaxLimit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Parse(tt.page, tt.limit)
			assert.Equal(t, tt.wantPage, p.Page)
			assert.Equal(t, tt.wantLimit, p.Limit)
		})
	}
}

func TestParams_Offset(t *testing.T) {
	assert.Equal(t, 0, Params{Page: 1, Limit: 10}.Offset())
	assert.Equal(t, 10, Params{Page: 2, Limit: 10}.Offset())
	assert.Equal(t, 75, Params{Page: 4, Limit: 25}.Offset())
}

func TestNormalize_ClampsDirectConstruction(t *testing.T) {
	p := Params{Page: -1, Limit: 1000}.Normalize()
	assert.Equal(t, DefaultPage, p.Page)
	assert.Equal(t, MaxLimit, p.Limit)
}

func TestNewMeta_BoundaryMath(t *testing.T) {
	tests := []struct {
		name       string
		page       int
		limit      int
		total      int64
		wantPages  int
		wantNext   bool
		wantPrev   bool
	}{
		{"empty result", 1, 10, 0, 0, false, false},
		{"exact multiple", 1, 10, 20, 2, true, false},
		{"partial last page", 2, 10, 21, 3, true, true},
		{"last page", 3, 10, 21, 3, false, true},
		{"past the end", 5, 10, 21, 3, false, true},
		{"single item", 1, 10, 1, 1, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewMeta(Params{Page: tt.page, Limit: tt.limit}, tt.total)
			assert.Equal(t, tt.wantPages, m.TotalPages)
			assert.Equal(t, tt.wantNext, m.HasNextPage)
			assert.Equal(t, tt.wantPrev, m.HasPreviousPage)
			assert.Equal(t, tt.total, m.TotalItems)
		})
	}
}
