package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPaginatedData(t *testing.T) {
	tests := []struct {
		name     string
		count    int
		total    int64
		page     int
		perPage  int
		wantFrom int
		wantTo   int
		wantLast int
	}{
		{"first full page", 10, 45, 1, 10, 1, 10, 5},
		{"middle page", 10, 45, 3, 10, 21, 30, 5},
		{"short last page", 5, 45, 5, 10, 41, 45, 5},
		{"empty result", 0, 0, 1, 10, 0, 0, 1},
		{"single item", 1, 1, 1, 10, 1, 1, 1},
		{"exact multiple", 10, 30, 3, 10, 21, 30, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPaginatedData(nil, tt.count, tt.total, tt.page, tt.perPage)

			assert.Equal(t, tt.wantFrom, p.From)
			assert.Equal(t, tt.wantTo, p.To)
			assert.Equal(t, tt.wantLast, p.LastPage)
			assert.Equal(t, tt.page, p.CurrentPage)
			assert.Equal(t, tt.total, p.Total)

			// invariant: from <= to <= total
			assert.LessOrEqual(t, int64(p.From), int64(p.To)+1)
			assert.LessOrEqual(t, int64(p.To), p.Total)
		})
	}
}

func TestClampPage(t *testing.T) {
	page, perPage := ClampPage(0, 10)
	assert.Equal(t, 1, page)
	assert.Equal(t, 10, perPage)

	page, perPage = ClampPage(-3, 0)
	assert.Equal(t, 1, page)
	assert.Equal(t, 10, perPage)

	page, perPage = ClampPage(7, 500)
	assert.Equal(t, 7, page)
	assert.Equal(t, 10, perPage)

	page, perPage = ClampPage(2, 25)
	assert.Equal(t, 2, page)
	assert.Equal(t, 25, perPage)
}
