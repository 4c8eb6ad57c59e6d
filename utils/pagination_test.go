package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildPagination(t *testing.T) {
	tests := []struct {
		name  string
		total int64
		p     Paging
		want  Pagination
	}{
		{"empty", 0, Paging{Page: 1, PerPage: 10}, Pagination{Page: 1, PerPage: 10, Total: 0, TotalPages: 1}},
		{"first of three", 25, Paging{Page: 1, PerPage: 10}, Pagination{Page: 1, PerPage: 10, Total: 25, TotalPages: 3, HasNext: true}},
		{"middle", 25, Paging{Page: 2, PerPage: 10}, Pagination{Page: 2, PerPage: 10, Total: 25, TotalPages: 3, HasNext: true, HasPrev: true}},
		{"last", 25, Paging{Page: 3, PerPage: 10}, Pagination{Page: 3, PerPage: 10, Total: 25, TotalPages: 3, HasPrev: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, BuildPagination(tt.total, tt.p))
		})
	}
}

func TestPagingNormalize(t *testing.T) {
	p := Paging{Page: 0, PerPage: 0}.Normalize(20, 100)
	assert.Equal(t, Paging{Page: 1, PerPage: 20}, p)
	assert.Equal(t, 0, p.Offset())

	p = Paging{Page: 3, PerPage: 500}.Normalize(20, 100)
	assert.Equal(t, 100, p.PerPage)
	assert.Equal(t, 200, p.Offset())
}
