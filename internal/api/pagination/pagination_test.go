package pagination

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewMeta(t *testing.T) {
	cases := []struct {
		name       string
		total      int
		page       int
		limit      int
		totalPages int
	}{
		{"exact division", 20, 1, 10, 2},
		{"remainder adds page", 21, 1, 10, 3},
		{"empty result", 0, 1, 10, 0},
		{"single partial page", 3, 1, 10, 1},
		{"defaults applied", 5, 0, 0, 5},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			meta := NewMeta(tc.total, tc.page, tc.limit)
			require.Equal(t, tc.total, meta.Total)
			require.Equal(t, tc.totalPages, meta.TotalPages)
			require.GreaterOrEqual(t, meta.CurrentPage, 1)
			require.GreaterOrEqual(t, meta.Limit, 1)
		})
	}
}
