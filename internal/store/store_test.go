package store_test

import (
	"testing"

	"github.com/phrazzld/jobmatch-api/internal/store"
	"github.com/stretchr/testify/assert"
)

func TestPageNormalize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   store.Page
		want store.Page
	}{
		{"zero value gets default limit", store.Page{}, store.Page{Limit: store.DefaultPageLimit}},
		{"negative limit", store.Page{Limit: -3, Offset: 10}, store.Page{Limit: store.DefaultPageLimit, Offset: 10}},
		{"limit capped", store.Page{Limit: 1000}, store.Page{Limit: store.MaxPageLimit}},
		{"negative offset", store.Page{Limit: 5, Offset: -1}, store.Page{Limit: 5}},
		{"valid page unchanged", store.Page{Limit: 20, Offset: 40}, store.Page{Limit: 20, Offset: 40}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.in.Normalize())
		})
	}
}
