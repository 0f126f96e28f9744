package share

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStripMarkup(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Date night", "Date night"},
		{"  padded  ", "padded"},
		{"<script>alert(1)</script>Fun", "Fun"},
		{"<i>Food</i> & Drink", "Food & Drink"},
		{"Joe's", "Joe's"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, StripMarkup(tt.in), tt.in)
	}
}
