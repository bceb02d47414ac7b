package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStrPtr(t *testing.T) {
	assert.Nil(t, StrPtr(""))
	p := StrPtr("x")
	if assert.NotNil(t, p) {
		assert.Equal(t, "x", *p)
	}
}

func TestCollapseSpaces(t *testing.T) {
	assert.Equal(t, "a b c", CollapseSpaces("  a \t b\n\nc  "))
	assert.Equal(t, "", CollapseSpaces(" \t "))
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in   string
		n    int
		want string
	}{
		{"hello", 10, "hello"},
		{"hello", 3, "hel"},
		{"héllo", 2, "h"},
		{"abc", 0, "abc"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Truncate(tt.in, tt.n), tt.in)
	}
}
