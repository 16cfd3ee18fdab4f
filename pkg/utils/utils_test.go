package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMaskEmail(t *testing.T) {
	tests := []struct {
		name  string
		email string
		want  string
	}{
		{"regular", "alice@example.com", "a****@example.com"},
		{"long local part", "alexander@example.com", "a********@example.com"},
		{"single character", "a@example.com", "a****@example.com"},
		{"no at sign", "alice", "****"},
		{"empty local part", "@example.com", "****"},
		{"empty", "", "****"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MaskEmail(tt.email))
		})
	}
}

func TestStringPtr(t *testing.T) {
	p := StringPtr("123456")
	assert.Equal(t, "123456", *p)
}
