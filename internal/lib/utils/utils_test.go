package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Hello World", "hello-world"},
		{"  Umrah -- Ramadan 2025!  ", "umrah-ramadan-2025"},
		{"Café Médina", "cafe-medina"},
		{"a___b", "a-b"},
		{"---", ""},
		{"مكة", ""},
		{"Tour: Petra & Wadi Rum", "tour-petra-wadi-rum"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Slugify(tt.in))
		})
	}
}
