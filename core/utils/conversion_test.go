package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToBool(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want bool
	}{
		{"True", true, true},
		{"False", false, false},
		{"IntOne", 1, true},
		{"IntZero", 0, false},
		{"FloatOne", float64(1), true},
		{"StringOne", "1", true},
		{"StringTrue", "true", true},
		{"StringTrueCaps", "True", true},
		{"StringZero", "0", false},
		{"StringGarbage", "yes", false},
		{"Nil", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ToBool(tt.in))
		})
	}
}

func TestToInt(t *testing.T) {
	assert.Equal(t, 5, ToInt(5))
	assert.Equal(t, 5, ToInt(float64(5)))
	assert.Equal(t, 5, ToInt("5"))
	assert.Equal(t, 0, ToInt("junk"))
}

func TestToString(t *testing.T) {
	assert.Equal(t, "abc", ToString("abc"))
	assert.Equal(t, "42", ToString(42))
	assert.Equal(t, "", ToString(nil))
}
