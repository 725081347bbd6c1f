package money

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	cases := []struct {
		in   string
		want int64
	}{
		{"1000", 1000},
		{"1.000", 1000},
		{"1.000.000", 1000000},
		{"$ 25.500", 25500},
		{"$25.500,90", 25500},
		{"  3.200,00 ", 3200},
		{"0", 0},
		{"-1.500", -1500},
		{"", 0},
		{"abc", 0},
		{"$", 0},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, Normalize(c.in), "Normalize(%q)", c.in)
	}
}

func TestNormalizeStrict(t *testing.T) {
	n, ok := NormalizeStrict("0")
	assert.True(t, ok)
	assert.Equal(t, int64(0), n)

	_, ok = NormalizeStrict("no es plata")
	assert.False(t, ok)

	_, ok = NormalizeStrict("")
	assert.False(t, ok)
}

func TestNormalizeFloat(t *testing.T) {
	assert.Equal(t, int64(1999), NormalizeFloat(1999.99))
	assert.Equal(t, int64(0), NormalizeFloat(0.5))
}

func TestFormatRoundTrip(t *testing.T) {
	for _, n := range []int64{0, 7, 100, 1000, 25500, 1000000, 987654321} {
		assert.Equal(t, n, Normalize(Format(n)), "round-trip de %d", n)
	}
	assert.Equal(t, "1.000.000", Format(1000000))
	assert.Equal(t, "-1.500", Format(-1500))
}
