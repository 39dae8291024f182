package ident

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const ns = "https://ferrazzi.divi/#"

func TestAllocate(t *testing.T) {
	a := NewAllocator(ns)

	assert.Equal(t, ns+"Sub0", a.Allocate("Sub"))
	assert.Equal(t, ns+"Sub1", a.Allocate("Sub"))
	assert.Equal(t, ns+"H0", a.Allocate("H"))
	assert.Equal(t, ns+"Sub2", a.Allocate("Sub"))

	assert.Equal(t, 3, a.Count("Sub"))
	assert.Equal(t, 1, a.Count("H"))
	assert.Equal(t, 0, a.Count("R"))
}

func TestAllocateLargeCounter(t *testing.T) {
	a := NewAllocator(ns)
	var last string
	for i := 0; i < 1234; i++ {
		last = a.Allocate("F")
	}
	assert.Equal(t, ns+"F1233", last)
}

func TestForKey(t *testing.T) {
	a := NewAllocator(ns)

	first := a.ForKey("A", "57201234567")
	second := a.ForKey("A", "57201234567")
	assert.Equal(t, first, second)
	assert.Equal(t, ns+"A57201234567", first)
	assert.Equal(t, 0, a.Count("A"), "content identifiers must not consume counters")

	assert.NotEqual(t, a.ForKey("A", "1"), a.ForKey("A", "2"))
}

func TestLocal(t *testing.T) {
	a := NewAllocator(ns)
	id := a.Allocate("R")
	assert.Equal(t, "R0", a.Local(id))
	assert.Equal(t, "urn:other", a.Local("urn:other"))
	assert.Equal(t, ns, a.Namespace())
}

func TestEncode(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"doi kept", "10.1000/xyz-123", "10.1000/xyz-123"},
		{"space", "Machine Learning", "Machine%20Learning"},
		{"quote and angle", `a"<b>`, "a%22%3Cb%3E"},
		{"hash", "C#", "C%23"},
		{"brackets", "x[1]", "x%5B1%5D"},
		{"non ascii", "é", "%C3%A9"},
		{"existing escape re-escaped", "a%20b", "a%2520b"},
		{"lone percent", "50%", "50%25"},
		{"empty", "", ""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Encode(tc.in))
		})
	}
}

func TestEncodeInjective(t *testing.T) {
	pairs := [][2]string{
		{"10.1/a b", "10.1/a%20b"},
		{"C#", "C%23"},
		{"50%", "50%25"},
	}
	for _, p := range pairs {
		assert.NotEqual(t, Encode(p[0]), Encode(p[1]), "%q vs %q", p[0], p[1])
	}

	a := NewAllocator(ns)
	assert.NotEqual(t, a.ForKey("P", "10.1/a b"), a.ForKey("P", "10.1/a%20b"))
}
