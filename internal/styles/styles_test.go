package styles

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDisabledStylesAreIdentity(t *testing.T) {
	s := New(false)
	assert.Equal(t, "hello", s.Heading("hello"))
	assert.Equal(t, "hello", s.Error("hello"))
	assert.Equal(t, "hello", s.Dim("hello"))
}

func TestColorEnabledExplicitModes(t *testing.T) {
	assert.True(t, ColorEnabled("always"))
	assert.False(t, ColorEnabled("never"))
}

func TestColorEnabledAutoWithoutTerminal(t *testing.T) {
	// Test processes run without a tty on stdout.
	assert.False(t, ColorEnabled("auto"))
}
