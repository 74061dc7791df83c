package number

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInt(t *testing.T) {
	assert.Equal(t, "340282366920938463463374607431768211455", Int("340282366920938463463374607431768211455").String())
	assert.True(t, Int("not-a-number").IsZero())
}

func TestPow10(t *testing.T) {
	assert.Equal(t, "1", Pow10(0).String())
	assert.Equal(t, "1000000000000000000", Pow10(18).String())
}
