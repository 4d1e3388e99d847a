package controllers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQuantityDelta(t *testing.T) {
	assert.Equal(t, 5, quantityDelta(5, "increase"))
	assert.Equal(t, -5, quantityDelta(5, "decrease"))
	assert.Equal(t, -5, quantityDelta(5, "")) // absent status decreases
	assert.Equal(t, -5, quantityDelta(5, "anything-else"))
}
