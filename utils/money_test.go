package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatUSD(t *testing.T) {
	assert.Equal(t, "21.00", FormatUSD(2100))
	assert.Equal(t, "25.99", FormatUSD(2599))
	assert.Equal(t, "0.05", FormatUSD(5))
}

func TestDisplayUSD(t *testing.T) {
	assert.Equal(t, "$21.00", DisplayUSD(2100))
}
