package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEngineDefaults(t *testing.T) {
	engine, err := NewEngine(0, 0)
	require.NoError(t, err)

	// 1500 * 1.4 = 2100
	assert.Equal(t, int64(2100), engine.RetailPriceCents())
}

func TestNewEngineRejectsInvalidInput(t *testing.T) {
	_, err := NewEngine(-1, 1.4)
	assert.Error(t, err)

	_, err = NewEngine(1500, 0.5)
	assert.Error(t, err)
}

func TestPriceCentsForSize(t *testing.T) {
	engine, err := NewEngine(1500, 1.4)
	require.NoError(t, err)

	for _, size := range []string{"S", "M", "L", "XL"} {
		assert.Equal(t, int64(2100), engine.PriceCentsForSize(size), "size %s", size)
	}

	// 2100 * 1.12 = 2352
	assert.Equal(t, int64(2352), engine.PriceCentsForSize("2XL"))
}

func TestPriceStringForSize(t *testing.T) {
	engine, err := NewEngine(1500, 1.4)
	require.NoError(t, err)

	assert.Equal(t, "21.00", engine.PriceStringForSize("M"))
	assert.Equal(t, "23.52", engine.PriceStringForSize("2XL"))
}

func TestCustomMarkup(t *testing.T) {
	engine, err := NewEngine(1500, 2.0)
	require.NoError(t, err)
	assert.Equal(t, int64(3000), engine.RetailPriceCents())
}
