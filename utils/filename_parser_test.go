package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseDesignFileName(t *testing.T) {
	collection, date, timeOfDay := ParseDesignFileName("gaming_20240115_103000.png")
	assert.Equal(t, "gaming", collection)
	assert.Equal(t, "20240115", date)
	assert.Equal(t, "103000", timeOfDay)
}

func TestParseDesignFileNameHyphenSlug(t *testing.T) {
	collection, date, timeOfDay := ParseDesignFileName("retro-gaming_20240115_104500.jpg")
	assert.Equal(t, "retro-gaming", collection)
	assert.Equal(t, "20240115", date)
	assert.Equal(t, "104500", timeOfDay)
}

func TestParseDesignFileNameFallback(t *testing.T) {
	// Non-conforming names still get collected and uploaded; they just land
	// in the fallback bucket.
	collection, date, timeOfDay := ParseDesignFileName("IMG_001.png")
	assert.Equal(t, FallbackCollection, collection)
	assert.Equal(t, FallbackDate, date)
	assert.Empty(t, timeOfDay)
}

func TestParseDesignFileNameRejectsBadDateShape(t *testing.T) {
	collection, date, _ := ParseDesignFileName("gaming_2024_103000.png")
	assert.Equal(t, FallbackCollection, collection)
	assert.Equal(t, FallbackDate, date)
}

func TestMatchesDesignConvention(t *testing.T) {
	assert.True(t, MatchesDesignConvention("nature_20240115_104500.png"))
	assert.True(t, MatchesDesignConvention("funny-slogans_20231225_000000.jpeg"))
	assert.False(t, MatchesDesignConvention("IMG_001.png"))
	assert.False(t, MatchesDesignConvention("gaming_20240115_103000.gif"))
	assert.False(t, MatchesDesignConvention("gaming_20240115.png"))
}
