package utils

import (
	"regexp"
)

// Fallback values used when a filename does not follow the generated-file
// convention. Malformed names must never abort a batch; they are bucketed
// into the generic "design" collection instead.
const (
	FallbackCollection = "design"
	FallbackDate       = "unknown"
)

// designFileRegex matches the generated-file convention:
// <collection>_<YYYYMMDD>_<HHMMSS>.<ext>
// Example: retro-gaming_20240115_103000.png
// The date must be exactly 8 digits and the time exactly 6 digits.
var designFileRegex = regexp.MustCompile(`^([a-zA-Z0-9-]+)_(\d{8})_(\d{6})\.(png|jpg|jpeg)$`)

// ParseDesignFileName extracts the collection slug, date and time embedded
// in a generated design filename. On a non-matching name it returns the
// fallback triple ("design", "unknown", "") rather than an error.
func ParseDesignFileName(filename string) (collection, date, timeOfDay string) {
	matches := designFileRegex.FindStringSubmatch(filename)
	if len(matches) != 5 {
		return FallbackCollection, FallbackDate, ""
	}
	return matches[1], matches[2], matches[3]
}

// MatchesDesignConvention reports whether the filename follows the
// generated-file convention exactly.
func MatchesDesignConvention(filename string) bool {
	return designFileRegex.MatchString(filename)
}
