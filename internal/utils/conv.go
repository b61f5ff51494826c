package utils

import (
	"strconv"
)

// StringToUint converts a route parameter to a uint id, returns 0 if invalid.
func StringToUint(s string) uint {
	i, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0
	}
	return uint(i)
}
