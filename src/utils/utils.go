package utils

import (
	"strconv"
	"strings"
)

// FormatFloors joins floors with commas, as shown in status lines.
func FormatFloors(floors []int) string {
	parts := make([]string, len(floors))
	for i, f := range floors {
		parts[i] = strconv.Itoa(f)
	}
	return strings.Join(parts, ",")
}

// Abs is the distance helper used by the cost functions.
func Abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
