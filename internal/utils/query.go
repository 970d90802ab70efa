// Package utils provides small helpers for reading request input that are
// independent of the intake domain.
package utils

import (
	"strconv"
	"strings"
)

// AtoiDefault parses s as a base-10 int after trimming surrounding space.
// Empty, malformed or out-of-range input yields def.
//
//	utils.AtoiDefault("14", 30)  // 14
//	utils.AtoiDefault("", 30)    // 30
//	utils.AtoiDefault("two", 30) // 30
func AtoiDefault(s string, def int) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return def
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	return def
}
