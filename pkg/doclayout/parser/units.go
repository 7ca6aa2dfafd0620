// Package parser extracts layout entities from DOCX packages.
package parser

import (
	"strconv"
	"strings"
)

// EMUPerPixel is the number of EMUs (English Metric Units) per pixel at 96 DPI.
// 1 inch = 914400 EMU, 1 inch = 96 pixels at 96 DPI
// Therefore: 914400 / 96 = 9525 EMU per pixel
const EMUPerPixel = 9525

// PixelsToEMU converts pixels at 96 DPI to EMU.
func PixelsToEMU(px int) int64 {
	return int64(px) * EMUPerPixel
}

// parseDXA parses a twentieth-of-a-point integer. Non-numeric values yield 0.
func parseDXA(s string) int {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || v < 0 {
		return 0
	}
	return v
}

// parseEMU parses an extent attribute. Non-numeric values yield 0.
func parseEMU(s string) int64 {
	v, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || v < 0 {
		return 0
	}
	return v
}

// isDigits reports whether s is a non-empty run of ASCII digits.
func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}
