package video

import (
	"fmt"
	"strings"
)

// gcd returns the greatest common divisor using the Euclidean algorithm
func gcd(a, b int) int {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

// CanonicalRatio reduces width:height by their greatest common divisor.
// 1920x1080 and 3840x2160 both yield "16:9".
func CanonicalRatio(width, height int) string {
	g := gcd(width, height)
	if g == 0 {
		return "0:0"
	}
	return fmt.Sprintf("%d:%d", width/g, height/g)
}

// SanitizeRatio makes a ratio key safe for use in a filename
func SanitizeRatio(ratio string) string {
	return strings.ReplaceAll(ratio, ":", "-")
}
