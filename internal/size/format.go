// Package size converts between human-entered size notation ("8MB",
// "1.5 gb") and byte counts.
//
// Units are binary multiples: KB = 1024 B, MB = 1024 KB, GB = 1024 MB.
package size

import (
	"fmt"
	"strconv"
)

// Unit is a size suffix together with its byte multiplier.
type Unit struct {
	Suffix     string
	Multiplier float64
}

// Units lists the recognized suffixes, largest first. Suffix matching walks
// this order so "GB" is never mistaken for a trailing "B".
var Units = []Unit{
	{"GB", 1024 * 1024 * 1024},
	{"MB", 1024 * 1024},
	{"KB", 1024},
	{"B", 1},
}

// formatOrder is the order Format tries units in (smallest first).
var formatOrder = []string{"B", "KB", "MB", "GB"}

// Format renders bytes with two decimals in the smallest unit whose scaled
// value is below 1024. Anything at or beyond 1024 GB still renders in GB.
func Format(bytes float64) string {
	v := bytes
	for i, unit := range formatOrder {
		if v < 1024 || i == len(formatOrder)-1 {
			return fmt.Sprintf("%.2f %s", v, unit)
		}
		v /= 1024
	}
	// unreachable: the loop always returns on its last unit
	return ""
}

// FormatInt is Format for integral byte counts such as os.FileInfo sizes.
func FormatInt(bytes int64) string {
	return Format(float64(bytes))
}

// Notation renders bytes as whole-number size notation in the largest unit
// that divides it exactly ("3MB", "1535B"). Parse reads it back to exactly
// bytes, which Format's two-decimal rendering does not guarantee.
func Notation(bytes int64) string {
	for _, u := range Units {
		m := int64(u.Multiplier)
		if bytes != 0 && bytes%m == 0 {
			return strconv.FormatInt(bytes/m, 10) + u.Suffix
		}
	}
	return strconv.FormatInt(bytes, 10) + "B"
}
