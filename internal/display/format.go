// Package display renders user-facing summaries: the banner, bitrate labels
// and before/after size comparisons.
package display

import (
	"fmt"

	"github.com/backmassage/vidshrink/internal/size"
)

// FormatBytesWithSign prefixes with + or - for delta display (e.g. "- 1.20 GB").
func FormatBytesWithSign(bytes int64) string {
	sign := ""
	if bytes > 0 {
		sign = "+ "
	} else if bytes < 0 {
		sign = "- "
		bytes = -bytes
	}
	return sign + size.FormatInt(bytes)
}

// FormatBitrateLabel returns a short label for bitrate in kbps (e.g. "1200 kbps").
func FormatBitrateLabel(kbps int64) string {
	if kbps < 1000 {
		return fmt.Sprintf("%d kbps", kbps)
	}
	return fmt.Sprintf("%.1f Mbps", float64(kbps)/1000)
}

// FormatReduction describes an input→output size change, e.g.
// "500.00 MB -> 98.20 MB (20% of original)".
func FormatReduction(inBytes, outBytes int64) string {
	pct := int64(100)
	if inBytes > 0 {
		pct = outBytes * 100 / inBytes
	}
	return fmt.Sprintf("%s -> %s (%d%% of original)", size.FormatInt(inBytes), size.FormatInt(outBytes), pct)
}

// FormatDuration renders seconds as H:MM:SS (or M:SS under an hour).
func FormatDuration(seconds float64) string {
	total := int64(seconds + 0.5)
	h, m, s := total/3600, (total%3600)/60, total%60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}
