package naming

import (
	"path/filepath"
	"strings"
)

// CompressedSuffix is inserted between the input's base name and extension.
const CompressedSuffix = "_compressed"

// CompressedPath returns the output path for compressing input: same
// directory, same extension, with CompressedSuffix before the extension.
//
//	/media/holiday.mp4  -> /media/holiday_compressed.mp4
//	clip                -> clip_compressed
//	.hidden             -> .hidden_compressed
func CompressedPath(input string) string {
	dir, base := filepath.Split(input)
	ext := filepath.Ext(base)
	if ext == base {
		// Dotfile with no further extension: the dot is part of the name.
		ext = ""
	}
	stem := strings.TrimSuffix(base, ext)
	return dir + stem + CompressedSuffix + ext
}
