package ffmpeg

import (
	"regexp"
	"strings"
)

// Pre-compiled regexes for recognizing common ffmpeg failures in stderr.
// Checked in order by [Hint]; the first match wins.
var hintRules = []struct {
	re   *regexp.Regexp
	hint func(m []string) string
}{
	{
		regexp.MustCompile(`Unknown encoder '([^']+)'|Encoder \(?'?([\w-]+)'?\)? not found`),
		func(m []string) string {
			name := m[1]
			if name == "" {
				name = m[2]
			}
			return "this ffmpeg build has no " + name + " encoder"
		},
	},
	{
		regexp.MustCompile(`No space left on device`),
		func([]string) string { return "the output volume is full" },
	},
	{
		regexp.MustCompile(`Permission denied`),
		func([]string) string { return "permission denied reading the input or writing the output" },
	},
	{
		regexp.MustCompile(`No such file or directory`),
		func([]string) string { return "the input file could not be opened" },
	},
	{
		regexp.MustCompile(`Invalid data found when processing input|moov atom not found`),
		func([]string) string { return "the input is not a readable media file" },
	},
}

// Hint returns a short explanation for a recognized ffmpeg failure, or ""
// when stderr matches nothing known. It never replaces the diagnostic.
func Hint(stderr string) string {
	for _, r := range hintRules {
		if m := r.re.FindStringSubmatch(stderr); m != nil {
			return r.hint(m)
		}
	}
	return ""
}

// Tail returns the last n non-empty lines of out.
func Tail(out string, n int) []string {
	var lines []string
	for _, l := range strings.Split(strings.TrimSpace(out), "\n") {
		if l = strings.TrimRight(l, "\r"); strings.TrimSpace(l) != "" {
			lines = append(lines, l)
		}
	}
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return lines
}
