package display

import (
	"fmt"
	"io"

	"github.com/backmassage/vidshrink/internal/term"
)

// PrintBanner prints the ASCII art banner; uses Magenta if colors are enabled.
func PrintBanner(w io.Writer) {
	fmt.Fprint(w, term.Magenta)
	fmt.Fprint(w, `       _     _      _          _       _
__   _(_) __| |___| |__  _ __(_)_ __ | | __
\ \ / / |/ _`+"`"+` / __| '_ \| '__| | '_ \| |/ /
 \ V /| | (_| \__ \ | | | |  | | | | |   <
  \_/ |_|\__,_|___/_| |_|_|  |_|_| |_|_|\_\
`)
	if term.Enabled() {
		fmt.Fprint(w, term.NC)
	}
	fmt.Fprintln(w)
}
