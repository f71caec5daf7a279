package prompt

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/backmassage/vidshrink/internal/config"
	"github.com/backmassage/vidshrink/internal/size"
	"github.com/backmassage/vidshrink/internal/term"
)

// Prompt texts and replies.
const (
	PathPrompt   = "Paste the directory: "
	SizePrompt   = "Enter the desired filesize: "
	FileNotFound = "File not found."
)

// Prompter asks questions on out and reads answers from in, one line each.
// Lines are read by a background goroutine so a blocked read never holds
// up cancellation; the goroutine is abandoned when the process exits.
type Prompter struct {
	in  io.Reader
	out io.Writer

	start sync.Once
	lines chan string
}

// New returns a Prompter reading from in and writing to out.
func New(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: in, out: out}
}

func (p *Prompter) scan() {
	p.lines = make(chan string)
	go func() {
		defer close(p.lines)
		sc := bufio.NewScanner(p.in)
		for sc.Scan() {
			p.lines <- sc.Text()
		}
	}()
}

// readLine prints question and returns the next line. ok is false at end
// of input, on a read error, or once ctx is done.
func (p *Prompter) readLine(ctx context.Context, question string) (line string, ok bool) {
	if ctx.Err() != nil {
		return "", false
	}
	p.start.Do(p.scan)
	fmt.Fprint(p.out, question)

	select {
	case <-ctx.Done():
		fmt.Fprintln(p.out)
		return "", false
	case line, ok = <-p.lines:
	}
	if !ok || ctx.Err() != nil {
		fmt.Fprintln(p.out)
		return "", false
	}
	return line, true
}

// AskPath asks for the input file until an existing regular file is given.
// Surrounding quotes and whitespace are stripped; "exit" in any case
// requests exit, as does cancelling ctx.
func (p *Prompter) AskPath(ctx context.Context) Outcome[string] {
	for {
		line, ok := p.readLine(ctx, PathPrompt)
		if !ok {
			return Exit[string]()
		}
		path := config.CleanPathArg(line)
		if strings.EqualFold(path, "exit") {
			return Exit[string]()
		}
		if isRegularFile(path) {
			return With(path)
		}
		fmt.Fprintln(p.out, term.Paint(term.Red, FileNotFound))
	}
}

// AskSize asks for the target size until one parses and is smaller than
// currentBytes. "exit" or cancelling ctx requests exit, "return" requests
// a restart.
func (p *Prompter) AskSize(ctx context.Context, currentBytes int64) Outcome[float64] {
	for {
		line, ok := p.readLine(ctx, SizePrompt)
		if !ok {
			return Exit[float64]()
		}
		switch strings.ToLower(strings.TrimSpace(line)) {
		case "exit":
			return Exit[float64]()
		case "return":
			return Restart[float64]()
		}
		target, err := size.Parse(line, currentBytes)
		if err != nil {
			fmt.Fprintln(p.out, term.Paint(term.Red, err.Error()))
			continue
		}
		fmt.Fprintln(p.out, "Desired filesize: "+size.Format(target))
		return With(target)
	}
}

func isRegularFile(path string) bool {
	if path == "" {
		return false
	}
	fi, err := os.Stat(path)
	return err == nil && fi.Mode().IsRegular()
}
