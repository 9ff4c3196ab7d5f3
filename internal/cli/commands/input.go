package commands

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

const stdinHint = "Reading from stdin, one text per line. Press Ctrl-D to finish."

// readLines reads r to EOF and returns its lines without line terminators.
// A final line without a newline is kept.
func readLines(r io.Reader) ([]string, error) {
	br := bufio.NewReader(r)
	var lines []string
	for {
		line, err := br.ReadString('\n')
		if line != "" {
			line = strings.TrimSuffix(line, "\n")
			lines = append(lines, strings.TrimSuffix(line, "\r"))
		}
		if errors.Is(err, io.EOF) {
			return lines, nil
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read input: %w", err)
		}
	}
}

// hintIfTerminal prints a usage hint to w when in is an interactive terminal.
func hintIfTerminal(in io.Reader, w io.Writer) {
	f, ok := in.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return
	}
	_, _ = fmt.Fprintln(w, stdinHint)
}
