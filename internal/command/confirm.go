package command

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/joeycumines/one-shot-calc/internal/history"
)

// promptConfirmer asks on out and reads a y/n answer from in. Anything but
// "y" or "yes", including end of input, declines.
type promptConfirmer struct {
	in  *bufio.Reader
	out io.Writer
}

var _ history.Confirmer = (*promptConfirmer)(nil)

func newPromptConfirmer(in io.Reader, out io.Writer) *promptConfirmer {
	return &promptConfirmer{in: bufio.NewReader(in), out: out}
}

func (c *promptConfirmer) Confirm(prompt string) bool {
	_, _ = fmt.Fprintf(c.out, "%s [y/N]: ", prompt)
	line, err := c.in.ReadString('\n')
	if err != nil && line == "" {
		_, _ = fmt.Fprintln(c.out)
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	}
	return false
}
