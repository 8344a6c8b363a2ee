// Package cli implements the interactive shell: a line-oriented REPL over
// a Handle, exercising every get/set/capture operation by name.
package cli

import (
	"bufio"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

// Console abstracts the REPL's line I/O so it can be driven by stdio in
// production and by an in-memory buffer in tests.
type Console interface {
	ReadLine() (string, error)
	WriteLine(string)
}

var (
	promptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("99")).Bold(true)
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
	okStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("78"))
)

// StdConsole reads from r and writes styled output to w.
type StdConsole struct {
	r *bufio.Reader
	w io.Writer
}

func NewStdConsole(r io.Reader, w io.Writer) *StdConsole {
	return &StdConsole{r: bufio.NewReader(r), w: w}
}

func (c *StdConsole) ReadLine() (string, error) {
	fmt.Fprint(c.w, promptStyle.Render("picamera> "))
	line, err := c.r.ReadString('\n')
	if err != nil {
		return "", err
	}
	return trimNewline(line), nil
}

func (c *StdConsole) WriteLine(s string) {
	fmt.Fprintln(c.w, s)
}

func trimNewline(s string) string {
	for len(s) > 0 && (s[len(s)-1] == '\n' || s[len(s)-1] == '\r') {
		s = s[:len(s)-1]
	}
	return s
}
