package cli

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// fakeConsole replays a scripted list of input lines and records every
// line written back, so a test can assert on the REPL's output without any
// real stdio.
type fakeConsole struct {
	lines   []string
	pos     int
	written []string
}

func (c *fakeConsole) ReadLine() (string, error) {
	if c.pos >= len(c.lines) {
		return "", errors.New("fakeConsole: input exhausted")
	}
	line := c.lines[c.pos]
	c.pos++
	return line, nil
}

func (c *fakeConsole) WriteLine(s string) {
	c.written = append(c.written, s)
}

func (c *fakeConsole) contains(substr string) bool {
	for _, l := range c.written {
		if strings.Contains(l, substr) {
			return true
		}
	}
	return false
}

func TestReplOpenGetSetRoundTrip(t *testing.T) {
	console := &fakeConsole{lines: []string{
		"open",
		"set iso 640",
		"get iso",
		"set i 320",
		"get i",
		"exit",
	}}
	New(console).Run()

	require.True(t, console.contains("opened local handle"))
	require.True(t, console.contains("set iso returned 0"))
	require.True(t, console.contains("320"))
}

func TestReplUnknownFieldReportsError(t *testing.T) {
	console := &fakeConsole{lines: []string{
		"open",
		"get not_a_field",
		"exit",
	}}
	New(console).Run()

	require.True(t, console.contains("unknown field: not_a_field"))
}

func TestReplGetSetWithoutOpenHandleReportsError(t *testing.T) {
	console := &fakeConsole{lines: []string{
		"get iso",
		"set iso 100",
		"exit",
	}}
	New(console).Run()

	require.True(t, console.contains("no handle open"))

	reported := 0
	for _, l := range console.written {
		if strings.Contains(l, "no handle open") {
			reported++
		}
	}
	require.Equal(t, 2, reported)
}

func TestReplIsReportsKindBooleans(t *testing.T) {
	console := &fakeConsole{lines: []string{
		"open",
		"is remote",
		"is service",
		"is connected",
		"exit",
	}}
	New(console).Run()

	require.True(t, console.contains("is remote: false"))
	require.True(t, console.contains("is service: false"))
	require.True(t, console.contains("is connected: true"))
}

func TestReplUnknownCommandReportsError(t *testing.T) {
	console := &fakeConsole{lines: []string{"frobnicate", "exit"}}
	New(console).Run()

	require.True(t, console.contains("unknown command: frobnicate"))
}

func TestReplHelpListsCommands(t *testing.T) {
	console := &fakeConsole{lines: []string{"help", "exit"}}
	New(console).Run()

	require.True(t, console.contains("commands:"))
}

func TestReplStartRequiresThreeArguments(t *testing.T) {
	console := &fakeConsole{lines: []string{"start 127.0.0.1", "exit"}}
	New(console).Run()

	require.True(t, console.contains("usage: start HOST PORT MAX_CONN"))
}

func TestReplConnectFailureIsReported(t *testing.T) {
	console := &fakeConsole{lines: []string{"connect 127.0.0.1 1", "exit"}}
	New(console).Run()

	require.True(t, console.contains("connect returned"))
}
