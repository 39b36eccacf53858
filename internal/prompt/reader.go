// Package prompt reads validated input from the terminal.
package prompt

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/peterh/liner"
)

// LineReader reads one line of input after displaying a prompt.
type LineReader interface {
	ReadLine(prompt string) (string, error)
}

// Terminal reads lines through liner, giving the user line editing and
// persistent history. Close restores the terminal and saves history.
type Terminal struct {
	state       *liner.State
	historyPath string
}

// NewTerminal sets up a liner-backed reader. historyPath may be empty,
// in which case no history is loaded or saved.
func NewTerminal(historyPath string) *Terminal {
	state := liner.NewLiner()
	state.SetCtrlCAborts(true)

	if historyPath != "" {
		if f, err := os.Open(historyPath); err == nil {
			state.ReadHistory(f)
			f.Close()
		}
	}

	return &Terminal{state: state, historyPath: historyPath}
}

// ReadLine prompts for and returns one line. An aborted prompt
// (Ctrl-C) is reported as io.EOF so callers treat it like end of
// input.
func (t *Terminal) ReadLine(prompt string) (string, error) {
	line, err := t.state.Prompt(prompt)
	if err != nil {
		if err == liner.ErrPromptAborted {
			return "", io.EOF
		}
		return "", err
	}

	if strings.TrimSpace(line) != "" {
		t.state.AppendHistory(line)
	}
	return line, nil
}

// Close saves history and restores the terminal state.
func (t *Terminal) Close() error {
	if t.historyPath != "" {
		if f, err := os.Create(t.historyPath); err == nil {
			t.state.WriteHistory(f)
			f.Close()
		}
	}
	return t.state.Close()
}

// Plain reads lines from an io.Reader, writing prompts to out. Used
// for piped stdin and in tests.
type Plain struct {
	in  *bufio.Reader
	out io.Writer
}

// NewPlain returns a reader over in that echoes prompts to out.
func NewPlain(in io.Reader, out io.Writer) *Plain {
	return &Plain{in: bufio.NewReader(in), out: out}
}

// ReadLine writes the prompt and returns the next line without its
// trailing newline. A final line without a newline is still returned;
// the EOF surfaces on the following call.
func (p *Plain) ReadLine(prompt string) (string, error) {
	fmt.Fprint(p.out, prompt)

	line, err := p.in.ReadString('\n')
	if err != nil {
		if err == io.EOF && line != "" {
			return strings.TrimRight(line, "\r\n"), nil
		}
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// New returns the best reader for the current environment and a close
// function to call on shutdown. When the terminal does not support
// line editing (piped stdin, dumb terminals), liner is skipped so
// scripted sessions read plain lines.
func New(historyPath string) (LineReader, func() error) {
	if liner.TerminalSupported() {
		t := NewTerminal(historyPath)
		return t, t.Close
	}

	p := NewPlain(os.Stdin, os.Stdout)
	return p, func() error { return nil }
}
