package prompt

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Error lines printed when input does not satisfy a helper's
// constraint.
const (
	msgExpectedValue   = "Expected a value, please try again."
	msgExpectedInteger = "Expected an integer as input, please try again."
)

// Prompter wraps a LineReader with validation loops. Format errors are
// recovered by re-prompting and never returned; only reader I/O errors
// escape.
type Prompter struct {
	reader LineReader
	out    io.Writer
}

// NewPrompter returns a Prompter reading from r and printing
// validation messages to out.
func NewPrompter(r LineReader, out io.Writer) *Prompter {
	return &Prompter{reader: r, out: out}
}

// String returns one raw line. Blank input is allowed.
func (p *Prompter) String(prompt string) (string, error) {
	return p.reader.ReadLine(prompt)
}

// NonEmptyString repeats the prompt until a non-empty line is entered.
func (p *Prompter) NonEmptyString(prompt string) (string, error) {
	for {
		line, err := p.reader.ReadLine(prompt)
		if err != nil {
			return "", err
		}
		if len(line) > 0 {
			return line, nil
		}
		fmt.Fprintln(p.out, msgExpectedValue)
	}
}

// Integer repeats the prompt until the line parses as an integer.
func (p *Prompter) Integer(prompt string) (int64, error) {
	for {
		line, err := p.reader.ReadLine(prompt)
		if err != nil {
			return 0, err
		}
		value, err := strconv.ParseInt(strings.TrimSpace(line), 10, 64)
		if err != nil {
			fmt.Fprintln(p.out, msgExpectedInteger)
			continue
		}
		return value, nil
	}
}

// IntegerOrBlank is like Integer, but a blank line returns ok=false
// instead of re-prompting, meaning "leave unchanged".
func (p *Prompter) IntegerOrBlank(prompt string) (value int64, ok bool, err error) {
	for {
		line, err := p.reader.ReadLine(prompt)
		if err != nil {
			return 0, false, err
		}
		if len(line) == 0 {
			return 0, false, nil
		}
		value, parseErr := strconv.ParseInt(strings.TrimSpace(line), 10, 64)
		if parseErr != nil {
			fmt.Fprintln(p.out, msgExpectedInteger)
			continue
		}
		return value, true, nil
	}
}

// Confirm asks a yes/no question. Only a lowercased "y" counts as
// affirmative; anything else is a no.
func (p *Prompter) Confirm(prompt string) (bool, error) {
	line, err := p.reader.ReadLine(prompt)
	if err != nil {
		return false, err
	}
	return strings.ToLower(line) == "y", nil
}
