// Package repline reads lines of input for cmd/symcalc's REPL, either
// through GNU-readline-style editing when attached to a TTY or by
// scanning a plain stream directly. Adapted from internal/input's
// DirectCommandReader and InteractiveCommandReader (renamed DirectReader
// and InteractiveReader here, ReadCommand -> ReadLine), which read
// whole game commands one line at a time for game.CommandReader; this
// package reuses the identical readline/bufio mechanism to read raw
// expression and equation text instead.
package repline

import (
	"bufio"
	"io"
	"strings"

	"github.com/chzyer/readline"
)

// Reader reads a single line of user input at a time.
type Reader interface {
	// ReadLine blocks until a non-blank line is available (unless
	// blanks have been allowed via AllowBlank). Returns io.EOF with an
	// empty string once input is exhausted.
	ReadLine() (string, error)

	// Close releases any resources the Reader holds.
	Close() error
}

// DirectReader reads lines from any io.Reader without escape/history
// handling; suitable for piped input or non-TTY streams.
type DirectReader struct {
	r             *bufio.Reader
	blanksAllowed bool
}

// NewDirectReader wraps r in a DirectReader.
func NewDirectReader(r io.Reader) *DirectReader {
	return &DirectReader{r: bufio.NewReader(r)}
}

func (dr *DirectReader) ReadLine() (string, error) {
	var line string
	var err error

	for line == "" {
		line, err = dr.r.ReadString('\n')
		if err != nil && (err != io.EOF || line == "") {
			return "", err
		}

		line = strings.TrimSpace(line)

		if line == "" && dr.blanksAllowed {
			return line, nil
		}
	}

	return line, nil
}

func (dr *DirectReader) Close() error {
	return nil
}

func (dr *DirectReader) AllowBlank(allow bool) {
	dr.blanksAllowed = allow
}

// InteractiveReader reads lines from stdin via chzyer/readline, giving
// line editing and history when attached to a real TTY.
type InteractiveReader struct {
	rl            *readline.Instance
	blanksAllowed bool
	prompt        string
}

// NewInteractiveReader starts a readline session with the given prompt.
func NewInteractiveReader(prompt string) (*InteractiveReader, error) {
	rl, err := readline.NewEx(&readline.Config{Prompt: prompt})
	if err != nil {
		return nil, err
	}

	return &InteractiveReader{rl: rl, prompt: prompt}, nil
}

func (ir *InteractiveReader) ReadLine() (string, error) {
	var line string
	var err error

	for line == "" {
		line, err = ir.rl.Readline()
		if err != nil && (err != io.EOF || line == "") {
			return "", err
		}

		line = strings.TrimSpace(line)

		if line == "" && ir.blanksAllowed {
			return line, nil
		}
	}

	return line, nil
}

func (ir *InteractiveReader) Close() error {
	return ir.rl.Close()
}

func (ir *InteractiveReader) AllowBlank(allow bool) {
	ir.blanksAllowed = allow
}

func (ir *InteractiveReader) SetPrompt(p string) {
	ir.prompt = p
	ir.rl.SetPrompt(p)
}

func (ir *InteractiveReader) GetPrompt() string {
	return ir.prompt
}
