package session

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Prompter collects operator input. Implementations turn interrupt or
// end-of-input during a prompt into ErrCancelled.
type Prompter interface {
	Input(prompt string) (string, error)
	Confirm(prompt string) (bool, error)
}

// StdPrompter reads line-oriented answers from an input stream,
// normally os.Stdin.
type StdPrompter struct {
	reader *bufio.Reader
	out    io.Writer
}

func NewStdPrompter(in io.Reader, out io.Writer) *StdPrompter {
	return &StdPrompter{
		reader: bufio.NewReader(in),
		out:    out,
	}
}

// Input prints the prompt and returns the trimmed answer. End of input
// is a cancellation, not a failure.
func (p *StdPrompter) Input(prompt string) (string, error) {
	fmt.Fprint(p.out, prompt)

	line, err := p.reader.ReadString('\n')
	if err != nil {
		if err == io.EOF && strings.TrimSpace(line) != "" {
			return strings.TrimSpace(line), nil
		}
		fmt.Fprintln(p.out)
		return "", ErrCancelled
	}
	return strings.TrimSpace(line), nil
}

// Confirm asks a yes/no question. Only "y" and "yes" (case
// insensitive) count as yes.
func (p *StdPrompter) Confirm(prompt string) (bool, error) {
	answer, err := p.Input(prompt)
	if err != nil {
		return false, err
	}
	answer = strings.ToLower(answer)
	return answer == "y" || answer == "yes", nil
}
