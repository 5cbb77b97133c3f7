package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Prompter reads answers to prompts one line at a time.
type Prompter struct {
	r *bufio.Reader
	w io.Writer
}

// NewPrompter returns a Prompter that writes prompts to w and reads
// answers from r.
func NewPrompter(r io.Reader, w io.Writer) *Prompter {
	return &Prompter{r: bufio.NewReader(r), w: w}
}

// Ask writes prompt and returns the next input line without its line
// ending. Other whitespace is preserved. A final line without a newline is
// returned normally; io.EOF is returned only when no input is left.
func (p *Prompter) Ask(prompt string) (string, error) {
	if prompt != "" {
		fmt.Fprint(p.w, prompt)
	}
	line, err := p.r.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimRight(line, "\r\n"), nil
		}
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// Choice is like Ask but trims surrounding whitespace, for menu codes and ids.
func (p *Prompter) Choice(prompt string) (string, error) {
	answer, err := p.Ask(prompt)
	return strings.TrimSpace(answer), err
}

// Confirm asks a yes/no question. Only "y" or "yes" (any case) confirm;
// end of input counts as no.
func (p *Prompter) Confirm(prompt string) (bool, error) {
	answer, err := p.Choice(prompt + " [y/N] ")
	if err != nil {
		if errors.Is(err, io.EOF) {
			return false, nil
		}
		return false, err
	}
	switch strings.ToLower(answer) {
	case "y", "yes":
		return true, nil
	}
	return false, nil
}
