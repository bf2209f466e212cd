package browser

import (
	"fmt"
	"io"
	"strings"
)

// CancelAnswer aborts a LinePrompter prompt.
const CancelAnswer = "-"

// Prompter is the dialog surface the controller talks to.
type Prompter interface {
	// Prompt asks for text. ok is false when the user cancelled.
	Prompt(msg, def string) (answer string, ok bool)
	// Confirm asks a yes/no question.
	Confirm(msg string) bool
	// Alert shows a message.
	Alert(msg string)
	// OpenURL hands a download link to the user.
	OpenURL(url string) error
}

// LinePrompter asks questions on a line-oriented terminal.
//
// An empty answer to Prompt accepts the default. CancelAnswer, end of
// input or a closed Input cancels.
type LinePrompter struct {
	in  *Input
	out io.Writer

	// Open is called by OpenURL. When nil the link is printed.
	Open func(url string) error
}

// NewLinePrompter creates a prompter. Pass the same Input the session reads commands from.
func NewLinePrompter(in *Input, out io.Writer) *LinePrompter {
	return &LinePrompter{in: in, out: out}
}

// Prompt implements Prompter.
func (p *LinePrompter) Prompt(msg, def string) (string, bool) {
	if def != "" {
		fmt.Fprintf(p.out, "%s [%s] (%s cancels) ", msg, def, CancelAnswer)
	} else {
		fmt.Fprintf(p.out, "%s (%s cancels) ", msg, CancelAnswer)
	}

	line, ok := p.readLine()
	if !ok || line == CancelAnswer {
		return "", false
	}
	if line == "" {
		return def, true
	}
	return line, true
}

// Confirm implements Prompter.
func (p *LinePrompter) Confirm(msg string) bool {
	fmt.Fprintf(p.out, "%s [y/N] ", msg)
	line, ok := p.readLine()
	if !ok {
		return false
	}
	switch strings.ToLower(line) {
	case "y", "yes":
		return true
	}
	return false
}

// Alert implements Prompter.
func (p *LinePrompter) Alert(msg string) {
	fmt.Fprintln(p.out, msg)
}

// OpenURL implements Prompter.
func (p *LinePrompter) OpenURL(url string) error {
	if p.Open != nil {
		return p.Open(url)
	}
	_, err := fmt.Fprintf(p.out, "Download: %s\n", url)
	return err
}

func (p *LinePrompter) readLine() (string, bool) {
	line, err := p.in.ReadLine()
	if err != nil {
		return "", false
	}
	return strings.TrimSpace(line), true
}
