package browser

import (
	"bufio"
	"errors"
	"io"
	"strings"
	"sync"
)

// ErrInputClosed is returned by ReadLine after Close.
var ErrInputClosed = errors.New("input closed")

// Input reads lines from a terminal in the background so a pending read
// can be abandoned. The session and the prompter share one Input.
type Input struct {
	lines  chan string
	eof    chan struct{}
	err    error
	closed chan struct{}
	once   sync.Once
}

// NewInput starts reading r.
func NewInput(r io.Reader) *Input {
	in := &Input{
		lines:  make(chan string),
		eof:    make(chan struct{}),
		closed: make(chan struct{}),
	}
	go in.read(bufio.NewReader(r))
	return in
}

func (in *Input) read(r *bufio.Reader) {
	for {
		line, err := r.ReadString('\n')
		if err != nil && line == "" {
			in.err = err
			close(in.eof)
			return
		}
		select {
		case in.lines <- strings.TrimRight(line, "\r\n"):
		case <-in.closed:
			return
		}
	}
}

// ReadLine returns the next line without its line ending. It returns the
// reader's error (io.EOF at end of input) or ErrInputClosed.
func (in *Input) ReadLine() (string, error) {
	select {
	case line := <-in.lines:
		return line, nil
	case <-in.closed:
		return "", ErrInputClosed
	case <-in.eof:
		return "", in.err
	}
}

// Close releases pending and future reads.
func (in *Input) Close() {
	in.once.Do(func() { close(in.closed) })
}
