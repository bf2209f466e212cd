package browser

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

const helpText = `Commands:
  ls                 refresh the listing
  cd <name>          open a bucket or folder
  back, ..           go up one level
  pwd                show the current path
  upload <file>      upload a local file into the current folder
  mkdir              create a folder in the current folder
  rm <name>          delete a file or folder
  mv <name>          move a file or folder
  cp <name>          copy a file or folder
  get <name>         get a download link for a file
  mkbucket           create a bucket
  rmbucket <name>    delete a bucket and everything in it
  help               show this text
  quit, exit         leave

At a prompt, Enter accepts the [default] and - cancels.
Ctrl-C leaves the session.`

// Session drives a Controller from text commands.
type Session struct {
	ctrl *Controller
	in   *Input
	out  io.Writer

	// OpenFile opens local files for upload. Defaults to os.Open.
	OpenFile func(name string) (io.ReadCloser, error)
}

// NewSession creates a session. in must be the Input the controller's prompter reads from.
func NewSession(ctrl *Controller, in *Input, out io.Writer) *Session {
	return &Session{
		ctrl: ctrl,
		in:   in,
		out:  out,
		OpenFile: func(name string) (io.ReadCloser, error) {
			return os.Open(name)
		},
	}
}

// Run shows the bucket list and executes commands until quit, end of input
// or ctx is done. Cancelling ctx abandons a pending read and is a clean exit.
func (s *Session) Run(ctx context.Context) error {
	stop := context.AfterFunc(ctx, s.in.Close)
	defer stop()
	defer s.in.Close()

	if err := s.ctrl.Init(ctx); err != nil && ctx.Err() == nil {
		s.report(err)
	}

	for {
		if ctx.Err() != nil {
			fmt.Fprintln(s.out)
			return nil
		}
		fmt.Fprintf(s.out, "%s> ", s.ctrl.State().Path())

		line, err := s.in.ReadLine()
		if err != nil {
			fmt.Fprintln(s.out)
			if errors.Is(err, io.EOF) || errors.Is(err, ErrInputClosed) {
				return nil
			}
			return err
		}

		quit, cmdErr := s.Exec(ctx, line)
		if cmdErr != nil && ctx.Err() == nil {
			s.report(cmdErr)
		}
		if quit {
			return nil
		}
	}
}

// Exec runs one command line. quit is true for quit and exit.
func (s *Session) Exec(ctx context.Context, line string) (quit bool, err error) {
	cmd, arg, _ := strings.Cut(strings.TrimSpace(line), " ")
	arg = strings.TrimSpace(arg)

	switch cmd {
	case "":
		return false, nil
	case "quit", "exit":
		return true, nil
	case "help":
		fmt.Fprintln(s.out, helpText)
		return false, nil
	case "pwd":
		fmt.Fprintln(s.out, s.ctrl.State().Path())
		return false, nil
	case "ls":
		return false, s.ctrl.Refresh(ctx)
	case "back", "..":
		return false, s.ctrl.GoBack(ctx)
	case "cd":
		if arg == ".." {
			return false, s.ctrl.GoBack(ctx)
		}
		card, err := s.card(arg)
		if err != nil {
			return false, err
		}
		if !card.Navigable() {
			return false, fmt.Errorf("%s is not a bucket or folder", arg)
		}
		return false, card.Click(ctx, TargetBody)
	case "upload":
		return false, s.upload(ctx, arg)
	case "mkdir":
		return false, s.ctrl.CreateFolder(ctx)
	case "mkbucket":
		return false, s.ctrl.CreateBucket(ctx)
	case "rm":
		return false, s.run(ctx, arg, ActionDelete)
	case "mv":
		return false, s.run(ctx, arg, ActionMove)
	case "cp":
		return false, s.run(ctx, arg, ActionCopy)
	case "get":
		return false, s.run(ctx, arg, ActionDownload)
	case "rmbucket":
		return false, s.run(ctx, arg, ActionDeleteBucket)
	}
	return false, fmt.Errorf("unknown command %q, try help", cmd)
}

func (s *Session) run(ctx context.Context, name string, a Action) error {
	card, err := s.card(name)
	if err != nil {
		return err
	}
	return card.Run(ctx, a)
}

func (s *Session) card(name string) (Card, error) {
	if name == "" {
		return Card{}, errors.New("name is required")
	}
	card, ok := s.ctrl.Grid().Find(name)
	if !ok {
		return Card{}, fmt.Errorf("no entry named %q here", name)
	}
	return card, nil
}

func (s *Session) upload(ctx context.Context, local string) error {
	if local == "" {
		return errors.New("file is required")
	}
	f, err := s.OpenFile(local)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", local, err)
	}
	defer f.Close()
	return s.ctrl.Upload(ctx, filepath.Base(local), f)
}

func (s *Session) report(err error) {
	fmt.Fprintf(s.out, "error: %v\n", err)
}
