// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/danielhkuo/pollboard/models"
	"github.com/danielhkuo/pollboard/pollclient"
	"github.com/danielhkuo/pollboard/render"
)

const helpText = `Commands:
  list                              show polls
  refresh                           fetch polls again
  vote <poll-number|poll-id> <option>
  create <question> | <opt1>, <opt2>, ...
  draft                             show the unsaved poll
  submit                            retry creating the unsaved poll
  help                              show this text
  quit                              exit`

// PollClient is the part of pollclient.Client the console drives
type PollClient interface {
	Refresh(ctx context.Context) error
	CastVote(ctx context.Context, pollID, option string) (bool, error)
	CreatePoll(ctx context.Context, d pollclient.Draft) (*models.Poll, error)
	SetDraft(d pollclient.Draft)
	Snapshot() pollclient.State
	View() pollclient.View
}

type Console struct {
	client  PollClient
	printer *render.Printer
	out     io.Writer
	prompt  bool
	logger  *slog.Logger
}

type Option func(*Console)

// WithPrompt prints "> " before each command
func WithPrompt(on bool) Option {
	return func(c *Console) { c.prompt = on }
}

func WithColor(on bool) Option {
	return func(c *Console) { c.printer = render.NewPrinter(c.out, on) }
}

func WithLogger(l *slog.Logger) Option {
	return func(c *Console) { c.logger = l }
}

func New(client PollClient, out io.Writer, opts ...Option) *Console {
	c := &Console{
		client:  client,
		out:     out,
		printer: render.NewPrinter(out, false),
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Run loads the poll list, then executes commands from in until EOF,
// quit or ctx is done. Cancelling ctx stops Run even while it waits for
// input.
func (c *Console) Run(ctx context.Context, in io.Reader) error {
	c.written(c.printer.Info("%s (type 'help' for commands)", render.Title))
	c.refresh(ctx)

	done := make(chan struct{})
	defer close(done)
	lines, readErr := readLines(in, done)

	for {
		if err := ctx.Err(); err != nil {
			return nil
		}
		if c.prompt {
			_, err := fmt.Fprint(c.out, "> ")
			c.written(err)
		}
		select {
		case <-ctx.Done():
			return nil
		case line, ok := <-lines:
			if !ok {
				return <-readErr
			}
			if quit := c.Exec(ctx, line); quit {
				return nil
			}
		}
	}
}

// readLines scans in on its own goroutine. lines is closed at EOF, after
// the scanner's error has been sent on the returned error channel. The
// goroutine stops once done is closed and it is not blocked reading.
func readLines(in io.Reader, done <-chan struct{}) (<-chan string, <-chan error) {
	lines := make(chan string)
	errc := make(chan error, 1)
	go func() {
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-done:
				return
			}
		}
		errc <- scanner.Err()
		close(lines)
	}()
	return lines, errc
}

// Exec runs a single command line and reports whether the user asked to quit
func (c *Console) Exec(ctx context.Context, line string) bool {
	line = strings.TrimSpace(line)
	if line == "" {
		return false
	}
	cmd, rest, _ := strings.Cut(line, " ")
	rest = strings.TrimSpace(rest)

	switch strings.ToLower(cmd) {
	case "list", "ls":
		c.written(c.printer.Polls(c.client.View()))
	case "refresh":
		c.refresh(ctx)
	case "vote":
		c.vote(ctx, rest)
	case "create":
		c.create(ctx, rest)
	case "draft":
		c.written(c.printer.Draft(c.client.Snapshot().Draft))
	case "submit":
		c.submit(ctx, c.client.Snapshot().Draft)
	case "help", "?":
		c.written(c.printer.Info("%s", helpText))
	case "quit", "exit":
		return true
	default:
		c.written(c.printer.Error(fmt.Sprintf("Unknown command %q (type 'help')", cmd)))
	}
	return false
}

// written logs output the console could not write
func (c *Console) written(err error) {
	if err != nil {
		c.logger.Debug("console write failed", "error", err)
	}
}

func (c *Console) refresh(ctx context.Context) {
	// The error flag in the view carries the failure
	_ = c.client.Refresh(ctx)
	c.written(c.printer.Polls(c.client.View()))
}

func (c *Console) vote(ctx context.Context, args string) {
	ref, option, _ := strings.Cut(args, " ")
	option = strings.TrimSpace(option)
	if ref == "" || option == "" {
		c.written(c.printer.Error("Usage: vote <poll-number|poll-id> <option>"))
		return
	}

	pollID := c.resolve(ref)
	ok, err := c.client.CastVote(ctx, pollID, option)
	switch {
	case errors.Is(err, pollclient.ErrUnknownPoll):
		c.written(c.printer.Error(fmt.Sprintf("No poll %q", ref)))
		return
	case errors.Is(err, pollclient.ErrUnknownOption):
		c.written(c.printer.Error(fmt.Sprintf("Poll %s has no option %q", ref, option)))
		return
	case err != nil:
		// Network trouble while voting is not shown to the user
		c.logger.Debug("vote not recorded", "poll_id", pollID, "error", err)
		return
	case !ok:
		c.written(c.printer.Info("You already voted on this poll"))
		return
	}
	c.written(c.printer.Polls(c.client.View()))
}

// resolve turns a poll reference into an id. An exact id wins; otherwise
// a 1-based number from the last listing picks that poll. Anything else
// is returned unchanged.
func (c *Console) resolve(ref string) string {
	polls := c.client.View().Polls
	for _, p := range polls {
		if p.ID == ref {
			return ref
		}
	}
	n, err := strconv.Atoi(ref)
	if err != nil || n < 1 || n > len(polls) {
		return ref
	}
	return polls[n-1].ID
}

func (c *Console) create(ctx context.Context, args string) {
	question, options, found := strings.Cut(args, "|")
	if !found {
		c.written(c.printer.Error("Usage: create <question> | <opt1>, <opt2>, ..."))
		return
	}
	d := pollclient.Draft{
		Question: strings.TrimSpace(question),
		Options:  pollclient.ParseOptions(options),
	}
	c.client.SetDraft(d)
	c.submit(ctx, d)
}

func (c *Console) submit(ctx context.Context, d pollclient.Draft) {
	if d.IsZero() {
		c.written(c.printer.Info("No draft in progress"))
		return
	}

	poll, err := c.client.CreatePoll(ctx, d)
	switch pollclient.Classify(err) {
	case pollclient.KindNone:
		c.written(c.printer.Info("Created poll %s", poll.ID))
		c.written(c.printer.Polls(c.client.View()))
	case pollclient.KindValidation:
		c.written(c.printer.Error(err.Error()))
	default:
		c.written(c.printer.Error("Failed to create poll; the draft was kept, type 'submit' to retry"))
	}
}
