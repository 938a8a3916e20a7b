// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"

	"github.com/danielhkuo/pollboard/pollclient"
)

const (
	Title      = "Online Polls Voting System"
	NoPolls    = "No polls available"
	Listing    = "Available Polls"
	Refreshing = "(refreshing)"
)

// Printer writes poll views as text
type Printer struct {
	w        io.Writer
	selected *color.Color
	failure  *color.Color
	muted    *color.Color
	heading  *color.Color
}

// NewPrinter returns a printer on w. Colour is used only when useColor.
func NewPrinter(w io.Writer, useColor bool) *Printer {
	p := &Printer{
		w:        w,
		selected: color.New(color.FgGreen, color.Bold),
		failure:  color.New(color.FgRed),
		muted:    color.New(color.Faint),
		heading:  color.New(color.Bold),
	}
	for _, c := range []*color.Color{p.selected, p.failure, p.muted, p.heading} {
		if useColor {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

// Polls writes the poll list: each option with its count, a total per
// poll, and the error flag when raised. Polls are numbered from 1 so the
// console can refer to them.
func (p *Printer) Polls(v pollclient.View) error {
	var b strings.Builder

	b.WriteString(p.heading.Sprint(Listing))
	if v.Loading {
		b.WriteString(" " + p.muted.Sprint(Refreshing))
	}
	b.WriteString("\n")

	if v.Err != "" {
		b.WriteString(p.failure.Sprint(v.Err) + "\n")
	}

	if len(v.Polls) == 0 {
		b.WriteString(NoPolls + "\n")
	}

	for i, poll := range v.Polls {
		fmt.Fprintf(&b, "%d. %s %s", i+1, poll.Question, p.muted.Sprintf("[%s]", poll.ID))
		switch {
		case poll.Pending:
			b.WriteString(" " + p.muted.Sprint("(vote pending)"))
		case poll.Voted:
			b.WriteString(" " + p.muted.Sprint("(voted)"))
		}
		b.WriteString("\n")

		for _, o := range poll.Options {
			line := fmt.Sprintf("%s - Votes: %s", o.Label, humanize.Comma(int64(o.Votes)))
			if o.Selected {
				line = p.selected.Sprint(line + " *")
			}
			b.WriteString("   " + line + "\n")
		}
		fmt.Fprintf(&b, "   Total Votes: %s\n", humanize.Comma(int64(poll.Total)))
	}

	_, err := io.WriteString(p.w, b.String())
	return err
}

// Draft writes the in-progress creation form
func (p *Printer) Draft(d pollclient.Draft) error {
	if d.IsZero() {
		_, err := fmt.Fprintln(p.w, "No draft in progress")
		return err
	}
	_, err := fmt.Fprintf(p.w, "Question: %s\nOptions: %s\n", d.Question, strings.Join(d.Options, ","))
	return err
}

// Error writes a failure message for the user
func (p *Printer) Error(msg string) error {
	_, err := fmt.Fprintln(p.w, p.failure.Sprint(msg))
	return err
}

// Info writes a plain line
func (p *Printer) Info(format string, args ...any) error {
	_, err := fmt.Fprintf(p.w, format+"\n", args...)
	return err
}
