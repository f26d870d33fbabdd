package main

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/briandowns/spinner"

	"github.com/footballnews/landing/internal/form"
)

// terminalGateway renders a form on a terminal. Field errors and results
// are printed as they happen; the busy label becomes a spinner.
type terminalGateway struct {
	mu      sync.Mutex
	out     io.Writer
	values  map[form.Field]string
	errs    map[form.Field]string
	label   string
	busy    bool
	spinner *spinner.Spinner
}

func newTerminalGateway(out io.Writer, submitLabel string) *terminalGateway {
	return &terminalGateway{
		out:     out,
		values:  make(map[form.Field]string),
		errs:    make(map[form.Field]string),
		label:   submitLabel,
		spinner: spinner.New(spinner.CharSets[14], 120*time.Millisecond, spinner.WithWriter(out)),
	}
}

// Set stores what the user typed into field.
func (g *terminalGateway) Set(field form.Field, value string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.values[field] = value
}

func (g *terminalGateway) Value(field form.Field) string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.values[field]
}

func (g *terminalGateway) ShowFieldError(field form.Field, msg string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.errs[field] = msg
	fmt.Fprintf(g.out, "  ! %s: %s\n", field, msg)
}

func (g *terminalGateway) ClearFieldError(field form.Field) {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.errs, field)
}

func (g *terminalGateway) HasFieldError(field form.Field) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	_, ok := g.errs[field]
	return ok
}

func (g *terminalGateway) SubmitLabel() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.label
}

func (g *terminalGateway) DisableSubmit(busyLabel string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.busy = true
	g.label = busyLabel
	g.spinner.Suffix = " " + busyLabel
	g.spinner.Start()
}

func (g *terminalGateway) EnableSubmit(label string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.spinner.Stop()
	g.busy = false
	g.label = label
}

func (g *terminalGateway) ShowResult(kind form.ResultKind, msg string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	// The spinner still owns the line until EnableSubmit runs.
	g.spinner.Stop()
	marker := "ok"
	if kind == form.ResultError {
		marker = "error"
	}
	fmt.Fprintf(g.out, "[%s] %s\n", marker, msg)
}

// HideResult is a no-op: printed lines stay in the scrollback.
func (g *terminalGateway) HideResult() {}

func (g *terminalGateway) Reset() {
	g.mu.Lock()
	defer g.mu.Unlock()
	clear(g.values)
}
