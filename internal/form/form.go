// Package form drives the landing page's subscribe and contact forms.
//
// A form controller owns validation, the submit control and result display,
// but never touches a document directly: everything visible goes through a
// Gateway, so the same controller runs behind a browser bridge, a terminal
// prompt or a test fake.
package form

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/footballnews/landing/internal/handler/dto"
	"github.com/footballnews/landing/internal/validation"
)

// Field names a form input.
type Field string

// Fields known to the landing forms.
const (
	FieldName    Field = "name"
	FieldEmail   Field = "email"
	FieldMessage Field = "message"
)

// ResultKind selects how a result message is styled.
type ResultKind string

const (
	ResultSuccess ResultKind = "success"
	ResultError   ResultKind = "error"
)

// Messages shown in the result area.
const (
	MsgSubscribed   = "Success! You've been added to our launch list."
	MsgContactSent  = "Thank you! Your message has been sent successfully."
	MsgGenericError = "Oops! Something went wrong. Please try again."
	MsgNetworkError = "Network error. Please check your connection and try again."
)

// Busy labels shown on the submit control while a request is in flight.
const (
	BusySubscribing = "Subscribing..."
	BusySending     = "Sending..."
)

// AutoHideDelay is how long a result message stays visible.
const AutoHideDelay = 5 * time.Second

// ErrBusy is returned when Submit is called while a submission is in flight.
var ErrBusy = errors.New("form: submission already in progress")

// Gateway is the controller's view of a rendered form.
// HideResult may be called from a timer goroutine.
type Gateway interface {
	// Value returns the current raw value of a field.
	Value(field Field) string
	ShowFieldError(field Field, msg string)
	ClearFieldError(field Field)
	HasFieldError(field Field) bool

	// SubmitLabel returns the submit control's current label.
	SubmitLabel() string
	DisableSubmit(busyLabel string)
	EnableSubmit(label string)

	ShowResult(kind ResultKind, msg string)
	HideResult()

	// Reset clears every field value.
	Reset()
}

// State is a step of the submission state machine.
type State int

const (
	StateIdle State = iota
	StateValidating
	StateSubmitting
	StateSuccess
	StateFailure
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateValidating:
		return "validating"
	case StateSubmitting:
		return "submitting"
	case StateSuccess:
		return "success"
	case StateFailure:
		return "failure"
	default:
		return "unknown"
	}
}

// Option configures a form controller.
type Option func(*machine)

// WithAutoHide overrides AutoHideDelay. Zero or less keeps results visible.
func WithAutoHide(d time.Duration) Option {
	return func(m *machine) { m.autoHide = d }
}

// WithAfterFunc replaces the timer used for auto-hide. The returned function
// cancels the pending call, like (*time.Timer).Stop.
func WithAfterFunc(fn func(d time.Duration, f func()) (stop func() bool)) Option {
	return func(m *machine) { m.afterFunc = fn }
}

// WithObserver registers a callback for every state transition.
func WithObserver(fn func(from, to State)) Option {
	return func(m *machine) { m.observer = fn }
}

func timeAfterFunc(d time.Duration, f func()) func() bool {
	return time.AfterFunc(d, f).Stop
}

// machine is the state and result handling shared by every form.
type machine struct {
	gw Gateway

	mu    sync.Mutex
	state State

	autoHide  time.Duration
	afterFunc func(time.Duration, func()) func() bool
	observer  func(from, to State)
	stopHide  func() bool
}

func newMachine(gw Gateway, opts []Option) *machine {
	m := &machine{
		gw:        gw,
		autoHide:  AutoHideDelay,
		afterFunc: timeAfterFunc,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// State returns the current state.
func (m *machine) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// begin moves Idle to Validating, or reports ErrBusy.
func (m *machine) begin() error {
	m.mu.Lock()
	if m.state != StateIdle {
		m.mu.Unlock()
		return ErrBusy
	}
	m.state = StateValidating
	m.mu.Unlock()

	m.notify(StateIdle, StateValidating)
	return nil
}

func (m *machine) transition(to State) {
	m.mu.Lock()
	from := m.state
	m.state = to
	m.mu.Unlock()

	m.notify(from, to)
}

func (m *machine) notify(from, to State) {
	if m.observer != nil {
		m.observer(from, to)
	}
}

// acquireSubmit disables the submit control and returns the release that
// restores its original label. Release must run on every exit path.
func (m *machine) acquireSubmit(busyLabel string) (release func()) {
	original := m.gw.SubmitLabel()
	m.gw.DisableSubmit(busyLabel)
	return func() {
		m.gw.EnableSubmit(original)
	}
}

// showResult renders msg and schedules it to disappear. A newer result
// cancels the previous hide so it is not cut short.
func (m *machine) showResult(kind ResultKind, msg string) {
	m.gw.ShowResult(kind, msg)

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.stopHide != nil {
		m.stopHide()
		m.stopHide = nil
	}
	if m.autoHide > 0 {
		m.stopHide = m.afterFunc(m.autoHide, m.gw.HideResult)
	}
}

// Input clears a stale error marker as soon as the user edits the field.
func (m *machine) Input(field Field) {
	if m.gw.HasFieldError(field) {
		m.gw.ClearFieldError(field)
	}
}

// rejectInvalid returns to Idle after a failed field check.
func (m *machine) rejectInvalid() (State, error) {
	m.transition(StateIdle)
	return StateIdle, validation.ErrInvalid
}

type sendFunc func(ctx context.Context) (*dto.ProxyResponse, error)

// submit runs Submitting through to Success or Failure and always ends in
// Idle with the submit control restored.
func (m *machine) submit(ctx context.Context, busyLabel string, send sendFunc, successMsg func(*dto.ProxyResponse) string) (State, error) {
	m.transition(StateSubmitting)
	release := m.acquireSubmit(busyLabel)
	defer func() {
		release()
		m.transition(StateIdle)
	}()

	resp, err := send(ctx)
	if err != nil {
		m.transition(StateFailure)
		m.showResult(ResultError, MsgNetworkError)
		return StateFailure, err
	}

	if resp == nil || !resp.Success {
		msg := MsgGenericError
		if resp != nil && resp.Error != "" {
			msg = resp.Error
		}
		m.transition(StateFailure)
		m.showResult(ResultError, msg)
		return StateFailure, nil
	}

	m.transition(StateSuccess)
	m.showResult(ResultSuccess, successMsg(resp))
	m.gw.Reset()
	return StateSuccess, nil
}
