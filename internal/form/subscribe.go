package form

import (
	"context"
	"strings"

	"github.com/footballnews/landing/internal/handler/dto"
	"github.com/footballnews/landing/internal/validation"
)

// Subscriber sends an email to the subscribe relay.
type Subscriber interface {
	Subscribe(ctx context.Context, email string) (*dto.ProxyResponse, error)
}

// SubscribeForm controls the launch-list signup form.
type SubscribeForm struct {
	*machine
	api Subscriber
}

// NewSubscribeForm binds a signup form to gw and api.
func NewSubscribeForm(gw Gateway, api Subscriber, opts ...Option) *SubscribeForm {
	return &SubscribeForm{machine: newMachine(gw, opts), api: api}
}

// Submit validates the email and, when it passes, posts it. It returns the
// state the submission ended in: StateIdle with validation.ErrInvalid when
// the email was rejected locally, StateSuccess or StateFailure otherwise.
// A transport failure is returned alongside StateFailure.
func (f *SubscribeForm) Submit(ctx context.Context) (State, error) {
	if err := f.begin(); err != nil {
		return f.State(), err
	}

	email := strings.TrimSpace(f.gw.Value(FieldEmail))
	if !validation.IsEmail(email) {
		f.gw.ShowFieldError(FieldEmail, validation.MsgInvalidEmail)
		return f.rejectInvalid()
	}
	f.gw.ClearFieldError(FieldEmail)

	send := func(ctx context.Context) (*dto.ProxyResponse, error) {
		return f.api.Subscribe(ctx, email)
	}
	return f.submit(ctx, BusySubscribing, send, func(resp *dto.ProxyResponse) string {
		if resp.Message != "" {
			return resp.Message
		}
		return MsgSubscribed
	})
}

// Blur re-checks the email when it loses focus. An empty email is not
// flagged until the user submits.
func (f *SubscribeForm) Blur(field Field) {
	if field != FieldEmail {
		return
	}
	email := strings.TrimSpace(f.gw.Value(FieldEmail))
	if email != "" && !validation.IsEmail(email) {
		f.gw.ShowFieldError(FieldEmail, validation.MsgInvalidEmail)
		return
	}
	f.gw.ClearFieldError(FieldEmail)
}
