package form

import (
	"context"
	"strings"

	"github.com/footballnews/landing/internal/handler/dto"
	"github.com/footballnews/landing/internal/validation"
)

// ContactSender sends a message to the contact relay.
type ContactSender interface {
	Contact(ctx context.Context, req dto.ContactRequest) (*dto.ProxyResponse, error)
}

// ContactFields lists the contact form inputs in display order.
var ContactFields = []Field{FieldName, FieldEmail, FieldMessage}

// ContactForm controls the contact form.
type ContactForm struct {
	*machine
	api ContactSender
}

// NewContactForm binds a contact form to gw and api.
func NewContactForm(gw Gateway, api ContactSender, opts ...Option) *ContactForm {
	return &ContactForm{machine: newMachine(gw, opts), api: api}
}

// Submit validates every field, marking each offender, and posts the trimmed
// values when all pass. Results follow SubscribeForm.Submit.
func (f *ContactForm) Submit(ctx context.Context) (State, error) {
	if err := f.begin(); err != nil {
		return f.State(), err
	}

	req := dto.ContactRequest{
		Name:    strings.TrimSpace(f.gw.Value(FieldName)),
		Email:   strings.TrimSpace(f.gw.Value(FieldEmail)),
		Message: strings.TrimSpace(f.gw.Value(FieldMessage)),
	}

	valid := f.check(FieldName, validation.IsPresent(req.Name), validation.MsgNameRequired)
	valid = f.check(FieldEmail, validation.IsEmail(req.Email), validation.MsgInvalidEmail) && valid
	valid = f.check(FieldMessage, validation.IsPresent(req.Message), validation.MsgMessageRequired) && valid
	if !valid {
		return f.rejectInvalid()
	}

	send := func(ctx context.Context) (*dto.ProxyResponse, error) {
		return f.api.Contact(ctx, req)
	}
	return f.submit(ctx, BusySending, send, func(*dto.ProxyResponse) string {
		return MsgContactSent
	})
}

func (f *ContactForm) check(field Field, ok bool, msg string) bool {
	if ok {
		f.gw.ClearFieldError(field)
		return true
	}
	f.gw.ShowFieldError(field, msg)
	return false
}

// Blur re-checks a single field when it loses focus.
func (f *ContactForm) Blur(field Field) {
	value := strings.TrimSpace(f.gw.Value(field))
	switch {
	case value == "":
		f.gw.ShowFieldError(field, validation.RequiredMessage(string(field)))
	case field == FieldEmail && !validation.IsEmail(value):
		f.gw.ShowFieldError(field, validation.MsgInvalidEmail)
	default:
		f.gw.ClearFieldError(field)
	}
}
