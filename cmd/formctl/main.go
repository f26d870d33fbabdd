// Package main is formctl, a terminal client for the landing page forms.
// It runs the same form controllers as the site against a relay server.
package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/footballnews/landing/internal/apiclient"
	"github.com/footballnews/landing/internal/form"
)

const defaultAPI = "http://localhost:8080"

// errNotDelivered marks a submission that ended without success. The
// controller has already printed why.
var errNotDelivered = errors.New("submission not delivered")

type options struct {
	api         string
	timeout     time.Duration
	interactive bool
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd(os.Stdin).ExecuteContext(ctx); err != nil {
		if !errors.Is(err, errNotDelivered) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}

func newRootCmd(in io.Reader) *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:   "formctl",
		Short: "Submit the Football News landing forms from a terminal",
		Long: `formctl drives the subscribe and contact forms against a running relay
server, with the same validation and messages as the website.

Example:
  formctl subscribe --email fan@example.com
  formctl contact -i --api https://footballnews.example`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	apiDefault := os.Getenv("FORMCTL_API")
	if apiDefault == "" {
		apiDefault = defaultAPI
	}
	root.PersistentFlags().StringVar(&opts.api, "api", apiDefault, "base URL of the relay server (env FORMCTL_API)")
	root.PersistentFlags().DurationVar(&opts.timeout, "timeout", 30*time.Second, "request timeout")
	root.PersistentFlags().BoolVarP(&opts.interactive, "interactive", "i", false, "prompt for each field")

	root.AddCommand(newSubscribeCmd(opts, in), newContactCmd(opts, in))
	return root
}

func newClient(opts *options) *apiclient.Client {
	return apiclient.New(opts.api, &http.Client{Timeout: opts.timeout})
}

func newSubscribeCmd(opts *options, in io.Reader) *cobra.Command {
	var email string

	cmd := &cobra.Command{
		Use:   "subscribe",
		Short: "Join the launch list",
		RunE: func(cmd *cobra.Command, args []string) error {
			gw := newTerminalGateway(cmd.OutOrStdout(), "Notify Me")
			ctrl := form.NewSubscribeForm(gw, newClient(opts), form.WithAutoHide(0))

			gw.Set(form.FieldEmail, email)
			if opts.interactive {
				p := newPrompter(in, cmd.OutOrStdout(), gw, ctrl)
				if err := p.ask(form.FieldEmail); err != nil {
					return err
				}
			}

			return finish(ctrl.Submit(cmd.Context()))
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "email address")
	return cmd
}

func newContactCmd(opts *options, in io.Reader) *cobra.Command {
	var name, email, message string

	cmd := &cobra.Command{
		Use:   "contact",
		Short: "Send a message to the team",
		RunE: func(cmd *cobra.Command, args []string) error {
			gw := newTerminalGateway(cmd.OutOrStdout(), "Send Message")
			ctrl := form.NewContactForm(gw, newClient(opts), form.WithAutoHide(0))

			gw.Set(form.FieldName, name)
			gw.Set(form.FieldEmail, email)
			gw.Set(form.FieldMessage, message)
			if opts.interactive {
				p := newPrompter(in, cmd.OutOrStdout(), gw, ctrl)
				for _, field := range form.ContactFields {
					if err := p.ask(field); err != nil {
						return err
					}
				}
			}

			return finish(ctrl.Submit(cmd.Context()))
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "your name")
	cmd.Flags().StringVar(&email, "email", "", "email address")
	cmd.Flags().StringVar(&message, "message", "", "message text")
	return cmd
}

// finish turns the controller outcome into the command's exit status.
func finish(state form.State, err error) error {
	if state == form.StateSuccess {
		return nil
	}
	if err != nil {
		return fmt.Errorf("%w: %w", errNotDelivered, err)
	}
	return errNotDelivered
}

// fieldEvents is the per-field half of a form controller.
type fieldEvents interface {
	Input(field form.Field)
	Blur(field form.Field)
}

// prompter reads field values line by line, validating each as it is
// left the way a browser does on blur.
type prompter struct {
	in   *bufio.Reader
	out  io.Writer
	gw   *terminalGateway
	ctrl fieldEvents
}

func newPrompter(in io.Reader, out io.Writer, gw *terminalGateway, ctrl fieldEvents) *prompter {
	return &prompter{in: bufio.NewReader(in), out: out, gw: gw, ctrl: ctrl}
}

// ask prompts until field passes its blur check or input runs out.
func (p *prompter) ask(field form.Field) error {
	for {
		fmt.Fprintf(p.out, "%s: ", strings.ToUpper(string(field[:1]))+string(field[1:]))

		line, err := p.in.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return fmt.Errorf("read %s: %w", field, err)
		}

		p.gw.Set(field, strings.TrimRight(line, "\r\n"))
		p.ctrl.Input(field)
		p.ctrl.Blur(field)

		if !p.gw.HasFieldError(field) {
			return nil
		}
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("no valid %s given", field)
		}
	}
}
