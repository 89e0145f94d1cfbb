package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/amirasaad/compago/pkg/app"
	"github.com/amirasaad/compago/pkg/dispatch"
	"github.com/amirasaad/compago/pkg/domain/account"
	"github.com/amirasaad/compago/pkg/domain/events"
	"github.com/amirasaad/compago/pkg/domain/payment"
	"github.com/amirasaad/compago/pkg/domain/session"
	"github.com/amirasaad/compago/pkg/mapper"
	"github.com/fatih/color"
)

// errQuit ends the read loop.
var errQuit = errors.New("quit")

var (
	promptColor = color.New(color.FgHiMagenta, color.Bold)
	errorColor  = color.New(color.FgRed)
)

// Shell is a line-oriented front end for the wallet controller. Each line is one
// view event; the resulting state is rendered after it. Settlements that finish
// while the shell is idle are rendered as they arrive.
type Shell struct {
	app     *app.App
	in      *bufio.Scanner
	out     io.Writer
	readPin func() (string, error)

	mu   sync.Mutex
	busy atomic.Bool
}

// NewShell wires a shell to a. readPin may be nil, in which case the PIN is read
// as a plain line.
func NewShell(a *app.App, in io.Reader, out io.Writer, readPin func() (string, error)) *Shell {
	return &Shell{app: a, in: bufio.NewScanner(in), out: out, readPin: readPin}
}

// Run reads commands until EOF, quit or ctx is done.
func (s *Shell) Run(ctx context.Context) error {
	unsubscribe := s.app.Subscribe(s.onChange)
	defer unsubscribe()

	if err := s.show(ctx); err != nil {
		return err
	}
	for {
		if ctx.Err() != nil {
			return nil
		}
		s.write(func(w io.Writer) { _, _ = promptColor.Fprint(w, "compago> ") })
		if !s.in.Scan() {
			return s.in.Err()
		}
		line := strings.TrimSpace(s.in.Text())
		if line == "" {
			continue
		}
		err := s.Execute(ctx, line)
		switch {
		case errors.Is(err, errQuit):
			return nil
		case errors.Is(err, dispatch.ErrClosed):
			return err
		case err != nil:
			s.write(func(w io.Writer) { _, _ = errorColor.Fprintf(w, "✗ %v\n", err) })
		}
		if err := s.show(ctx); err != nil {
			return err
		}
	}
}

// Execute runs one command line.
func (s *Shell) Execute(ctx context.Context, line string) error {
	s.busy.Store(true)
	defer s.busy.Store(false)

	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}
	name, args := strings.ToLower(fields[0]), fields[1:]
	rest := strings.Join(args, " ")

	switch name {
	case "help", "?":
		s.write(func(w io.Writer) { _, _ = fmt.Fprint(w, helpText) })
		return nil
	case "quit", "exit", "q":
		return errQuit
	case "state", "show":
		return nil
	case "login":
		pin := rest
		if pin == "" {
			var err error
			if pin, err = s.pin(); err != nil {
				return err
			}
		}
		return s.app.Login(ctx, pin)
	case "logout":
		return s.app.Logout(ctx)
	case "go", "nav":
		if len(args) != 1 {
			return fmt.Errorf("usage: go <%s>", screenNames())
		}
		screen, err := session.ParseScreen(args[0])
		if err != nil {
			return err
		}
		return s.app.Navigate(ctx, screen)
	case "set":
		if len(args) < 1 {
			return errors.New("usage: set <phone|id|bank|amount|memo> [value]")
		}
		patch, err := draftPatch(args[0], strings.Join(args[1:], " "))
		if err != nil {
			return err
		}
		return s.app.UpdateDraft(ctx, patch)
	case "channel":
		channel, err := account.ParseChannel(rest)
		if err != nil {
			return err
		}
		return s.app.SelectChannel(ctx, channel)
	case "contact":
		return s.app.SelectContact(ctx, rest)
	case "tap":
		return s.app.AutoFill(ctx, account.ChannelNFC)
	case "scan":
		return s.app.AutoFill(ctx, account.ChannelQR)
	case "review":
		_, err := s.app.RequestConfirmation(ctx)
		return err
	case "confirm":
		_, err := s.app.ConfirmSend(ctx)
		return err
	case "cancel":
		return s.app.CancelConfirm(ctx)
	case "charge":
		if len(args) == 0 {
			_, err := s.app.ActivateReceiveMode(ctx, "", "")
			return err
		}
		_, err := s.app.ActivateReceiveMode(ctx, args[0], strings.Join(args[1:], " "))
		return err
	case "stop":
		return s.app.CancelReceiveMode(ctx)
	case "simulate":
		_, err := s.app.SimulateIncomingPayment(ctx)
		return err
	case "filter":
		filter, err := account.ParseFilter(rest)
		if err != nil {
			return err
		}
		return s.app.SetHistoryFilter(ctx, filter)
	case "dismiss":
		_, err := s.app.DismissNotification(ctx)
		return err
	default:
		return fmt.Errorf("unknown command %q, type help", name)
	}
}

func (s *Shell) pin() (string, error) {
	if s.readPin != nil {
		return s.readPin()
	}
	s.write(func(w io.Writer) { _, _ = fmt.Fprint(w, "PIN: ") })
	if !s.in.Scan() {
		if err := s.in.Err(); err != nil {
			return "", err
		}
		return "", io.ErrUnexpectedEOF
	}
	return strings.TrimSpace(s.in.Text()), nil
}

func (s *Shell) show(ctx context.Context) error {
	snap, err := s.app.Snapshot(ctx)
	if err != nil {
		return err
	}
	st := mapper.MapSnapshotToDTO(snap)
	s.write(func(w io.Writer) { renderState(w, st) })
	return nil
}

// onChange runs on the dispatch loop. It only renders changes the shell did not
// cause itself.
func (s *Shell) onChange(e app.StateChanged) {
	if s.busy.Load() {
		return
	}
	st := mapper.MapSnapshotToDTO(e.Snapshot)
	switch e.Cause {
	case events.EventTypeNotificationChanged.String():
		if st.Notification == nil {
			return
		}
		s.write(func(w io.Writer) {
			_, _ = fmt.Fprintln(w)
			renderNotification(w, st.Notification)
		})
	default:
		s.write(func(w io.Writer) {
			_, _ = fmt.Fprintln(w)
			renderState(w, st)
			_, _ = promptColor.Fprint(w, "compago> ")
		})
	}
}

func (s *Shell) write(fn func(io.Writer)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.out)
}

func draftPatch(field, value string) (payment.DraftPatch, error) {
	var p payment.DraftPatch
	switch strings.ToLower(field) {
	case "phone", "telefono", "teléfono":
		p.Phone = &value
	case "id", "cedula", "cédula":
		p.LegalID = &value
	case "bank", "banco":
		p.Bank = &value
	case "amount", "monto":
		p.AmountText = &value
	case "memo", "concepto":
		p.Memo = &value
	default:
		return p, fmt.Errorf("unknown field %q", field)
	}
	return p, nil
}

func screenNames() string {
	names := make([]string, 0, len(session.Screens))
	for _, s := range session.Screens {
		names = append(names, s.String())
	}
	return strings.Join(names, "|")
}

const helpText = `Commands:
  login [pin]              log in (PIN is prompted when omitted)
  logout                   end the session
  go <screen>              dashboard | sendPayment | receivePayment | history | profile
  state                    show the current screen
  set <field> <value>      phone | id | bank | amount | memo
  channel <name>           nfc | qr | manual | contacto
  contact <name>           fill the form from a saved contact
  tap | scan               simulate an NFC tap or a QR scan
  review                   validate the form and show the confirmation
  confirm | cancel         send the reviewed payment or go back to the form
  charge <amount> [memo]   start receive mode
  simulate | stop          pay the active charge or stop receive mode
  filter <all|inbound|outbound>
  dismiss                  hide the notification
  quit
`
