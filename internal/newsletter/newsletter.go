// Package newsletter handles the footer "subscribe" box. There is no mail
// provider behind it yet: Stub only pretends to call one.
package newsletter

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/aanand-mishra/hackathon-api/internal/form"
)

// ErrInvalidEmail is returned for addresses without an "@".
var ErrInvalidEmail = errors.New("please enter a valid email address")

// Subscriber adds an address to the mailing list.
type Subscriber interface {
	Name() string
	Subscribe(ctx context.Context, email string) error
}

// Stub waits for Delay and accepts every address.
type Stub struct {
	Delay time.Duration
}

// NewStub returns a Stub that answers after delay.
func NewStub(delay time.Duration) *Stub {
	return &Stub{Delay: delay}
}

func (s *Stub) Name() string { return "stub" }

func (s *Stub) Subscribe(ctx context.Context, _ string) error {
	if s.Delay <= 0 {
		return nil
	}

	t := time.NewTimer(s.Delay)
	defer t.Stop()

	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Subscribe checks email loosely, hands it to sub and reports the outcome
// through n. This is the only check the site ever did on this box.
func Subscribe(ctx context.Context, sub Subscriber, n form.Notifier, email string) error {
	n = form.NotifierFor(ctx, n)

	email = strings.TrimSpace(email)
	if email == "" || !strings.Contains(email, "@") {
		n.Notify(form.Failure, "Please enter a valid email address")
		return ErrInvalidEmail
	}

	if err := sub.Subscribe(ctx, email); err != nil {
		n.Notify(form.Failure, "Failed to subscribe. Please try again later.")
		return err
	}

	n.Notify(form.Success, "Thanks for subscribing! You'll receive updates soon.")
	return nil
}
