package newsletter

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aanand-mishra/hackathon-api/internal/form"
)

type failing struct{}

func (failing) Name() string { return "failing" }

func (failing) Subscribe(context.Context, string) error { return errors.New("smtp down") }

func TestSubscribe_RejectsAddressWithoutAt(t *testing.T) {
	notes := &form.Collector{}
	err := Subscribe(context.Background(), NewStub(0), notes, "nobody")

	require.ErrorIs(t, err, ErrInvalidEmail)
	assert.Equal(t, []form.Notice{{Kind: form.Failure, Message: "Please enter a valid email address"}}, notes.Notices())
}

func TestSubscribe_Success(t *testing.T) {
	notes := &form.Collector{}
	start := time.Now()

	require.NoError(t, Subscribe(context.Background(), NewStub(20*time.Millisecond), notes, "a@b.c"))

	assert.GreaterOrEqual(t, time.Since(start), 20*time.Millisecond)
	assert.Equal(t, []form.Notice{{Kind: form.Success, Message: "Thanks for subscribing! You'll receive updates soon."}}, notes.Notices())
}

func TestSubscribe_ProviderFailure(t *testing.T) {
	notes := &form.Collector{}
	require.Error(t, Subscribe(context.Background(), failing{}, notes, "a@b.c"))
	assert.Equal(t, form.Failure, notes.Notices()[0].Kind)
}

func TestStub_HonoursCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := NewStub(time.Hour).Subscribe(ctx, "a@b.c")
	require.ErrorIs(t, err, context.Canceled)
}
