package grpcweb

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCancelGuardCloseAbortsContext(t *testing.T) {
	g := newCancelGuard(context.Background())
	select {
	case <-g.Context().Done():
		t.Fatal("context should not be done yet")
	default:
	}

	require.NoError(t, g.Close())

	select {
	case <-g.Context().Done():
	case <-time.After(time.Second):
		t.Fatal("context was not cancelled by Close")
	}
	assert.True(t, errors.Is(g.Cause(), ErrAborted))
}

func TestCancelGuardTimeoutFiresDistinguishedReason(t *testing.T) {
	g := newCancelGuard(context.Background())
	g.SetTimeout(10 * time.Millisecond)

	select {
	case <-g.Context().Done():
	case <-time.After(time.Second):
		t.Fatal("timeout never fired")
	}
	assert.True(t, errors.Is(g.Cause(), ErrTimedOut))
}

func TestCancelGuardSetTimeoutReplacesPrevious(t *testing.T) {
	g := newCancelGuard(context.Background())
	g.SetTimeout(5 * time.Millisecond)
	g.SetTimeout(time.Hour) // should cancel the 5ms timer

	select {
	case <-g.Context().Done():
		t.Fatal("context fired even though the short timer was replaced")
	case <-time.After(50 * time.Millisecond):
	}

	require.NoError(t, g.Close())
}

func TestCancelGuardAbortIsIdempotent(t *testing.T) {
	g := newCancelGuard(context.Background())
	g.Abort(nil)
	g.Abort(errors.New("second reason"))
	assert.True(t, errors.Is(g.Cause(), ErrAborted))
}
