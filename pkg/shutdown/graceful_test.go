package shutdown_test

import (
	"context"
	"errors"
	"os"
	"sync/atomic"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"davazen/pkg/shutdown"
)

var errHook = errors.New("hook failed")

func TestWaitExecutesHooksOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	var calls atomic.Int32
	hook := func(context.Context) error {
		calls.Add(1)
		return nil
	}
	failing := func(context.Context) error {
		calls.Add(1)
		return errHook
	}

	done := make(chan struct{})
	go func() {
		shutdown.Wait(ctx, time.Second, hook, failing, hook)
		close(done)
	}()

	cancel()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Wait did not return after context cancel")
	}
	assert.Equal(t, int32(3), calls.Load())
}

func TestWaitHooksGetLiveContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var hookErr error
	shutdown.Wait(ctx, time.Second, func(hookCtx context.Context) error {
		hookErr = hookCtx.Err()
		return nil
	})

	assert.NoError(t, hookErr)
}

func TestWaitRespectsTimeout(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	slow := func(hookCtx context.Context) error {
		select {
		case <-time.After(2 * time.Second):
			return nil
		case <-hookCtx.Done():
			return hookCtx.Err()
		}
	}

	start := time.Now()
	shutdown.Wait(ctx, 200*time.Millisecond, slow)

	assert.Less(t, time.Since(start), time.Second)
}

func TestWaitOnSignal(t *testing.T) {
	called := make(chan struct{})

	go shutdown.Wait(context.Background(), time.Second, func(context.Context) error {
		close(called)
		return nil
	})

	time.Sleep(100 * time.Millisecond)

	process, err := os.FindProcess(os.Getpid())
	require.NoError(t, err)
	require.NoError(t, process.Signal(syscall.SIGTERM))

	select {
	case <-called:
	case <-time.After(2 * time.Second):
		t.Error("hook was not called after SIGTERM")
	}
}
