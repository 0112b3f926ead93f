package keyboard

import (
	"context"
	"io"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestAvailableFalseForPipe(t *testing.T) {
	r, w, err := os.Pipe()
	require.NoError(t, err)
	defer r.Close()
	defer w.Close()

	trigger := &Trigger{in: r, key: "z", logger: testLogger()}
	assert.False(t, trigger.Available())
}

func TestRunFiresOnKey(t *testing.T) {
	r, w, err := os.Pipe()
	require.NoError(t, err)
	defer r.Close()

	trigger := &Trigger{in: r, key: "z", logger: testLogger()}

	fired := make(chan struct{})
	done := make(chan struct{})
	go func() {
		trigger.Run(context.Background(), func() { close(fired) })
		close(done)
	}()

	_, err = w.WriteString("not the key\n")
	require.NoError(t, err)
	_, err = w.WriteString("Z\n")
	require.NoError(t, err)
	w.Close()

	select {
	case <-fired:
	case <-time.After(time.Second):
		t.Fatal("trigger did not fire")
	}
	<-done
}

func TestRunStopsOnContextCancel(t *testing.T) {
	r, w, err := os.Pipe()
	require.NoError(t, err)
	defer r.Close()
	defer w.Close()

	trigger := &Trigger{in: r, key: "z", logger: testLogger()}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		trigger.Run(ctx, func() { t.Error("must not fire") })
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("run did not stop on cancel")
	}
}
