package flow

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/gosh"
	"github.com/viant/venu/schema"
)

func TestQuote(t *testing.T) {
	assert.Equal(t, `'flow://x'`, quote("flow://x"))
	assert.Equal(t, `'it'\''s'`, quote("it's"))
}

func TestCommandLauncher(t *testing.T) {
	correlator := New(NewCommandLauncher("echo"), WithTimeout(10*time.Second))

	payload, err := correlator.LaunchAndAwait(context.Background(), "flow://discount")
	require.NoError(t, err)
	require.NotNil(t, payload)
	assert.Contains(t, *payload, "flow://discount")
}

func TestCommandLauncher_TimedOutFlowDoesNotBlockNext(t *testing.T) {
	script := filepath.Join(t.TempDir(), "flow.sh")
	require.NoError(t, os.WriteFile(script, []byte(`#!/bin/sh
case "$1" in
  slow) sleep 5 ;;
esac
echo "{\"discount_amount\":\"$1\"}"
`), 0o755))
	correlator := New(NewCommandLauncher("sh "+script), WithTimeout(time.Second))

	payload, err := correlator.LaunchAndAwait(context.Background(), "slow")
	assert.Nil(t, payload)
	assert.ErrorIs(t, err, schema.ErrFlowTimeout)

	started := time.Now()
	payload, err = correlator.LaunchAndAwait(context.Background(), "fast")
	require.NoError(t, err)
	require.NotNil(t, payload)
	assert.Contains(t, *payload, `"discount_amount":"fast"`)
	assert.Less(t, time.Since(started), time.Second)
}

func TestCommandLauncher_ShellError(t *testing.T) {
	launcher := NewCommandLauncher("echo", WithShell(func(context.Context) (*gosh.Service, error) {
		return nil, errors.New("no shell")
	}))
	payload, err := New(launcher).LaunchAndAwait(context.Background(), "flow://x")
	assert.Nil(t, payload)
	assert.ErrorContains(t, err, "no shell")
}

func TestCommandLauncher_Detached(t *testing.T) {
	correlator := New(NewCommandLauncher("echo", WithDetached()), WithTimeout(5*time.Second))
	done := launchAsync(correlator, "flow://receipt")
	var id string
	require.Eventually(t, func() bool {
		var ok bool
		id, ok = correlator.Pending()
		return ok
	}, time.Second, 10*time.Millisecond)

	assert.True(t, correlator.Deliver(id, schema.String("posted")))
	out := <-done
	require.NoError(t, out.err)
	assert.Equal(t, "posted", *out.payload)
}
