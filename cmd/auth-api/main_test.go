package main

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/kinobon/ai-driven-internal-systems-dev/internal/testutil"
)

func Test_run(t *testing.T) {
	port, err := testutil.RandomPort()
	require.NoError(t, err, "failed to get random port to start server")
	listenAddr := fmt.Sprintf("localhost:%d", port)

	noEnv := func(string) string { return "" }
	getwd := func() (string, error) { return t.TempDir(), nil }

	t.Run("stop with signal", func(t *testing.T) {
		ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond) // Half Second
		t.Cleanup(cancel)

		err := run(ctx, noEnv, getwd, []string{
			"--address", listenAddr,
			"--log-level", "debug",
			"--signing-key", "secret",
		})

		require.NoError(t, err, "on correct stop should not return error")
	})

	t.Run("stop with init error", func(t *testing.T) {
		ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond) // Half Second
		t.Cleanup(cancel)

		// Unknown log level. Must fail
		err := run(ctx, noEnv, getwd, []string{
			"--address", listenAddr,
			"--log-level", "loud",
		})

		require.Error(t, err, "on incorrect start should return error")
	})

	t.Run("stop with env error", func(t *testing.T) {
		err := run(context.Background(), func(key string) string {
			if key == "AUTH_ACCESS_TOKEN_TTL" {
				return "never"
			}
			return ""
		}, getwd, nil)

		require.Error(t, err)
	})
}
