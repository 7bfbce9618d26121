package main

import (
	"io"
	"log/slog"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stevemurr/simple-items-server/config"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestRunRejectsUnknownBackend(t *testing.T) {
	cfg := config.Default()
	cfg.API.DataDir = t.TempDir()
	cfg.API.StoreBackend = "redis"

	err := run(cfg, discardLogger())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "backend=redis")
}

func TestRunRejectsUnknownIDStrategy(t *testing.T) {
	cfg := config.Default()
	cfg.API.DataDir = t.TempDir()
	cfg.API.IDStrategy = "random"

	err := run(cfg, discardLogger())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid id strategy")
}

// A listener failure is returned to main instead of exiting in place, so the
// store is closed on the way out.
func TestRunReturnsListenError(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()
	_, port, err := net.SplitHostPort(ln.Addr().String())
	require.NoError(t, err)

	cfg := config.Default()
	cfg.API.Host = "127.0.0.1"
	cfg.API.Port = port
	cfg.API.DataDir = t.TempDir()
	cfg.API.StoreBackend = "sqlite"

	err = run(cfg, discardLogger())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "address already in use")
}
