package main

import (
	"bytes"
	"context"
	"net"
	"os"
	"path/filepath"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/require"
	"github.com/wtnb75/devstatic"
)

func TestMain(m *testing.M) {
	color.NoColor = true
	os.Exit(m.Run())
}

// chdirClient moves into a temp dir that may hold the default client folder.
func chdirClient(t *testing.T, mkdir, index bool) {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	if mkdir {
		require.NoError(t, os.Mkdir(filepath.Join(dir, "client"), 0o755))
	}
	if index {
		require.NoError(t, os.WriteFile(filepath.Join(dir, "client", "index.html"), []byte("<h1>Hi</h1>"), 0o644))
	}
}

func run(t *testing.T, ctx context.Context, cfg devstatic.Config, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := realMain(ctx, cfg, args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestRealMain_MissingDirectory(t *testing.T) {
	chdirClient(t, false, false)
	code, stdout, _ := run(t, context.Background(), devstatic.DefaultConfig())
	require.Equal(t, 1, code)
	require.Equal(t, "Error: client directory not found!\n"+
		"Please make sure the client folder exists with index.html\n", stdout)
}

func TestRealMain_MissingIndex(t *testing.T) {
	chdirClient(t, true, false)
	code, stdout, _ := run(t, context.Background(), devstatic.DefaultConfig())
	require.Equal(t, 1, code)
	require.Equal(t, "Error: index.html not found in client directory!\n", stdout)
}

func TestRealMain_Interrupted(t *testing.T) {
	chdirClient(t, true, true)
	cfg := devstatic.DefaultConfig()
	cfg.Port = 0
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	code, stdout, stderr := run(t, ctx, cfg)
	require.Equal(t, 0, code, stderr)
	require.Contains(t, stdout, "Serving client directory at http://localhost:")
	require.Contains(t, stdout, "Press Ctrl+C to stop the server")
	require.Contains(t, stdout, "Server stopped.")
}

func TestRealMain_PortInUse(t *testing.T) {
	chdirClient(t, true, true)
	held, err := net.Listen("tcp", ":0")
	require.NoError(t, err)
	defer held.Close()

	cfg := devstatic.DefaultConfig()
	cfg.Port = held.Addr().(*net.TCPAddr).Port
	code, stdout, stderr := run(t, context.Background(), cfg)
	require.Equal(t, 2, code)
	require.Empty(t, stdout)
	require.Contains(t, stderr, "listen")
}

func TestRealMain_RejectsArguments(t *testing.T) {
	chdirClient(t, true, true)
	code, _, stderr := run(t, context.Background(), devstatic.DefaultConfig(), "extra")
	require.Equal(t, 2, code)
	require.Contains(t, stderr, "unknown command")
}
