//go:build e2e && unix

package main

import (
	"fmt"
	"net"
	"net/http"
	"os/exec"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// startMockCatalog runs the mock listing API on a free port and returns its
// base URL. The process is stopped when the test ends.
func startMockCatalog(t *testing.T, args ...string) string {
	t.Helper()

	addr := freeAddr(t)
	cmd := exec.Command(mockBinPath, append([]string{"-addr", addr}, args...)...)
	require.NoError(t, cmd.Start(), "Failed to start mock catalog")
	t.Cleanup(func() {
		_ = cmd.Process.Kill()
		_, _ = cmd.Process.Wait()
	})

	baseURL := "http://" + addr
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		resp, err := http.Get(baseURL + "/healthz")
		if err == nil {
			resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return baseURL
			}
		}
		time.Sleep(25 * time.Millisecond)
	}
	t.Fatalf("mock catalog did not become healthy on %s", addr)
	return ""
}

func freeAddr(t *testing.T) string {
	t.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer l.Close()
	return fmt.Sprintf("127.0.0.1:%d", l.Addr().(*net.TCPAddr).Port)
}
