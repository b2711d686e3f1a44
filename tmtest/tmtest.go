/*
Package tmtest runs a tendermint node next to the application in tests.

The tendermint binary must be in the PATH. Tests are skipped when it is
missing unless FORCE_TM_TEST=1 is set. TM_DEBUG=1 forwards the node output
to stderr.
*/
package tmtest

import (
	"context"
	"io/ioutil"
	"os"
	"os/exec"
	"sync"
	"time"

	"github.com/safeharbor/harbor/harbortest/assert"
)

// TestReporter is the minimal subset of testing.TB the helpers need.
type TestReporter interface {
	assert.Tester
	Skipf(string, ...interface{})
	Logf(string, ...interface{})
}

// startupTime is how long a node gets to open its ports.
const startupTime = 2 * time.Second

func lookPath(t TestReporter, name string) string {
	t.Helper()
	path, err := exec.LookPath(name)
	if err == nil {
		return path
	}
	if os.Getenv("FORCE_TM_TEST") == "1" {
		t.Fatalf("%s binary not found. Unset FORCE_TM_TEST to skip this test.", name)
	}
	t.Skipf("%s binary not found. Set FORCE_TM_TEST=1 to fail this test.", name)
	return ""
}

func command(ctx context.Context, path string, args ...string) *exec.Cmd {
	cmd := exec.CommandContext(ctx, path, args...)
	if os.Getenv("TM_DEBUG") != "" {
		cmd.Stdout = os.Stderr
		cmd.Stderr = os.Stderr
	}
	return cmd
}

// InitHome creates a temporary home directory with the configuration,
// validator key and genesis file of a single node chain. The second value
// removes the directory.
func InitHome(t TestReporter) (string, func()) {
	t.Helper()
	tmpath := lookPath(t, "tendermint")

	home, err := ioutil.TempDir("", "tmtest")
	assert.Nil(t, err)
	cleanup := func() { os.RemoveAll(home) }

	if err := command(context.Background(), tmpath, "init", "--home", home).Run(); err != nil {
		cleanup()
		t.Fatalf("tendermint init failed: %s", err)
	}
	return home, cleanup
}

// RunTendermint starts a tendermint node using the given home directory.
// The returned cleanup function stops the process and blocks until it is
// gone. The process is also stopped once ctx is done.
func RunTendermint(ctx context.Context, t TestReporter, home string) (cleanup func()) {
	t.Helper()
	tmpath := lookPath(t, "tendermint")

	cmd := command(ctx, tmpath, "node", "--home", home)
	if err := cmd.Start(); err != nil {
		t.Fatalf("tendermint process failed: %s", err)
	}
	time.Sleep(startupTime)
	t.Logf("Running %s pid=%d", tmpath, cmd.Process.Pid)

	done := make(chan struct{})
	var once sync.Once
	cleanup = func() {
		once.Do(func() {
			_ = cmd.Process.Kill()
			_ = cmd.Wait()
			close(done)
		})
		<-done
	}
	go func() {
		select {
		case <-ctx.Done():
			cleanup()
		case <-done:
		}
	}()
	return cleanup
}
