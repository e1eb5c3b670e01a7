package proc

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"service-launcher/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHelperProcess(t *testing.T) {
	if os.Getenv("PROC_HELPER_PROCESS") != "1" {
		return
	}
	wd, _ := os.Getwd()
	fmt.Println("cwd:", wd)
	fmt.Fprintln(os.Stderr, "greeting:", os.Getenv("GREETING"))
	os.Exit(0)
}

func helperInstance(t *testing.T, dir string) *ProcessInstance {
	t.Helper()
	exe, err := os.Executable()
	require.NoError(t, err)
	pi := NewProcessInstance("helper", exe, []string{"-test.run=^TestHelperProcess$"})
	pi.WorkDir = dir
	pi.Env = []string{"PROC_HELPER_PROCESS=1", "GREETING=hello"}
	pi.LogPath = filepath.Join(dir, "helper.log")
	return pi
}

func TestStartProcess_LogsAndExit(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "helper.log"), []byte("old run\n"), 0644))
	wd, err := os.Getwd()
	require.NoError(t, err)

	pi := helperInstance(t, dir)
	require.NoError(t, pi.StartProcess())
	assert.Positive(t, pi.Pid())

	require.Eventually(t, pi.Exited, 10*time.Second, 20*time.Millisecond)
	detail := pi.GetDetail()
	assert.Equal(t, models.StatusExited, detail.Status)
	assert.Equal(t, "exited normally", detail.LastExitReason)

	data, err := os.ReadFile(pi.LogPath)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "old run")
	assert.Contains(t, string(data), "greeting: hello")
	resolved, err := filepath.EvalSymlinks(dir)
	require.NoError(t, err)
	assert.Contains(t, string(data), "cwd: "+resolved)

	after, err := os.Getwd()
	require.NoError(t, err)
	assert.Equal(t, wd, after)
}

func TestStartProcess_MissingExecutable(t *testing.T) {
	dir := t.TempDir()
	pi := NewProcessInstance("missing", filepath.Join(dir, "no-such-binary"), nil)
	pi.LogPath = filepath.Join(dir, "missing.log")

	err := pi.StartProcess()
	require.Error(t, err)
	assert.Zero(t, pi.Pid())
	assert.False(t, pi.Exited())
	detail := pi.GetDetail()
	assert.Equal(t, models.StatusError, detail.Status)
	assert.Contains(t, detail.LastExitReason, "start failed")
}

func TestStartProcess_LogDirectoryMissing(t *testing.T) {
	pi := NewProcessInstance("nolog", "true", nil)
	pi.LogPath = filepath.Join(t.TempDir(), "missing", "x.log")

	err := pi.StartProcess()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "open log file")
}
