package worker_test

import (
	"os/exec"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/okvee/queuectl/internal/worker"
)

func TestShellRunnerExitStatusZero(t *testing.T) {
	assert.NoError(t, worker.ShellRunner{}.Run("exit 0"))
}

func TestShellRunnerNonZeroExit(t *testing.T) {
	err := worker.ShellRunner{}.Run("exit 3")
	assert.Error(t, err)

	var exitErr *exec.ExitError
	if assert.ErrorAs(t, err, &exitErr) {
		assert.Equal(t, 3, exitErr.ExitCode())
	}
}

func TestShellRunnerCommandNotFound(t *testing.T) {
	// An unstartable command is indistinguishable from a failed one:
	// both count as a failed attempt.
	assert.Error(t, worker.ShellRunner{}.Run("/definitely/not/a/command"))
}

func TestShellRunnerPipelineUsesShell(t *testing.T) {
	assert.NoError(t, worker.ShellRunner{}.Run("echo hello | grep -q hello"))
}
