package worker

import "os/exec"

// Runner executes a job's command and reports its outcome through the
// returned error: nil for exit status 0, non-nil for a non-zero exit or
// a command that could not be started at all. Both non-nil cases count
// as a failed attempt.
type Runner interface {
	Run(command string) error
}

// ShellRunner runs the command line through `sh -c`, blocking until the
// child exits. Deliberately no context plumbing: the shutdown protocol
// never interrupts an in-flight execution, and only the exit status is
// retained.
type ShellRunner struct{}

func (ShellRunner) Run(command string) error {
	return exec.Command("sh", "-c", command).Run()
}
