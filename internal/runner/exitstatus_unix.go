//go:build unix

package runner

import (
	"os"
	"syscall"
)

// exitStatus returns the child's exit code, or -N when signal N killed it
func exitStatus(ps *os.ProcessState) int {
	if ws, ok := ps.Sys().(syscall.WaitStatus); ok && ws.Signaled() {
		return -int(ws.Signal())
	}
	return ps.ExitCode()
}
