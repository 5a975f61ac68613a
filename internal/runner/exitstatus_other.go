//go:build !unix

package runner

import "os"

// exitStatus returns the child's exit code
func exitStatus(ps *os.ProcessState) int {
	return ps.ExitCode()
}
