//go:build !windows

package process

import "syscall"

// KillProcessGroup sends SIGKILL to the process group led by pid, which
// takes down Chrome's renderer and GPU helpers along with it.
func KillProcessGroup(pid int) {
	// Errors are ignored: launcher.Kill runs afterwards as a fallback.
	_ = syscall.Kill(-pid, syscall.SIGKILL)
}
