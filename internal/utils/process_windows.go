//go:build windows

package utils

import (
	"os/exec"
	"syscall"
)

const DETACHED_PROCESS = 0x00000008

// 新的进程组且不继承控制台
func setDetached(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{
		CreationFlags: syscall.CREATE_NEW_PROCESS_GROUP | DETACHED_PROCESS,
	}
}
