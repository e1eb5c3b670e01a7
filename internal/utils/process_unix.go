//go:build unix

package utils

import (
	"os/exec"
	"syscall"
)

// 新建会话，子进程脱离启动器的进程组和控制终端
func setDetached(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{
		Setsid: true,
	}
}
