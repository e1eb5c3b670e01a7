package utils

import (
	"os/exec"
)

// SetDetached 设置进程属性，使子进程在父进程退出后继续运行
func SetDetached(cmd *exec.Cmd) {
	setDetached(cmd)
}
