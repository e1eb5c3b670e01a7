//go:build !unix && !windows

package utils

import "os/exec"

// 默认实现，用于不支持的构建目标
func setDetached(cmd *exec.Cmd) {
}
