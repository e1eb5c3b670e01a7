package proc

import (
	"fmt"
	"os"
	"os/exec"
	"strings"
	"sync"
	"time"

	"service-launcher/internal/logger"
	"service-launcher/internal/models"
	"service-launcher/internal/utils"
)

/**
 * ProcessInstance 进程实例信息
 * @property {string} title - 进程标题，用于显示
 * @property {string} command - 执行命令
 * @property {[]string} args - 命令参数
 * @property {string} workDir - 工作目录
 * @property {[]string} env - 追加的环境变量 KEY=VALUE
 * @property {string} logPath - 标准输出和标准错误重定向的日志文件
 * @property {string} status - 进程状态: running/exited/error
 */
type ProcessInstance struct {
	Title          string           //显示用的名字
	Command        string           //进程启动命令
	Args           []string         //进程参数
	WorkDir        string           //工作目录
	Env            []string         //追加的环境变量
	LogPath        string           //日志文件
	Status         models.RunStatus //状态
	StartTime      time.Time        //启动时间
	LastExitTime   time.Time        //退出时间
	LastExitReason string           //退出原因
	process        *os.Process
	mutex          sync.Mutex
}

func NewProcessInstance(title, command string, args []string) *ProcessInstance {
	return &ProcessInstance{
		Title:   title,
		Command: command,
		Args:    args,
		Status:  models.StatusExited,
	}
}

func (pi *ProcessInstance) Pid() int {
	pi.mutex.Lock()
	defer pi.mutex.Unlock()
	return pi.pid()
}

func (pi *ProcessInstance) pid() int {
	if pi.process == nil {
		return 0
	}
	return pi.process.Pid
}

func (pi *ProcessInstance) GetDetail() models.ProcessDetail {
	pi.mutex.Lock()
	defer pi.mutex.Unlock()

	return models.ProcessDetail{
		Title:          pi.Title,
		Command:        pi.Command,
		Args:           pi.Args,
		WorkDir:        pi.WorkDir,
		LogPath:        pi.LogPath,
		Pid:            pi.pid(),
		Status:         pi.Status,
		StartTime:      pi.StartTime,
		LastExitTime:   pi.LastExitTime,
		LastExitReason: pi.LastExitReason,
	}
}

/**
 * StartProcess 启动脱离启动器的子进程
 * @returns {error} 返回错误信息
 * @description
 * - 以截断方式打开日志文件，标准输出和标准错误都写入该文件
 * - 子进程的工作目录设置为WorkDir，启动器自身的工作目录不变
 * - 子进程运行在新的会话/进程组中，启动器退出后继续运行
 * - 启动器退出前，由协程回收子进程并记录退出原因
 */
func (pi *ProcessInstance) StartProcess() error {
	pi.mutex.Lock()
	defer pi.mutex.Unlock()

	if pi.Status == models.StatusRunning {
		return nil
	}
	logger.Infof("Executing command: %s", strings.Join(append([]string{pi.Command}, pi.Args...), " "))

	cmd := exec.Command(pi.Command, pi.Args...)
	cmd.Dir = pi.WorkDir
	cmd.Env = append(os.Environ(), pi.Env...)
	utils.SetDetached(cmd)

	if pi.LogPath != "" {
		logFile, err := os.OpenFile(pi.LogPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
		if err != nil {
			err = fmt.Errorf("open log file: %w", err)
			pi.setError(err)
			return err
		}
		// 子进程持有自己的文件描述符，父进程启动后即可关闭
		defer logFile.Close()
		cmd.Stdout = logFile
		cmd.Stderr = logFile
	}

	if err := cmd.Start(); err != nil {
		pi.setError(err)
		return err
	}

	pi.process = cmd.Process
	pi.Status = models.StatusRunning
	pi.StartTime = time.Now()
	pi.LastExitReason = ""
	logger.Infof("Process '%s' started (PID: %d)", pi.Title, pi.pid())

	go pi.reap(cmd)
	return nil
}

func (pi *ProcessInstance) setError(err error) {
	pi.Status = models.StatusError
	pi.LastExitReason = fmt.Sprintf("start failed: %v", err)
	logger.Errorf("Failed to start process '%s', error: %v", pi.Title, err)
}

// Exited reports whether a started process has already terminated.
func (pi *ProcessInstance) Exited() bool {
	pi.mutex.Lock()
	defer pi.mutex.Unlock()
	return pi.Status == models.StatusExited && !pi.LastExitTime.IsZero()
}

func (pi *ProcessInstance) reap(cmd *exec.Cmd) {
	err := cmd.Wait()

	pi.mutex.Lock()
	defer pi.mutex.Unlock()

	pi.LastExitTime = time.Now()
	if err != nil {
		pi.LastExitReason = fmt.Sprintf("exited with error: %v", err)
		logger.Warnf("Process '%s' (PID: %d) exited with error: %v", pi.Title, pi.pid(), err)
	} else {
		pi.LastExitReason = "exited normally"
		logger.Infof("Process '%s' (PID: %d) exited normally", pi.Title, pi.pid())
	}
	pi.Status = models.StatusExited
}
