package services

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"service-launcher/internal/config"
	"service-launcher/internal/logger"
	"service-launcher/internal/models"
	"service-launcher/internal/proc"
	"service-launcher/internal/utils"

	"github.com/google/uuid"
)

/**
 * Launcher 按顺序启动服务
 * @property {*config.AppConfig} cfg - 应用配置
 * @property {Prober} prober - 端口探测
 * @property {*ReadinessWaiter} waiter - 启动后的就绪等待
 * @property {*Reporter} report - 控制台输出
 * @property {func} start - 启动进程
 */
type Launcher struct {
	cfg    *config.AppConfig
	prober Prober
	waiter *ReadinessWaiter
	report *Reporter
	start  func(*proc.ProcessInstance) error
}

func NewLauncher(cfg *config.AppConfig, out io.Writer) *Launcher {
	prober := utils.PortProber{Host: cfg.Probe.Host, Timeout: cfg.Probe.Timeout}
	return &Launcher{
		cfg:    cfg,
		prober: prober,
		waiter: NewReadinessWaiter(prober, cfg.Readiness),
		report: NewReporter(out),
		start:  (*proc.ProcessInstance).StartProcess,
	}
}

// WithProber replaces the port probe used for liveness and readiness checks.
func (l *Launcher) WithProber(p Prober) *Launcher {
	l.prober = p
	l.waiter = NewReadinessWaiter(p, l.cfg.Readiness)
	return l
}

func (l *Launcher) Prober() Prober {
	return l.prober
}

/**
 * Launch services one after another
 * @param {context.Context} ctx - Passed to every readiness wait
 * @param {[]config.ServiceConfig} svcs - Services in launch order
 * @returns {models.LaunchSummary} One result per service, in the same order
 * @description
 * - Services are processed sequentially and independently
 * - A failing service never stops the remaining ones
 * - The summary block is printed after the last service
 */
func (l *Launcher) LaunchAll(ctx context.Context, svcs []config.ServiceConfig) models.LaunchSummary {
	runID := uuid.NewString()
	logger.Infow("Launch run started", "run", runID, "services", len(svcs))

	l.report.Banner(l.cfg.Summary.Title)
	results := make([]models.LaunchResult, 0, len(svcs))
	for _, svc := range svcs {
		results = append(results, l.LaunchOne(ctx, svc))
	}

	summary := models.NewLaunchSummary(runID, results)
	RecordLaunchRun(summary)
	l.report.Summary(summary, svcs, l.cfg.Summary.Hint)

	logger.Infow("Launch run finished", "run", runID, "succeeded", summary.Succeeded, "total", summary.Total)
	return summary
}

// LaunchOne runs the start-or-skip decision and readiness wait for one service.
func (l *Launcher) LaunchOne(ctx context.Context, svc config.ServiceConfig) models.LaunchResult {
	l.report.Starting(svc)
	result := l.launchOne(ctx, svc)
	l.report.Result(svc, result)
	RecordLaunchResult(result)

	if result.Error != "" {
		logger.Warnw("Service launch finished", "service", svc.Name, "outcome", result.Outcome, "error", result.Error)
	} else {
		logger.Infow("Service launch finished", "service", svc.Name, "outcome", result.Outcome, "pid", result.Pid)
	}
	return result
}

func (l *Launcher) launchOne(ctx context.Context, svc config.ServiceConfig) models.LaunchResult {
	result := models.LaunchResult{
		Service: svc.Name,
		Port:    svc.Port,
	}

	if l.prober.Probe(svc.Port) {
		result.Outcome = models.OutcomeAlreadyRunning
		return result
	}

	info, err := os.Stat(svc.Path)
	if err != nil || !info.IsDir() {
		result.Outcome = models.OutcomeMissingPath
		if err == nil {
			err = fmt.Errorf("%s is not a directory", svc.Path)
		}
		result.Error = err.Error()
		return result
	}

	pi, err := newServiceProcess(svc)
	if err != nil {
		result.Outcome = models.OutcomeSpawnFailure
		result.Error = err.Error()
		return result
	}
	result.LogPath = pi.LogPath

	if err := l.start(pi); err != nil {
		result.Outcome = models.OutcomeSpawnFailure
		result.Error = err.Error()
		return result
	}
	result.Pid = pi.Pid()

	ready, attempts := l.waiter.Wait(ctx, svc.Port, pi.LogPath)
	result.Attempts = attempts
	if ready {
		result.Outcome = models.OutcomeStartedOK
		return result
	}

	result.Outcome = models.OutcomeSlowStart
	if pi.Exited() {
		result.Error = pi.GetDetail().LastExitReason
	}
	return result
}

// newServiceProcess builds the process for a service. The process runs in the
// service directory and logs to <path>/<name>.log.
func newServiceProcess(svc config.ServiceConfig) (*proc.ProcessInstance, error) {
	data := utils.CommandArgs{Name: svc.Name, Port: svc.Port, Dir: svc.Path}
	command, args, err := utils.GetCommandLine(svc.Command, data)
	if err != nil {
		return nil, err
	}
	env, err := utils.ExpandTemplates(svc.Env, data)
	if err != nil {
		return nil, err
	}

	pi := proc.NewProcessInstance("service "+svc.Name, command, args)
	pi.WorkDir = svc.Path
	pi.Env = env
	pi.LogPath = filepath.Join(svc.Path, svc.Name+".log")
	return pi, nil
}
