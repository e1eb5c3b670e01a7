package services

import (
	"context"
	"time"

	"service-launcher/internal/config"
	"service-launcher/internal/logger"

	"github.com/fsnotify/fsnotify"
)

// Prober tells whether a local port accepts TCP connections.
type Prober interface {
	Probe(port int) bool
}

// ProberFunc adapts an ordinary function to Prober.
type ProberFunc func(port int) bool

func (f ProberFunc) Probe(port int) bool {
	return f(port)
}

/**
 * ReadinessWaiter 等待新启动的服务端口可连接
 * @property {Prober} prober - 端口探测
 * @property {int} attempts - 最多探测次数
 * @property {time.Duration} interval - 每次探测前的等待时间
 * @property {bool} watchLogs - 日志文件有写入时额外探测一次
 */
type ReadinessWaiter struct {
	prober    Prober
	attempts  int
	interval  time.Duration
	watchLogs bool
}

func NewReadinessWaiter(prober Prober, cfg config.ReadinessConfig) *ReadinessWaiter {
	return &ReadinessWaiter{
		prober:    prober,
		attempts:  cfg.Attempts,
		interval:  cfg.Interval,
		watchLogs: cfg.WatchLogs,
	}
}

/**
 * Wait until the port opens or the attempts are used up
 * @param {context.Context} ctx - Cancelling the context ends the wait as not ready
 * @param {int} port - Port to probe
 * @param {string} logPath - Log file of the service, watched when log watching is on
 * @returns {bool} true when the port accepted a connection
 * @returns {int} Number of scheduled probes used
 * @description
 * - Waits one interval before every scheduled probe
 * - The number of scheduled probes never exceeds the configured attempts
 * - Probes triggered by log writes are not counted
 */
func (w *ReadinessWaiter) Wait(ctx context.Context, port int, logPath string) (bool, int) {
	var (
		events <-chan fsnotify.Event
		errs   <-chan error
	)
	if w.watchLogs && logPath != "" {
		watcher, err := fsnotify.NewWatcher()
		if err != nil {
			logger.Warnf("Log watching disabled: %v", err)
		} else {
			defer watcher.Close()
			if err := watcher.Add(logPath); err != nil {
				logger.Warnf("Failed to watch '%s': %v", logPath, err)
			} else {
				events = watcher.Events
				errs = watcher.Errors
			}
		}
	}

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	attempts := 0
	for attempts < w.attempts {
		select {
		case <-ctx.Done():
			return false, attempts
		case <-ticker.C:
			attempts++
			if w.prober.Probe(port) {
				return true, attempts
			}
			logger.Debugf("Port %d not ready (attempt %d/%d)", port, attempts, w.attempts)
		case ev, ok := <-events:
			if !ok {
				events = nil
				continue
			}
			if ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) {
				if w.prober.Probe(port) {
					return true, attempts
				}
			}
		case err, ok := <-errs:
			if !ok {
				errs = nil
				continue
			}
			logger.Debugf("Watcher error on '%s': %v", logPath, err)
		}
	}
	return false, attempts
}
