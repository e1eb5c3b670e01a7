package models

// Outcome is the terminal state of one launch attempt.
type Outcome string

const (
	OutcomeAlreadyRunning Outcome = "already-running"
	OutcomeMissingPath    Outcome = "missing-path"
	OutcomeStartedOK      Outcome = "started-ok"
	OutcomeSlowStart      Outcome = "slow-start"
	OutcomeSpawnFailure   Outcome = "spawn-failure"
)

// LaunchResult 单个服务的启动结果
// @Description 服务启动结果，仅用于输出汇总
type LaunchResult struct {
	Service  string  `json:"service" example:"data-processor"`
	Port     int     `json:"port" example:"8001"`
	Outcome  Outcome `json:"outcome" example:"started-ok"`
	Pid      int     `json:"pid,omitempty" example:"4242"`
	LogPath  string  `json:"logPath,omitempty" example:"/srv/data-processor/data-processor.log"`
	Attempts int     `json:"attempts,omitempty" example:"3"`
	Error    string  `json:"error,omitempty"`
}

// Started reports whether the service is up, whether this run started it or not.
func (r LaunchResult) Started() bool {
	return r.Outcome == OutcomeStartedOK || r.Outcome == OutcomeAlreadyRunning
}

// LaunchSummary 一次启动的汇总
type LaunchSummary struct {
	RunID     string         `json:"runId"`
	Results   []LaunchResult `json:"results"`
	Succeeded int            `json:"succeeded"`
	Total     int            `json:"total"`
}

func NewLaunchSummary(runID string, results []LaunchResult) LaunchSummary {
	s := LaunchSummary{
		RunID:   runID,
		Results: results,
		Total:   len(results),
	}
	for _, r := range results {
		if r.Started() {
			s.Succeeded++
		}
	}
	return s
}

func (s LaunchSummary) AllStarted() bool {
	return s.Succeeded == s.Total
}
