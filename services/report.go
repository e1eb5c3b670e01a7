package services

import (
	"fmt"
	"io"
	"strings"

	"service-launcher/internal/config"
	"service-launcher/internal/models"

	"github.com/charmbracelet/lipgloss"
)

const separatorWidth = 50

// Reporter writes the human-readable launch progress. Colors are only used
// when the writer is a terminal.
type Reporter struct {
	out   io.Writer
	ok    lipgloss.Style
	warn  lipgloss.Style
	fail  lipgloss.Style
	title lipgloss.Style
	faint lipgloss.Style
}

func NewReporter(out io.Writer) *Reporter {
	r := lipgloss.NewRenderer(out)
	return &Reporter{
		out:   out,
		ok:    r.NewStyle().Foreground(lipgloss.Color("2")),
		warn:  r.NewStyle().Foreground(lipgloss.Color("3")),
		fail:  r.NewStyle().Foreground(lipgloss.Color("1")),
		title: r.NewStyle().Bold(true),
		faint: r.NewStyle().Faint(true),
	}
}

func (r *Reporter) printf(format string, args ...interface{}) {
	fmt.Fprintf(r.out, format, args...)
}

func (r *Reporter) Banner(title string) {
	r.printf("%s\n", r.title.Render("🚀 "+title))
	r.printf("%s\n", strings.Repeat("=", separatorWidth))
}

func (r *Reporter) Starting(svc config.ServiceConfig) {
	r.printf("\n🔄 Starting %s on port %d...\n", svc.Name, svc.Port)
}

/**
 * Print the outcome of one service
 * @param {config.ServiceConfig} svc - Launched service
 * @param {models.LaunchResult} res - Its result
 */
func (r *Reporter) Result(svc config.ServiceConfig, res models.LaunchResult) {
	switch res.Outcome {
	case models.OutcomeAlreadyRunning:
		r.printf("%s\n", r.ok.Render(fmt.Sprintf("✅ %s already running on port %d", svc.Name, svc.Port)))
	case models.OutcomeMissingPath:
		r.printf("%s\n", r.fail.Render(fmt.Sprintf("❌ Service directory not found: %s", svc.Path)))
	case models.OutcomeStartedOK:
		r.printf("%s\n", r.ok.Render(fmt.Sprintf("✅ %s started successfully on port %d", svc.Name, svc.Port)))
		r.printf("   PID: %d\n", res.Pid)
		r.printf("   Logs: %s\n", res.LogPath)
	case models.OutcomeSlowStart:
		r.printf("%s\n", r.warn.Render(fmt.Sprintf("⚠️  %s may be starting slowly, check logs at %s", svc.Name, res.LogPath)))
		if res.Error != "" {
			r.printf("   %s\n", r.faint.Render("process "+res.Error))
		}
	case models.OutcomeSpawnFailure:
		r.printf("%s\n", r.fail.Render(fmt.Sprintf("❌ Failed to start %s: %s", svc.Name, res.Error)))
	}
}

/**
 * Print the final summary block
 * @param {models.LaunchSummary} summary - Results of the run
 * @param {[]config.ServiceConfig} svcs - Services of the run, used for the URL list
 * @param {string} hint - Follow-up command, omitted when empty
 */
func (r *Reporter) Summary(summary models.LaunchSummary, svcs []config.ServiceConfig, hint string) {
	r.printf("\n%s\n", strings.Repeat("=", separatorWidth))
	if summary.AllStarted() {
		r.printf("%s\n", r.ok.Render("✅ All services started successfully!"))
	} else {
		r.printf("%s\n", r.warn.Render(fmt.Sprintf("⚠️  Started %d/%d services", summary.Succeeded, summary.Total)))
	}

	if len(svcs) > 0 {
		width := 0
		for _, svc := range svcs {
			if n := len(svc.DisplayName()) + 1; n > width {
				width = n
			}
		}
		r.printf("\nService URLs:\n")
		for _, svc := range svcs {
			r.printf("  - %-*s %s\n", width, svc.DisplayName()+":", svc.DocsURL())
		}
	}

	if hint != "" {
		r.printf("\nNext step: %s\n", hint)
	}
}
