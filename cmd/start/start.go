package start

import (
	"context"
	"fmt"
	"os"

	"service-launcher/cmd/root"
	"service-launcher/internal/config"
	"service-launcher/internal/logger"
	"service-launcher/services"

	"github.com/spf13/cobra"
)

var startCmd = &cobra.Command{
	Use:   "start [service name...]",
	Short: "Start services",
	Long:  `Start every configured service, or only the named ones, in configuration order`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return startServices(context.Background(), args)
	},
}

/**
 * Launch the selected services and push run metrics
 * @param {context.Context} ctx - Passed to the readiness waits
 * @param {[]string} names - Service names, empty for all
 * @returns {error} Selection error only, launch failures are reported per service
 * @example
 * err := startServices(context.Background(), []string{"data-processor"})
 */
func startServices(ctx context.Context, names []string) error {
	svcs, err := config.Config.Select(names)
	if err != nil {
		return err
	}

	launcher := services.NewLauncher(&config.Config, os.Stdout)
	summary := launcher.LaunchAll(ctx, svcs)

	if err := services.PushMetrics(config.Config.Metrics.Pushgateway, config.Config.Metrics.Job); err != nil {
		logger.Warnf("Failed to push metrics: %v", err)
	}
	if !summary.AllStarted() {
		logger.Infof("%d of %d services did not confirm startup", summary.Total-summary.Succeeded, summary.Total)
	}
	return nil
}

func init() {
	root.RootCmd.AddCommand(startCmd)

	startCmd.Example = fmt.Sprintf(`  # start all services
  launcher start

  # start selected services
  launcher start %s`, "people-matcher restaurant-matcher")
}
