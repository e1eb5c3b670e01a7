package status

import (
	"os"

	"service-launcher/cmd/root"
	"service-launcher/internal/config"
	"service-launcher/internal/utils"
	"service-launcher/services"

	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status [service name...]",
	Short: "Show which service ports are accepting connections",
	RunE: func(cmd *cobra.Command, args []string) error {
		svcs, err := config.Config.Select(args)
		if err != nil {
			return err
		}
		prober := utils.PortProber{Host: config.Config.Probe.Host, Timeout: config.Config.Probe.Timeout}
		return services.PrintStatus(os.Stdout, services.ProbeServices(prober, svcs))
	},
}

func init() {
	root.RootCmd.AddCommand(statusCmd)

	statusCmd.Example = `  launcher status
  launcher status data-processor`
}
