package root

import (
	"service-launcher/internal/config"
	"service-launcher/internal/logger"

	"github.com/spf13/cobra"
)

var configFile string

var RootCmd = &cobra.Command{
	Use:   "launcher",
	Short: "本地开发服务启动器",
	Long:  `launcher按顺序启动本地开发服务，跳过已在运行的服务，并等待端口就绪`,

	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := config.Init(configFile); err != nil {
			return err
		}
		return logger.InitLoggerWithMode(&config.Config.Log, cmd.Name() == "server")
	},
}

func init() {
	RootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "config file (default: launcher.yaml in . or ~/.config/launcher)")
}
