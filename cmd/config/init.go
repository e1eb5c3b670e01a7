package config

import (
	"errors"
	"fmt"
	"os"

	"service-launcher/cmd/root"
	"service-launcher/internal/config"

	"github.com/spf13/cobra"
)

var (
	initFormat string
	initOutput string
	initForce  bool
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Configuration file operations",

	// 配置文件可能还不存在，这里不加载配置
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a sample configuration file with the default services",
	RunE: func(cmd *cobra.Command, args []string) error {
		err := config.WriteSample(initOutput, initFormat, initForce)
		if errors.Is(err, os.ErrExist) {
			return fmt.Errorf("%s already exists, use --force to overwrite", initOutput)
		}
		if err != nil {
			return err
		}
		fmt.Printf("Sample configuration written to %s\n", initOutput)
		return nil
	},
}

func init() {
	initCmd.Flags().StringVarP(&initFormat, "format", "f", "", "yaml or toml (default: from the output extension)")
	initCmd.Flags().StringVarP(&initOutput, "output", "o", "launcher.yaml", "output file")
	initCmd.Flags().BoolVar(&initForce, "force", false, "overwrite an existing file")

	configCmd.AddCommand(initCmd)
	root.RootCmd.AddCommand(configCmd)

	configCmd.Example = `  launcher config init
  launcher config init --format toml --output launcher.toml`
}
