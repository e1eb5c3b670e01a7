package main

import (
	_ "service-launcher/cmd"
	"service-launcher/cmd/root"
	"service-launcher/internal/logger"
)

func main() {
	defer logger.Sync()

	if err := root.RootCmd.Execute(); err != nil {
		logger.Sync()
		logger.Fatal(err)
	}
}
