package cmd

import (
	_ "service-launcher/cmd/config"
	_ "service-launcher/cmd/root"
	_ "service-launcher/cmd/server"
	_ "service-launcher/cmd/start"
	_ "service-launcher/cmd/status"
)
