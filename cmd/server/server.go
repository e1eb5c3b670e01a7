package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"service-launcher/cmd/root"
	"service-launcher/controllers"
	"service-launcher/internal/config"
	"service-launcher/internal/logger"
	"service-launcher/internal/middleware"
	"service-launcher/services"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var launchAtBoot bool

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "启动HTTP服务",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return startServer(ctx)
	},
}

/**
 * Serve the launcher API until ctx is cancelled
 * @param {context.Context} ctx - Cancelled on SIGINT/SIGTERM
 * @returns {error} Listen error, nil after a clean shutdown
 * @description
 * - Optionally launches every configured service before serving
 * - Shuts the HTTP server down gracefully when ctx ends
 */
func startServer(ctx context.Context) error {
	gin.SetMode(config.Config.Server.Mode)
	router := gin.New()
	router.Use(gin.Recovery(), middleware.MetricsMiddleware())

	launcher := services.NewLauncher(&config.Config, os.Stdout)
	api := controllers.NewAPIController(&config.Config, launcher, root.RootCmd.Version)
	api.RegisterRoutes(router)

	if launchAtBoot {
		launcher.LaunchAll(ctx, config.Config.Services)
	}

	srv := &http.Server{
		Addr:    config.Config.Server.Address,
		Handler: router,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Infow("HTTP server listening", "address", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen on %s: %w", srv.Addr, err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		// 等待进行中的请求结束
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		logger.Infof("Shutting down HTTP server")
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

func init() {
	serverCmd.Flags().BoolVar(&launchAtBoot, "launch", false, "launch all services before serving")
	root.RootCmd.AddCommand(serverCmd)
}
