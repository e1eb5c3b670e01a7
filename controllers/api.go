package controllers

import (
	"net/http"
	"sync"
	"time"

	"service-launcher/internal/config"
	"service-launcher/internal/models"
	"service-launcher/services"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type APIController struct {
	cfg       *config.AppConfig
	launcher  *services.Launcher
	prober    services.Prober
	version   string
	startTime time.Time
	launching sync.Mutex
}

/**
 * Create new API controller instance
 * @param {*config.AppConfig} cfg - Loaded configuration, its services are the ones served
 * @param {*services.Launcher} launcher - Launcher used by the launch endpoints
 * @param {string} version - Version reported by /healthz
 * @returns {*APIController} New API controller instance
 */
func NewAPIController(cfg *config.AppConfig, launcher *services.Launcher, version string) *APIController {
	return &APIController{
		cfg:       cfg,
		launcher:  launcher,
		prober:    launcher.Prober(),
		version:   version,
		startTime: time.Now(),
	}
}

/**
 * Register all API routes to Gin engine
 * @param {*gin.Engine} r - Gin router instance
 * @description
 * - /healthz and /metrics
 * - /launcher/api/v1 service status and launch routes
 */
func (a *APIController) RegisterRoutes(r *gin.Engine) {
	r.GET("/healthz", a.Healthz)
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(services.Registry, promhttp.HandlerOpts{})))

	v1 := r.Group("/launcher/api/v1")
	v1.GET("/services", a.ListServices)
	v1.GET("/services/:name", a.GetService)
	v1.POST("/services/:name/launch", a.LaunchService)
	v1.POST("/launch", a.LaunchAll)
}

// @Summary 健康检查
// @Description 返回服务版本、启动时间、运行时长和关键指标
// @Tags System
// @Produce json
// @Success 200 {object} models.HealthResponse
// @Router /healthz [get]
func (a *APIController) Healthz(c *gin.Context) {
	c.JSON(http.StatusOK, models.HealthResponse{
		Version:   a.version,
		StartTime: a.startTime.Format(time.RFC3339),
		Status:    "UP",
		Uptime:    time.Since(a.startTime).Round(time.Second).String(),
		Metrics: models.Metrics{
			TotalRequests: services.GetTotalRequestCount(),
			ErrorRequests: services.GetTotalErrorCount(),
			Services:      len(a.cfg.Services),
			Launches:      services.GetLaunchCount(),
		},
	})
}
