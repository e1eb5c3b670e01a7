package controllers

import (
	"context"
	"net/http"

	"service-launcher/services"

	"github.com/gin-gonic/gin"
)

// @Summary 服务列表
// @Description 探测所有已配置服务的端口
// @Tags Services
// @Produce json
// @Success 200 {array} models.ServiceStatus
// @Router /launcher/api/v1/services [get]
func (a *APIController) ListServices(c *gin.Context) {
	c.JSON(http.StatusOK, services.ProbeServices(a.prober, a.cfg.Services))
}

// @Summary 服务详情
// @Tags Services
// @Produce json
// @Param name path string true "服务名称"
// @Success 200 {object} models.ServiceStatus
// @Failure 404 {object} map[string]interface{}
// @Router /launcher/api/v1/services/{name} [get]
func (a *APIController) GetService(c *gin.Context) {
	svc, ok := a.cfg.Find(c.Param("name"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{
			"code":    "service.not_found",
			"message": "service '" + c.Param("name") + "' is not configured",
		})
		return
	}
	c.JSON(http.StatusOK, services.ProbeService(a.prober, svc))
}

// @Summary 启动单个服务
// @Description 端口已可连接时不会重复启动
// @Tags Services
// @Produce json
// @Param name path string true "服务名称"
// @Success 200 {object} models.LaunchResult
// @Failure 404 {object} map[string]interface{}
// @Failure 409 {object} map[string]interface{}
// @Router /launcher/api/v1/services/{name}/launch [post]
func (a *APIController) LaunchService(c *gin.Context) {
	svc, ok := a.cfg.Find(c.Param("name"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{
			"code":    "service.not_found",
			"message": "service '" + c.Param("name") + "' is not configured",
		})
		return
	}
	if !a.launching.TryLock() {
		a.busy(c)
		return
	}
	defer a.launching.Unlock()

	// 启动流程与请求生命周期无关，客户端断开不会中断就绪等待
	c.JSON(http.StatusOK, a.launcher.LaunchOne(context.Background(), svc))
}

// @Summary 启动所有服务
// @Description 按配置顺序逐个启动，返回每个服务的结果
// @Tags Services
// @Produce json
// @Success 200 {object} models.LaunchSummary
// @Failure 409 {object} map[string]interface{}
// @Router /launcher/api/v1/launch [post]
func (a *APIController) LaunchAll(c *gin.Context) {
	if !a.launching.TryLock() {
		a.busy(c)
		return
	}
	defer a.launching.Unlock()

	c.JSON(http.StatusOK, a.launcher.LaunchAll(context.Background(), a.cfg.Services))
}

func (a *APIController) busy(c *gin.Context) {
	c.JSON(http.StatusConflict, gin.H{
		"code":    "launch.in_progress",
		"message": "another launch is in progress",
	})
}
