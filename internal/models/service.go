package models

// ServiceStatus 服务端口探测结果
type ServiceStatus struct {
	Name string `json:"name" example:"data-processor"`
	Port int    `json:"port" example:"8001"`
	Path string `json:"path" example:"/srv/data-processor"`
	URL  string `json:"url" example:"http://localhost:8001/docs"`
	Up   bool   `json:"up" example:"true"`
}
