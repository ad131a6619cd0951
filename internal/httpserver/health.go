package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"meeting-archaeologist/pkg/response"
)

// HealthMessage is returned by the infrastructure probes.
const HealthMessage = "Meeting Archaeologist API is up"

// healthCheck handles health check requests
// @Summary Health Check
// @Description Check if the API is healthy
// @Tags Health
// @Accept json
// @Produce json
// @Success 200 {object} response.Resp "API is healthy"
// @Router /health [get]
func (srv HTTPServer) healthCheck(c *gin.Context) {
	response.OK(c, srv.probe("healthy"))
}

// readyCheck reports ready once the server is accepting traffic.
// @Summary Readiness Check
// @Description Check if the API is ready to serve traffic
// @Tags Health
// @Accept json
// @Produce json
// @Success 200 {object} response.Resp "API is ready"
// @Router /ready [get]
func (srv HTTPServer) readyCheck(c *gin.Context) {
	response.OK(c, srv.probe("ready"))
}

// liveCheck handles liveness check requests
// @Summary Liveness Check
// @Description Check if the API is alive
// @Tags Health
// @Accept json
// @Produce json
// @Success 200 {object} response.Resp "API is alive"
// @Router /live [get]
func (srv HTTPServer) liveCheck(c *gin.Context) {
	response.OK(c, srv.probe("alive"))
}

// apiHealthCheck returns the service identity without the envelope.
// @Summary Service Health
// @Description Returns service name and version
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]string "Service is healthy"
// @Router /api/v1/health [get]
func (srv HTTPServer) apiHealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": srv.appName,
		"version": srv.appVersion,
	})
}

func (srv HTTPServer) probe(status string) gin.H {
	return gin.H{
		"status":  status,
		"message": HealthMessage,
		"version": srv.appVersion,
		"service": srv.appName,
	}
}
