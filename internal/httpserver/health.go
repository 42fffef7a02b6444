package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"book-chatbot/pkg/response"
)

const (
	HealthVersion = "1.0.0"
	ServiceName   = "book-chatbot"
)

// healthCheck handles health check requests
// @Summary Health Check
// @Description Check if the chatbot is healthy
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]interface{} "Chatbot is healthy"
// @Router /health [get]
func (srv HTTPServer) healthCheck(c *gin.Context) {
	response.OK(c, srv.status("healthy"))
}

// readyCheck runs the configured readiness probes (catalog loaded, session store reachable).
// @Summary Readiness Check
// @Description Check if the catalog is loaded and the session store is reachable
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]interface{} "Chatbot is ready"
// @Failure 503 {object} map[string]interface{} "Chatbot is not ready"
// @Router /ready [get]
func (srv HTTPServer) readyCheck(c *gin.Context) {
	ctx := c.Request.Context()
	for name, probe := range srv.readiness {
		if err := probe(ctx); err != nil {
			srv.l.Warnf(ctx, "httpserver.readyCheck: %s: %v", name, err)
			body := srv.status("not ready")
			body["failed"] = name
			c.JSON(http.StatusServiceUnavailable, response.Resp{
				ErrorCode: http.StatusServiceUnavailable,
				Message:   "not ready",
				Data:      body,
			})
			return
		}
	}
	response.OK(c, srv.status("ready"))
}

// liveCheck handles liveness check requests
// @Summary Liveness Check
// @Description Check if the process is alive
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]interface{} "Chatbot is alive"
// @Router /live [get]
func (srv HTTPServer) liveCheck(c *gin.Context) {
	response.OK(c, srv.status("alive"))
}

func (srv HTTPServer) status(s string) gin.H {
	return gin.H{
		"status":      s,
		"version":     HealthVersion,
		"service":     ServiceName,
		"environment": srv.environment,
	}
}
