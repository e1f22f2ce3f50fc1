package api

import "github.com/gin-gonic/gin"

// HealthHandler provides liveness and readiness probes.
type HealthHandler struct {
	dbPing func() error // nil when the service runs without a database
}

// NewHealthHandler constructs a HealthHandler. dbPing is typically
// (*sql.DB).Ping; a nil function makes /readyz unconditionally ready.
func NewHealthHandler(dbPing func() error) *HealthHandler {
	return &HealthHandler{dbPing: dbPing}
}

// Register mounts /healthz and /readyz on the router.
func (h *HealthHandler) Register(r *gin.Engine) {
	// Liveness: the process is up.
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Readiness: dependencies (the snapshot store) are reachable.
	r.GET("/readyz", func(c *gin.Context) {
		if h.dbPing != nil && h.dbPing() != nil {
			c.JSON(503, gin.H{"status": "degraded"})
			return
		}
		c.JSON(200, gin.H{"status": "ready"})
	})
}
