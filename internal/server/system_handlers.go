package server

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tunagu-ab/tunagatya-app/internal/api"
	"github.com/tunagu-ab/tunagatya-app/internal/db"
)

// @Summary      Greeting
// @Tags         system
// @Produce      plain
// @Success      200 {string} string
// @Router       / [get]
func Root(c *gin.Context) {
	c.String(http.StatusOK, "Hello from Backend!")
}

// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200 {object} api.HealthResponse
// @Router       /health [get]
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, api.HealthResponse{Status: "ok"})
}

// @Summary      Database connectivity check
// @Description  Reads one row from the users table to prove the database is reachable.
// @Tags         system
// @Produce      json
// @Success      200 {object} map[string]interface{}
// @Failure      500 {object} map[string]interface{}
// @Router       /test-db [get]
func TestDB(database *sqlx.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var data []struct {
			ID    int    `db:"id" json:"id"`
			Name  string `db:"name" json:"name"`
			Email string `db:"email" json:"email"`
		}

		err := db.ReadWithRetry(c.Request.Context(), func(ctx context.Context) error {
			return database.SelectContext(ctx, &data,
				`SELECT id, name, email FROM users LIMIT 1`)
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"message": "Error fetching data from the database",
				"error":   err.Error(),
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"message": "Successfully connected to the database!",
			"data":    data,
		})
	}
}

// @Summary      Prometheus metrics
// @Description  Exposes Prometheus metrics in text format
// @Tags         system
// @Produce      text/plain
// @Success      200 {string} string
// @Router       /metrics [get]
func Metrics() gin.HandlerFunc {
	return gin.WrapH(promhttp.Handler())
}
