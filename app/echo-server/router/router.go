package router

import (
	"net/http"

	"engagementReco/internal/middleware"
	"engagementReco/internal/rest"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func SetupDashboardRoutes(api *echo.Group, handler *rest.DashboardHandler) {
	api.GET("/dashboard", handler.GetDashboard)
	api.GET("/personas", handler.GetPersonas)
	api.GET("/recommendations", handler.GetRecommendation)

	users := api.Group("/users")
	users.GET("", handler.GetVisitorIDs)
	if handler.Settings().ShowFilterPanel {
		users.GET("/filter", handler.FilterUsers)
	}
	users.GET("/:visitor_id", handler.GetUserProfile)

	clusters := api.Group("/clusters")
	clusters.GET("", handler.GetClusters)
	clusters.GET("/stats", handler.GetClusterStats)
}

// SetDatasetAdminRoutes registers the reload hook. Without a JWT secret the
// admin surface stays disabled.
func SetDatasetAdminRoutes(api *echo.Group, handler *rest.DatasetAdminHandler, jwtSecret string) bool {
	if jwtSecret == "" {
		return false
	}

	admin := api.Group("/admin/dataset", middleware.AuthMiddleware(jwtSecret), middleware.AdminOnly())
	admin.GET("", handler.GetDataset)
	admin.POST("/reload", handler.Reload)
	return true
}

func SetupOpsRoutes(e *echo.Echo) {
	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
}
