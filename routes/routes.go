package routes

import (
	"net/http"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/kendall-kelly/snapfix-api/config"
	"github.com/kendall-kelly/snapfix-api/controllers"
	"github.com/kendall-kelly/snapfix-api/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// SetupRouter builds the gin engine with middleware and every API route
func SetupRouter(cfg *config.Config) *gin.Engine {
	router := gin.New()

	router.Use(
		middleware.RequestID(),
		middleware.RequestLogger(),
		middleware.Metrics(),
		middleware.Recovery(),
		cors.New(corsConfig(cfg)),
	)

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group("/api")
	{
		api.GET("/health", HealthCheck)
		api.GET("/database/status", DatabaseStatus)

		api.GET("/users", controllers.GetUser)
		api.POST("/users", controllers.CreateUser)

		api.POST("/otp", controllers.UserOTP)

		api.GET("/addresses", controllers.ListAddresses)
		api.POST("/addresses", controllers.CreateAddress)
		api.PUT("/addresses", controllers.UpdateAddress)

		api.GET("/bookings", controllers.GetBookings)
		api.POST("/bookings", controllers.CreateBooking)
		api.PUT("/bookings", controllers.UpdateBooking)

		api.GET("/feedback", controllers.GetFeedback)
		api.POST("/feedback", controllers.CreateFeedback)

		api.GET("/pincode/:pincode", controllers.LookupPincode)

		api.POST("/uploads", controllers.UploadPhoto)
		api.GET("/uploads/:filename", controllers.GetUploadedImage)

		api.GET("/payments", controllers.ListPayments)
		api.POST("/payments", controllers.CreatePayment)

		api.GET("/booking-assignments", controllers.ListAssignments)
		api.POST("/booking-assignments", controllers.CreateAssignment)

		employee := api.Group("/employee")
		{
			employee.POST("/otp", controllers.EmployeeOTP)
			employee.GET("/profile", controllers.GetEmployeeProfile)
			employee.POST("/profile", controllers.CreateEmployeeProfile)
			employee.PUT("/profile", controllers.UpdateEmployeeProfile)
		}
	}

	return router
}

// HealthCheck handles GET /api/health
func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Snapfix API is running",
	})
}

// DatabaseStatus pings the store and lists its tables
func DatabaseStatus(c *gin.Context) {
	db := config.GetDB()

	sqlDB, err := db.DB()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to get database instance",
			"code":  "DATABASE_ERROR",
		})
		return
	}

	if err := sqlDB.PingContext(c.Request.Context()); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Database connection failed",
			"code":  "DATABASE_CONNECTION_ERROR",
		})
		return
	}

	tables, err := db.WithContext(c.Request.Context()).Migrator().GetTables()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to query tables",
			"code":  "DATABASE_QUERY_ERROR",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Database connected",
		"dialect": db.Dialector.Name(),
		"tables":  tables,
	})
}

func corsConfig(cfg *config.Config) cors.Config {
	corsCfg := cors.DefaultConfig()
	corsCfg.AllowHeaders = append(corsCfg.AllowHeaders, "X-Request-ID")
	corsCfg.ExposeHeaders = []string{"X-Request-ID"}

	origins := "*"
	if cfg != nil && cfg.CORSOrigins != "" {
		origins = cfg.CORSOrigins
	}
	if origins == "*" {
		corsCfg.AllowAllOrigins = true
		return corsCfg
	}

	for _, origin := range strings.Split(origins, ",") {
		if trimmed := strings.TrimSpace(origin); trimmed != "" {
			corsCfg.AllowOrigins = append(corsCfg.AllowOrigins, trimmed)
		}
	}
	if len(corsCfg.AllowOrigins) == 0 {
		corsCfg.AllowAllOrigins = true
	}
	return corsCfg
}
