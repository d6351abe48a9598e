package routes

import (
	"net/http"

	"learnsphere/config"
	"learnsphere/controllers"
	"learnsphere/middlewares"
	"learnsphere/payments"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func SetupRouter(db *gorm.DB, cfg config.Config, gateway payments.Gateway, log *zap.Logger) *gin.Engine {
	r := gin.Default()

	// Uploaded course images
	r.Static("/uploads", cfg.UploadDir)

	bookings := controllers.NewBookingController(db, gateway, cfg.FrontendURL, log)

	auth := r.Group("/api/auth")
	{
		auth.POST("/register", controllers.RegisterHandler(db))
		auth.POST("/login", controllers.LoginHandler(db, cfg.JWTSecret))
		auth.POST("/refresh", controllers.RefreshTokenHandler(db, cfg.JWTSecret))
		auth.POST("/logout", controllers.LogoutHandler(db))
		auth.GET("/me", middlewares.AuthMiddleware(cfg.JWTSecret), controllers.MeHandler(db))
	}

	course := r.Group("/api/course")
	{
		course.GET("/public", controllers.GetPublicCourses(db))
		course.GET("/", controllers.GetCourses(db))
		course.GET("/:id", controllers.GetCourseByID(db))

		course.POST("/", middlewares.AdminMiddleware(cfg.JWTSecret), controllers.CreateCourse(db, cfg.UploadDir))
		course.DELETE("/:id", middlewares.AdminMiddleware(cfg.JWTSecret), controllers.DeleteCourse(db, cfg.UploadDir))
	}

	booking := r.Group("/api/booking")
	{
		booking.GET("/", bookings.GetBookings)
		booking.GET("/stats", bookings.GetStats)

		authed := booking.Group("").Use(middlewares.AuthMiddleware(cfg.JWTSecret))
		authed.GET("/check", bookings.CheckBooking)
		authed.GET("/confirm", bookings.ConfirmPayment)
		authed.POST("/create", bookings.CreateBooking)
		authed.GET("/my", bookings.GetUserBookings)
	}

	ratings := r.Group("/api/ratings").Use(middlewares.AuthMiddleware(cfg.JWTSecret))
	{
		ratings.POST("/rate", controllers.RateCourse(db))
	}

	progress := r.Group("/api/progress").Use(middlewares.AuthMiddleware(cfg.JWTSecret))
	{
		progress.GET("/completed", controllers.GetCompletedChapters(db))
		progress.POST("/mark", controllers.MarkChapter(db))
	}

	admin := r.Group("/api/admin").Use(middlewares.AdminMiddleware(cfg.JWTSecret))
	{
		admin.GET("/users", controllers.GetAllUsers(db))
		admin.PUT("/users/:id/block", controllers.BlockUser(db))
	}

	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "API is running")
	})

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "page not found"})
	})

	return r
}
