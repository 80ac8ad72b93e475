package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/yungbote/studycards-backend/internal/handlers"
)

type RouterConfig struct {
	CourseHandler *handlers.CourseHandler
	FileHandler   *handlers.FileHandler
	CardHandler   *handlers.CardHandler
	UploadDir     string
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.Default()

	// Cors
	router.Use(cors.New(cors.Config{
		AllowOrigins: []string{
			"http://localhost:80",
			"http://localhost:3000",
			"http://localhost:5174",
		},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
	}))

	router.GET("/healthcheck", handlers.HealthCheck)

	// Rendered card images are served directly from disk.
	router.Static("/uploads", cfg.UploadDir)

	api := router.Group("/api")
	{
		// Courses
		api.GET("/courses", cfg.CourseHandler.ListCourses)
		api.POST("/courses", cfg.CourseHandler.CreateCourse)
		api.GET("/courses/:id", cfg.CourseHandler.GetCourse)
		api.PUT("/courses/:id", cfg.CourseHandler.UpdateCourse)
		api.DELETE("/courses/:id", cfg.CourseHandler.DeleteCourse)
		// Files
		api.GET("/courses/:id/files", cfg.FileHandler.ListCourseFiles)
		api.DELETE("/files/:id", cfg.FileHandler.DeleteFile)
		// Cards
		api.GET("/courses/:id/cards", cfg.CardHandler.ListCourseCards)
		api.POST("/cards", cfg.CardHandler.GenerateCards)
		api.PUT("/cards/:id", cfg.CardHandler.UpdateCard)
		api.DELETE("/cards/:id", cfg.CardHandler.DeleteCard)
	}

	return router
}
