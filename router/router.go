package router

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/example/periodic-tables/controllers"
	"github.com/example/periodic-tables/middlewares"
)

func SetupRouter(db *gorm.DB) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.HandleMethodNotAllowed = true

	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddlewares())
	r.Use(middlewares.LoggerMiddleware())

	reservationCtrl := controllers.NewReservationController(db)
	tableCtrl := controllers.NewTableController(db)

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	// Dashboard event stream
	r.GET("/ws", controllers.EventsHandler)

	writeLimiter := middlewares.NewWriteLimiter()

	reservations := r.Group("/reservations")
	{
		reservations.GET("", reservationCtrl.List)
		reservations.POST("", writeLimiter, reservationCtrl.Create)
		reservations.GET("/search", reservationCtrl.Search)
		reservations.GET("/:reservation_id", reservationCtrl.Read)
		reservations.PUT("/:reservation_id", writeLimiter, reservationCtrl.Update)
		reservations.PUT("/:reservation_id/status", writeLimiter, reservationCtrl.UpdateStatus)
	}

	tables := r.Group("/tables")
	{
		tables.GET("", tableCtrl.List)
		tables.POST("", writeLimiter, tableCtrl.Create)
		tables.PUT("/:table_id/seat", writeLimiter, tableCtrl.Seat)
		tables.DELETE("/:table_id/seat", writeLimiter, tableCtrl.Clear)
	}

	r.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, gin.H{
			"error": fmt.Sprintf("%s not allowed for %s", c.Request.Method, c.Request.URL.Path),
		})
	})
	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{
			"error": fmt.Sprintf("Path not found: %s", c.Request.URL.Path),
		})
	})

	return r
}
