package main

import (
	"log"
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"backoffice/internal/config"
	"backoffice/internal/database"
	"backoffice/internal/handlers"
	"backoffice/internal/mailer"
	"backoffice/internal/middleware"
)

func main() {
	config.Load()

	client, err := database.Connect(config.AppEnv.MongoURI)
	if err != nil {
		log.Fatal(err)
	}

	db := client.Database(config.AppEnv.DBName)

	log.Println("MongoDB connected to:", db.Name())

	if err := database.EnsureOrderIndexes(db); err != nil {
		log.Printf("order index warning: %v", err)
	}
	if err := database.EnsureAdminIndexes(db); err != nil {
		log.Printf("admin index warning: %v", err)
	}

	var sender mailer.Sender = mailer.LogSender{}
	if config.AppEnv.SMTPHost != "" {
		sender = &mailer.SMTPSender{
			Host:     config.AppEnv.SMTPHost,
			Port:     config.AppEnv.SMTPPort,
			Username: config.AppEnv.SMTPUser,
			Password: config.AppEnv.SMTPPassword,
			From:     config.AppEnv.SMTPFrom,
		}
	}

	r := gin.Default()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     config.AppEnv.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	r.POST("/admin/login", handlers.AdminLogin(db, config.AppEnv.JWTSecret, config.AppEnv.AccessTokenTTL))

	admin := r.Group("/admin/api")
	admin.Use(middleware.AdminAuth(config.AppEnv.JWTSecret))
	{
		admin.GET("/me", func(c *gin.Context) {
			c.JSON(200, gin.H{"ok": true})
		})

		admin.GET("/orders", handlers.GetOrders(db))
		admin.GET("/orders/export", handlers.ExportOrders(db))
		admin.POST("/orders", handlers.CreateOrder(db))
		admin.GET("/orders/:id", handlers.GetOrder(db))
		admin.PUT("/orders/:id", handlers.UpdateOrder(db))
		admin.PUT("/orders/:id/status", handlers.UpdateOrderStatus(db))
		admin.DELETE("/orders/:id", handlers.DeleteOrder(db))

		admin.GET("/analytics/products", handlers.GetProductsByPeriod(db))
		admin.GET("/analytics/payments", handlers.GetPaymentsByPeriod(db))
		admin.GET("/analytics/top/products", handlers.GetTopProducts(db))
		admin.GET("/analytics/top/categories", handlers.GetTopCategories(db))
		admin.GET("/analytics/top/payments", handlers.GetTopPayments(db))

		admin.GET("/clients", handlers.GetClients(db))
		admin.GET("/clients/stats", handlers.GetClientStats(db))

		admin.POST("/campaigns", handlers.SendCampaign(db, sender))
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	r.Run(":" + port)
}
