package main

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/OsamaDeghidy/A-List-Home-Pros/internal/cache"
	"github.com/OsamaDeghidy/A-List-Home-Pros/internal/config"
	dbpkg "github.com/OsamaDeghidy/A-List-Home-Pros/internal/db"
	"github.com/OsamaDeghidy/A-List-Home-Pros/internal/routes"
)

func main() {

	cfg := config.Load()
	db := dbpkg.NewDB(cfg)
	redisClient := cache.NewRedis(cfg)

	r := gin.Default()

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	if err := routes.RegisterRoutes(r, db, redisClient, cfg); err != nil {
		log.Fatalf("failed to register routes: %v", err)
	}

	log.Printf("Server running on %s", cfg.Addr())
	if err := r.Run(cfg.Addr()); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}
