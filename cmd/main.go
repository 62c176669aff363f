package main

import (
	"context"
	"log"

	"github.com/suttley13/burn2earn-backend/config"
	"github.com/suttley13/burn2earn-backend/controllers"
	"github.com/suttley13/burn2earn-backend/routes"
	"github.com/suttley13/burn2earn-backend/services"
	"github.com/suttley13/burn2earn-backend/utils"
)

func main() {
	cfg := config.Load()
	db := config.InitDB(cfg)

	gemini := services.NewGeminiService(cfg.GeminiAPIKey)
	logSvc := services.NewLogService(db)

	var photos controllers.PhotoArchive
	if cfg.S3Bucket != "" {
		ps, err := utils.NewPhotoStore(context.Background(), cfg.S3Region, cfg.S3Bucket)
		if err != nil {
			log.Fatalf("failed to init photo store: %v", err)
		}
		photos = ps
	}

	logCtl := controllers.NewLogController(gemini, logSvc, photos)
	r := routes.SetupRouter(logCtl)

	log.Printf("listening on :%s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("server exited: %v", err)
	}
}
