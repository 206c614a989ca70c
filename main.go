package main

import (
	"time"

	"postify/config"
	"postify/models"
	"postify/routes"
	"postify/utils"
)

func main() {
	cfg := config.Load()

	// Initialize logger early
	if err := utils.InitLogger(cfg); err != nil {
		panic(err)
	}

	db := config.InitDatabase(&models.Post{}, &models.UploadedFile{}, &models.PageView{})

	r := routes.SetupRouter(db)

	// Background reconciliation of uploads no post ever claimed (best-effort)
	utils.StartOrphanCleaner(db, 5*time.Minute)

	utils.Sugar.Infof("Starting server on port %s (graceful)", cfg.AppPort)
	if err := utils.GraceServer(":"+cfg.AppPort, r); err != nil {
		utils.Sugar.Fatalf("server stopped with error: %v", err)
	}
}
