package main

import (
	"github.com/oseikofi/campusfeed/config"
	"github.com/oseikofi/campusfeed/media"
	"github.com/oseikofi/campusfeed/realtime"
	"github.com/oseikofi/campusfeed/routes"
	"github.com/oseikofi/campusfeed/store"
	"github.com/oseikofi/campusfeed/utils"
)

func main() {
	cfg := config.Load()

	// Initialize logger early
	if err := utils.InitLogger(cfg); err != nil {
		panic(err)
	}

	// All state is volatile and rebuilt from scratch on restart
	directory := store.NewDirectory()
	posts := store.NewPosts()
	registry := realtime.NewRegistry(directory)

	mediaStore, err := media.NewStore(cfg.UploadDir, cfg.MaxUploadMB)
	if err != nil {
		utils.Sugar.Fatalf("media store init failed: %v", err)
	}

	hub := realtime.NewHub(directory, posts, registry, mediaStore)
	go hub.Run()

	r := routes.SetupRouter(directory, mediaStore, hub)

	utils.Sugar.Infof("Starting server on port %s (graceful)", cfg.AppPort)
	if err := utils.GraceServer(":"+cfg.AppPort, r); err != nil {
		utils.Sugar.Fatalf("server stopped with error: %v", err)
	}
}
