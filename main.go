package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"qc-laptop/config"
	"qc-laptop/database"
	"qc-laptop/idgen"
	"qc-laptop/migration"
	"qc-laptop/notification"
	"qc-laptop/routes"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid config: %v", err)
	}

	if err := idgen.Init(cfg.SnowflakeNode); err != nil {
		log.Fatalf("Failed to init Snowflake: %v", err)
	}

	db, err := database.Open(cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close(db)

	if err := migration.Migrate(db); err != nil {
		log.Fatalf("Failed to auto migrate: %v", err)
	}

	if cfg.SeedDemoUsers {
		if err := database.SeedDemoUsers(db); err != nil {
			log.Fatalf("Failed to seed demo users: %v", err)
		}
	}

	if err := os.MkdirAll(cfg.Upload.Dir, 0o755); err != nil {
		log.Fatalf("Failed to create upload dir: %v", err)
	}

	notifier := notification.New(cfg.SMTP)

	app := routes.NewApp(cfg, routes.Wire(cfg, db, notifier))

	go func() {
		log.Printf("🚀 Server berjalan di port %s (%s)", cfg.Server.Port, cfg.Server.Environment)
		if err := app.Listen(":" + cfg.Server.Port); err != nil {
			log.Fatal(err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Printf("Shutdown error: %v", err)
	}
}
