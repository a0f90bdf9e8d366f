package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"sms_backend/internals/configs"
	database "sms_backend/internals/databases"
	middlewares "sms_backend/internals/middlewares"
	routes "sms_backend/internals/route"
	"sms_backend/internals/seeds"
)

func main() {
	configs.LoadEnv()

	database.ConnectDB()
	seeds.RunAllSeeds(database.DB, configs.SeedFile)

	app := routes.NewApp(database.DB, middlewares.Options{
		CORSOrigins:  configs.CORSAllowedOrigins,
		RateLimitMax: configs.RateLimitMax,
		AccessLog:    true,
	})

	go func() {
		log.Printf("[INFO] Listening on :%s", configs.Port)
		if err := app.Listen("0.0.0.0:" + configs.Port); err != nil {
			log.Fatalf("server error: %v", err)
		}
	}()

	// graceful shutdown, then close the pool
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Printf("[WARN] shutdown: %v", err)
	}
	database.Close()
}
