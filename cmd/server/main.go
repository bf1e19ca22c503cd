package main

import (
	"fmt"
	"log"

	"ats-backend/internal/config"
	"ats-backend/internal/database"
	"ats-backend/internal/handlers"
	"ats-backend/internal/scheduler"
	"ats-backend/internal/server"
	"ats-backend/internal/store"
	"ats-backend/internal/syncer"
	"ats-backend/internal/uploader"
)

func main() {
	cfg := config.Load()

	db, err := database.Open(cfg.DBDSN)
	if err != nil {
		log.Fatalf("failed to connect to db: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatalf("failed to migrate: %v", err)
	}
	if err := database.Seed(db); err != nil {
		log.Fatalf("failed to seed: %v", err)
	}

	var sync store.Syncer = syncer.Logger{}
	if cfg.SyncAMQPURL != "" {
		amqpSync, err := syncer.NewAMQP(cfg.SyncAMQPURL)
		if err != nil {
			log.Printf("sync broker unavailable, falling back to log-only: %v", err)
		} else {
			defer amqpSync.Close()
			sync = amqpSync
		}
	}

	st := store.New(db, sync)

	if cfg.FollowUpCron != "" {
		sched := scheduler.New(st, cfg.FollowUpCron)
		if err := sched.Start(); err != nil {
			log.Fatalf("failed to start scheduler: %v", err)
		}
		defer sched.Stop()
	}

	h := handlers.New(st, uploader.New())
	r := server.NewRouter(cfg, h)

	addr := fmt.Sprintf(":%s", cfg.ServerPort)
	log.Printf("starting server on %s", addr)
	if err := r.Run(addr); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
