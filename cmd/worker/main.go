// Package main runs the background task worker. It consumes
// status-change notification tasks off the Redis queue and writes
// them to the merchant's inbox.
package main

import (
	"log"

	"veridesk/internal/config"
	"veridesk/internal/repositories"
	"veridesk/internal/services/notification"

	"github.com/hibiken/asynq"
)

func main() {
	config.LoadEnv()

	if err := repositories.InitDB(); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer func() {
		if repositories.DB != nil {
			if sqlDB, err := repositories.DB.DB(); err == nil {
				sqlDB.Close()
			}
		}
	}()

	redisOpt := asynq.RedisClientOpt{
		Addr:     config.GetEnv("REDIS_HOST", "localhost") + ":" + config.GetEnv("REDIS_PORT", "6379"),
		Password: config.GetEnv("REDIS_PASSWORD", ""),
		DB:       config.GetIntEnv("REDIS_DB", 0),
	}

	srv := asynq.NewServer(redisOpt, asynq.Config{
		Concurrency: config.GetIntEnv("WORKER_CONCURRENCY", 5),
		Queues: map[string]int{
			notification.QueueName: 1,
		},
	})

	worker := notification.NewWorker(repositories.NewNotificationRepository(repositories.DB))

	mux := asynq.NewServeMux()
	worker.Register(mux)

	log.Println("Notification worker started")
	if err := srv.Run(mux); err != nil {
		log.Fatalf("Worker stopped: %v", err)
	}
}
