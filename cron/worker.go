package cron

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/thetradeware/mekacash-backend/config"
	"github.com/thetradeware/mekacash-backend/models"
	"github.com/thetradeware/mekacash-backend/services/notification"
	"github.com/thetradeware/mekacash-backend/services/tasks"

	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
)

// InitNotificationWorker runs the async delivery worker in background.
// Undeliverable intents stay on the queue for asynq's retry policy; they
// never feed back into the lifecycle operations that produced them.
func InitNotificationWorker(delivery *notification.DeliveryService) {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisNotifQueueDB,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeDeliverNotification, handleDeliveryTask(delivery))

	go monitorRedisConnection()

	go func() {
		log.Println("[NotificationWorker] starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[NotificationWorker] attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Fatal("[NotificationWorker] max retry attempts reached, exiting")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second)
			} else {
				break
			}
		}
	}()
}

func handleDeliveryTask(delivery *notification.DeliveryService) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var intent models.NotificationIntent
		if err := json.Unmarshal(task.Payload(), &intent); err != nil {
			log.Printf("[NotificationWorker] invalid payload: %v", err)
			return err
		}
		return delivery.Deliver(ctx, intent)
	}
}

// monitorRedisConnection pings Redis periodically to detect failures at runtime.
func monitorRedisConnection() {
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisNotifQueueDB,
	})

	ctx := context.Background()

	for {
		if err := client.Ping(ctx).Err(); err != nil {
			log.Printf("[NotificationWorker] redis connection lost: %v", err)
		}
		time.Sleep(10 * time.Second)
	}
}
