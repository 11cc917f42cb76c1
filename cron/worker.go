package cron

import (
	"context"
	"log"
	"time"

	"talentshout/config"
	"talentshout/services/booking"

	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
)

const TypeBookingSweep = "booking:sweep"

// InitSweepWorker runs the due-date sweep worker and its hourly schedule in
// the background. Overdue undelivered bookings are cancelled by the sweep.
func InitSweepWorker(bookingSvc booking.BookingService) {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisSweepQueueDB,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 1,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeBookingSweep, handleSweepTask(bookingSvc))

	scheduler := asynq.NewScheduler(redisOpts, &asynq.SchedulerOpts{})
	if _, err := scheduler.Register("@every 1h", asynq.NewTask(TypeBookingSweep, nil)); err != nil {
		log.Fatalf("[SweepWorker] failed to register sweep schedule: %v", err)
	}

	go monitorRedisConnection()

	go func() {
		log.Println("[SweepWorker] starting scheduler...")
		if err := scheduler.Run(); err != nil {
			log.Fatalf("[SweepWorker] scheduler failed: %v", err)
		}
	}()

	go func() {
		log.Println("[SweepWorker] starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[SweepWorker] attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Fatal("[SweepWorker] max retry attempts reached. Exiting.")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second)
			} else {
				break
			}
		}
	}()
}

func handleSweepTask(bookingSvc booking.BookingService) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		n, err := bookingSvc.SweepOverdue(ctx)
		if err != nil {
			log.Printf("[SweepHandler] sweep failed: %v", err)
			return err
		}
		if n > 0 {
			log.Printf("[SweepHandler] cancelled %d overdue bookings", n)
		}
		return nil
	}
}

// monitorRedisConnection pings Redis periodically to detect failures at runtime.
func monitorRedisConnection() {
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisSweepQueueDB,
	})

	ctx := context.Background()

	for {
		if err := client.Ping(ctx).Err(); err != nil {
			log.Printf("[SweepWorker] redis connection lost: %v", err)
		}
		time.Sleep(10 * time.Second)
	}
}
