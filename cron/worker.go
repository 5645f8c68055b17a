package cron

import (
	"context"
	"fmt"
	"log"
	"time"

	"medibook/config"
	slotRepo "medibook/database/repository/slot"

	"github.com/hibiken/asynq"
)

const TypeCloseExpiredSlots = "slots:close_expired"

// InitSlotSweeper runs the background sweeper that marks past-dated open
// slots as expired so they stop listing as bookable.
func InitSlotSweeper(slots slotRepo.SlotRepository) {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 2,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeCloseExpiredSlots, handleCloseExpired(slots))

	interval := config.AppConfig.SlotSweepInterval
	if interval <= 0 {
		interval = 10
	}
	scheduler := asynq.NewScheduler(redisOpts, nil)
	if _, err := scheduler.Register(
		fmt.Sprintf("@every %dm", interval),
		asynq.NewTask(TypeCloseExpiredSlots, nil),
	); err != nil {
		log.Fatalf("[SlotSweeper] failed to register sweep task: %v", err)
	}

	// Start async worker with retry logic
	go func() {
		log.Println("[SlotSweeper] starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[SlotSweeper] attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Fatal("[SlotSweeper] max retry attempts reached. Exiting.")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second) // Exponential backoff
			} else {
				break
			}
		}
	}()

	go func() {
		if err := scheduler.Run(); err != nil {
			log.Printf("[SlotSweeper] scheduler stopped: %v", err)
		}
	}()
}

func handleCloseExpired(slots slotRepo.SlotRepository) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		closed, err := slots.CloseExpired(ctx, time.Now())
		if err != nil {
			log.Printf("[SlotSweeper] sweep failed: %v", err)
			return err
		}
		if closed > 0 {
			log.Printf("[SlotSweeper] closed %d expired slots", closed)
		}
		return nil
	}
}
