package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"permitflow/internal/application/submission/usecases"
	"permitflow/internal/infrastructure/config"
	"permitflow/internal/infrastructure/database"
	"permitflow/internal/infrastructure/packetgen"
	"permitflow/internal/infrastructure/queue"
	"permitflow/internal/infrastructure/repository"
	"permitflow/internal/shared/db"
	"permitflow/internal/shared/goroutine"
	"permitflow/internal/shared/logger"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "worker failed: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	env := os.Getenv("PERMITFLOW_ENV")
	if env == "" {
		env = "development"
	}

	cfg, err := config.Load(env)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if err := logger.Init(&cfg.Logger, false); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer logger.Sync()

	log := logger.NewLogger().Named("worker")
	log.Infow("starting packet worker", "environment", env)

	if err := database.Init(&cfg.Database); err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer database.Close()

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.GetAddr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer redisClient.Close()

	if err := redisClient.Ping(context.Background()).Err(); err != nil {
		return fmt.Errorf("failed to connect to redis: %w", err)
	}
	log.Infow("redis connection established", "address", cfg.Redis.GetAddr())

	txManager := db.NewTransactionManager(database.Get())
	submissionRepo := repository.NewSubmissionRepository(database.Get())
	eventRepo := repository.NewWorkflowEventRepository(database.Get())
	packetRepo := repository.NewPacketRepository(database.Get())
	jurisdictionRepo := repository.NewJurisdictionRepository(database.Get())

	generateUC := usecases.NewGeneratePacketUseCase(
		submissionRepo,
		eventRepo,
		packetRepo,
		jurisdictionRepo,
		packetgen.NewRenderer(),
		packetgen.NewLocalStorage(cfg.Packet.OutputDir),
		txManager,
		log.Named("generate_packet"),
	)

	jobQueue := queue.NewRedisQueue(redisClient, cfg.Queue.Key)
	pollTimeout := time.Duration(cfg.Queue.PollSeconds) * time.Second

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan struct{})
	goroutine.SafeGo(log, "queue-consumer", func() {
		defer close(done)
		consume(ctx, jobQueue, pollTimeout, generateUC, log)
	})

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigChan
	log.Infow("received shutdown signal", "signal", sig)

	cancel()
	select {
	case <-done:
	case <-time.After(pollTimeout + 5*time.Second):
		log.Warnw("consumer did not stop in time, exiting")
	}

	log.Infow("worker exited gracefully")
	return nil
}

// consume drains the job queue until the context is canceled. Poll expiries
// are the normal idle path; decode and handler failures are logged and the
// job dropped, since a malformed or stale job never becomes valid on retry.
func consume(ctx context.Context, q *queue.RedisQueue, pollTimeout time.Duration, generateUC usecases.GeneratePacketExecutor, log logger.Interface) {
	for {
		if ctx.Err() != nil {
			return
		}

		job, err := q.Dequeue(ctx, pollTimeout)
		if err != nil {
			if errors.Is(err, queue.ErrEmpty) || errors.Is(err, context.Canceled) {
				continue
			}
			log.Errorw("failed to dequeue job", "error", err)
			continue
		}

		handleJob(ctx, job, generateUC, log)
	}
}

func handleJob(ctx context.Context, job *queue.Job, generateUC usecases.GeneratePacketExecutor, log logger.Interface) {
	log.Infow("processing job", "job_id", job.ID, "type", job.Type)

	switch job.Type {
	case queue.JobTypePacketGenerate:
		var payload queue.PacketGeneratePayload
		if err := json.Unmarshal(job.Payload, &payload); err != nil {
			log.Errorw("failed to decode job payload, dropping job", "job_id", job.ID, "error", err)
			return
		}

		err := generateUC.Execute(ctx, usecases.GeneratePacketCommand{
			SubmissionSID:  payload.SubmissionSID,
			OrganizationID: payload.OrganizationID,
		})
		if err != nil {
			log.Errorw("packet generation failed", "job_id", job.ID, "sid", payload.SubmissionSID, "error", err)
			return
		}
	default:
		log.Warnw("unknown job type, dropping job", "job_id", job.ID, "type", job.Type)
	}
}
