package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/jonathan/resume-matcher/internal/config"
	"github.com/jonathan/resume-matcher/internal/queue"
	"github.com/spf13/cobra"
	"github.com/streadway/amqp"
)

var workerCmd = &cobra.Command{
	Use:   "worker",
	Short: "Consume analysis requests from RabbitMQ",
	Long: `Run queue consumers that resolve the requested resume and job description,
analyze them, save the result to the history and publish status updates to
the analysis_updates exchange.

Requires AMQP_URL. Documents are resolved from S3_BUCKET when set, else from
the history store.`,
	RunE: runWorker,
}

var enqueueCmd = &cobra.Command{
	Use:   "enqueue",
	Short: "Publish an analysis request",
	RunE:  runEnqueue,
}

var (
	workerConcurrency int
	workerQueue       string
	enqueueResumeID   string
	enqueueJobID      string
)

func init() {
	workerCmd.PersistentFlags().StringVar(&workerQueue, "queue", "", "Queue name (default from config or QUEUE_NAME)")
	workerCmd.Flags().IntVar(&workerConcurrency, "concurrency", 2, "Number of parallel consumers")

	enqueueCmd.Flags().StringVar(&enqueueResumeID, "resume-id", "", "Stored resume id (required)")
	enqueueCmd.Flags().StringVar(&enqueueJobID, "job-id", "", "Stored job description id (required)")
	if err := enqueueCmd.MarkFlagRequired("resume-id"); err != nil {
		panic(fmt.Sprintf("failed to mark resume-id flag as required: %v", err))
	}
	if err := enqueueCmd.MarkFlagRequired("job-id"); err != nil {
		panic(fmt.Sprintf("failed to mark job-id flag as required: %v", err))
	}

	workerCmd.AddCommand(enqueueCmd)
	rootCmd.AddCommand(workerCmd)
}

func queueName(cfg config.Config) string {
	if workerQueue != "" {
		return workerQueue
	}
	if cfg.QueueName != "" {
		return cfg.QueueName
	}
	return queue.DefaultQueue
}

func dialQueue(cfg config.Config) (*amqp.Connection, error) {
	if cfg.AMQPURL == "" {
		return nil, fmt.Errorf("AMQP_URL environment variable is required")
	}
	conn, err := amqp.Dial(cfg.AMQPURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}
	return conn, nil
}

func runWorker(_ *cobra.Command, _ []string) error {
	cfg, err := resolveConfig()
	if err != nil {
		return err
	}
	logger := newLogger(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	engine, err := newEngine(cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to create engine: %w", err)
	}

	store, err := openStore(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}
	if store != nil {
		defer func() { _ = store.Close() }()
	} else {
		logger.Warn("no store configured, results will not be saved")
	}

	lookup, err := newLookup(ctx, cfg, store, logger)
	if err != nil {
		return fmt.Errorf("failed to create document lookup: %w", err)
	}
	if lookup == nil {
		return fmt.Errorf("a document source is required (set S3_BUCKET, DATABASE_URL or SQLITE_PATH)")
	}

	conn, err := dialQueue(cfg)
	if err != nil {
		return err
	}
	defer conn.Close()

	w := queue.NewWorker(engine, lookup, store, logger)
	return w.Consume(ctx, conn, queueName(cfg), workerConcurrency)
}

func runEnqueue(cmd *cobra.Command, _ []string) error {
	cfg, err := resolveConfig()
	if err != nil {
		return err
	}

	conn, err := dialQueue(cfg)
	if err != nil {
		return err
	}
	defer conn.Close()

	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("failed to open channel: %w", err)
	}
	defer ch.Close()

	name := queueName(cfg)
	if err := queue.Declare(ch, name); err != nil {
		return err
	}
	requestID, err := queue.Enqueue(ch, name, queue.Request{ResumeID: enqueueResumeID, JobID: enqueueJobID})
	if err != nil {
		return err
	}

	_, _ = fmt.Fprintln(cmd.OutOrStdout(), requestID)
	return nil
}
