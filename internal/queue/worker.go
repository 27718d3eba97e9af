package queue

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/streadway/amqp"

	"github.com/jonathan/resume-matcher/internal/analysis"
	"github.com/jonathan/resume-matcher/internal/db"
)

// Recorder persists finished analyses
type Recorder interface {
	SaveAnalysis(ctx context.Context, input db.AnalysisInput) (*db.AnalysisRecord, error)
}

// Outcome is how a delivery is settled
type Outcome int

const (
	Ack Outcome = iota
	Requeue
	Discard
)

func (o Outcome) String() string {
	switch o {
	case Ack:
		return "ack"
	case Requeue:
		return "requeue"
	default:
		return "discard"
	}
}

// Worker consumes analysis requests
type Worker struct {
	engine   *analysis.Engine
	lookup   analysis.DocumentLookup
	recorder Recorder // nil skips persistence
	logger   *slog.Logger
	now      func() time.Time
}

// NewWorker creates a worker that resolves documents through lookup and
// saves results through recorder
func NewWorker(engine *analysis.Engine, lookup analysis.DocumentLookup, recorder Recorder, logger *slog.Logger) *Worker {
	if logger == nil {
		logger = slog.Default()
	}
	return &Worker{engine: engine, lookup: lookup, recorder: recorder, logger: logger, now: time.Now}
}

// Handle processes one delivery body and decides how to settle it. Invalid
// messages and unresolvable documents are discarded; lookup and storage
// failures are requeued.
func (w *Worker) Handle(ctx context.Context, pub Publisher, body []byte) (Outcome, error) {
	req, err := DecodeRequest(body)
	if err != nil {
		return Discard, err
	}
	logger := w.logger.With("request_id", req.RequestID, "resume_id", req.ResumeID, "job_id", req.JobID)
	w.notify(pub, StatusUpdate{RequestID: req.RequestID, Status: StatusProcessing, Message: "analysis started"})

	result, err := w.engine.AnalyzeByID(ctx, w.lookup, req.ResumeID, req.JobID)
	if err != nil {
		outcome := classify(err)
		logger.Warn("analysis failed", "error", err, "outcome", outcome.String())
		w.notify(pub, StatusUpdate{RequestID: req.RequestID, Status: StatusFailed, Message: err.Error()})
		return outcome, err
	}

	if w.recorder != nil {
		if _, err := w.recorder.SaveAnalysis(ctx, db.AnalysisInput{ResumeID: req.ResumeID, JobID: req.JobID, Result: result}); err != nil {
			logger.Warn("failed to save analysis", "error", err)
			w.notify(pub, StatusUpdate{RequestID: req.RequestID, Status: StatusFailed, Message: "failed to save analysis"})
			return Requeue, fmt.Errorf("failed to save analysis: %w", err)
		}
	}

	score := result.OverallScore
	logger.Info("analysis completed", "analysis_id", result.ID, "score", score, "partial", result.Partial)
	w.notify(pub, StatusUpdate{
		RequestID:  req.RequestID,
		Status:     StatusCompleted,
		Message:    result.Summary,
		AnalysisID: result.ID,
		Score:      &score,
	})
	return Ack, nil
}

func classify(err error) Outcome {
	var (
		notFound *analysis.NotFoundError
		empty    *analysis.EmptyInputError
		failed   *analysis.AnalysisFailedError
	)
	if errors.As(err, &notFound) || errors.As(err, &empty) || errors.As(err, &failed) {
		return Discard
	}
	return Requeue
}

func (w *Worker) notify(pub Publisher, update StatusUpdate) {
	if pub == nil {
		return
	}
	update.Timestamp = w.now().UTC()
	if err := publishUpdate(pub, update); err != nil {
		w.logger.Warn("failed to publish update", "request_id", update.RequestID, "error", err)
	}
}

// Settle acknowledges d according to outcome
func Settle(d amqp.Delivery, outcome Outcome) error {
	switch outcome {
	case Ack:
		return d.Ack(false)
	case Requeue:
		return d.Nack(false, true)
	default:
		return d.Nack(false, false)
	}
}

// Consume runs concurrency consumers on queue until ctx is done or the
// connection closes. Each consumer has its own channel.
func (w *Worker) Consume(ctx context.Context, conn *amqp.Connection, queue string, concurrency int) error {
	if concurrency <= 0 {
		concurrency = 1
	}

	var wg sync.WaitGroup
	errs := make(chan error, concurrency)
	for i := 0; i < concurrency; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			if err := w.consume(ctx, conn, queue, id); err != nil {
				errs <- err
			}
		}(i + 1)
	}
	wg.Wait()
	close(errs)

	var all []error
	for err := range errs {
		all = append(all, err)
	}
	return errors.Join(all...)
}

func (w *Worker) consume(ctx context.Context, conn *amqp.Connection, queue string, id int) error {
	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("worker %d: failed to open channel: %w", id, err)
	}
	defer ch.Close()

	if err := Declare(ch, queue); err != nil {
		return fmt.Errorf("worker %d: %w", id, err)
	}
	if err := ch.Qos(1, 0, false); err != nil {
		return fmt.Errorf("worker %d: failed to set prefetch: %w", id, err)
	}

	msgs, err := ch.Consume(
		queue,
		fmt.Sprintf("resume-matcher-%d", id), // consumer tag
		false,                                // auto-ack
		false,                                // exclusive
		false,                                // no-local
		false,                                // no-wait
		nil,                                  // arguments
	)
	if err != nil {
		return fmt.Errorf("worker %d: failed to consume: %w", id, err)
	}

	w.logger.Info("worker started", "worker", id, "queue", queue)
	for {
		select {
		case <-ctx.Done():
			w.logger.Info("worker stopping", "worker", id)
			return nil
		case d, ok := <-msgs:
			if !ok {
				return fmt.Errorf("worker %d: delivery channel closed", id)
			}
			outcome, err := w.Handle(ctx, ch, d.Body)
			if err != nil {
				w.logger.Debug("delivery not processed", "worker", id, "error", err)
			}
			if err := Settle(d, outcome); err != nil {
				w.logger.Warn("failed to settle delivery", "worker", id, "error", err)
			}
		}
	}
}

// Declare declares the durable request queue and the updates exchange
func Declare(ch *amqp.Channel, queue string) error {
	_, err := ch.QueueDeclare(
		queue,
		true,  // durable (survives broker restarts)
		false, // auto-delete when unused
		false, // exclusive
		false, // no-wait
		nil,   // arguments
	)
	if err != nil {
		return fmt.Errorf("failed to declare queue: %w", err)
	}
	if err := ch.ExchangeDeclare(UpdatesExchange, "topic", true, false, false, false, nil); err != nil {
		return fmt.Errorf("failed to declare exchange: %w", err)
	}
	return nil
}
