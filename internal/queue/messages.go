// Package queue runs analyses requested over RabbitMQ.
package queue

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/streadway/amqp"
)

const (
	DefaultQueue    = "resume_analysis"
	UpdatesExchange = "analysis_updates"
)

// Status values published on the updates exchange
const (
	StatusProcessing = "processing"
	StatusCompleted  = "completed"
	StatusFailed     = "failed"
)

// Request asks for an analysis of two stored documents
type Request struct {
	RequestID string `json:"request_id"`
	ResumeID  string `json:"resume_id" validate:"required,max=512"`
	JobID     string `json:"job_id" validate:"required,max=512"`
}

// StatusUpdate reports the progress of one request
type StatusUpdate struct {
	RequestID  string    `json:"request_id"`
	Status     string    `json:"status"`
	Message    string    `json:"message"`
	AnalysisID string    `json:"analysis_id,omitempty"`
	Score      *float64  `json:"overall_match_score,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
}

// Publisher is the publishing side of an AMQP channel
type Publisher interface {
	Publish(exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

var validate = validator.New()

// DecodeRequest parses and validates a delivery body
func DecodeRequest(body []byte) (*Request, error) {
	var req Request
	if err := json.Unmarshal(body, &req); err != nil {
		return nil, &MessageError{Message: "malformed JSON", Cause: err}
	}
	if err := validate.Struct(req); err != nil {
		return nil, &MessageError{Message: "missing document ids", Cause: err}
	}
	return &req, nil
}

// Enqueue publishes an analysis request to queue, assigning a request id
// when the request has none.
func Enqueue(pub Publisher, queue string, req Request) (string, error) {
	if err := validate.Struct(req); err != nil {
		return "", &MessageError{Message: "missing document ids", Cause: err}
	}
	if req.RequestID == "" {
		req.RequestID = uuid.New().String()
	}
	body, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	err = pub.Publish(
		"",    // default exchange
		queue, // routing key
		false,
		false,
		amqp.Publishing{
			ContentType:   "application/json",
			DeliveryMode:  amqp.Persistent,
			CorrelationId: req.RequestID,
			Body:          body,
		},
	)
	if err != nil {
		return "", fmt.Errorf("failed to publish request: %w", err)
	}
	return req.RequestID, nil
}

func publishUpdate(pub Publisher, update StatusUpdate) error {
	body, err := json.Marshal(update)
	if err != nil {
		return err
	}
	routingKey := fmt.Sprintf("analysis.%s", update.RequestID)

	return pub.Publish(
		UpdatesExchange,
		routingKey,
		false,
		false,
		amqp.Publishing{
			ContentType: "application/json",
			Body:        body,
		},
	)
}
