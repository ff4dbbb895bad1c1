// Package notification delivers merchant-facing messages through a
// Redis-backed task queue. The API process enqueues; the worker binary
// consumes and persists the delivered notification.
package notification

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/hibiken/asynq"
)

// TaskStatusChange is the queue task type for onboarding status
// change notifications.
const TaskStatusChange = "notification:status_change"

// QueueName is the asynq queue notifications are routed to.
const QueueName = "notifications"

// StatusChangePayload is the task body for a status change message.
type StatusChangePayload struct {
	UserID     uint   `json:"userId"`
	MerchantID uint   `json:"merchantId"`
	Subject    string `json:"subject"`
	Body       string `json:"body"`
}

// Service notifies a merchant that something happened to their
// onboarding. Implementations must not block request handling on
// delivery.
type Service interface {
	NotifyStatusChange(ctx context.Context, payload StatusChangePayload) error
}

type queueService struct {
	client *asynq.Client
}

// NewService creates a queue-backed notification service
func NewService(client *asynq.Client) Service {
	return &queueService{client: client}
}

// NotifyStatusChange enqueues a status change notification task.
func (s *queueService) NotifyStatusChange(ctx context.Context, payload StatusChangePayload) error {
	if s.client == nil {
		return fmt.Errorf("notification queue is not configured")
	}

	task, err := NewStatusChangeTask(payload)
	if err != nil {
		return err
	}

	info, err := s.client.EnqueueContext(ctx, task, asynq.Queue(QueueName))
	if err != nil {
		return fmt.Errorf("failed to enqueue notification: %w", err)
	}

	log.Printf("Enqueued notification %s for user %d", info.ID, payload.UserID)
	return nil
}

// NewStatusChangeTask builds the asynq task for a status change.
func NewStatusChangeTask(payload StatusChangePayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal notification payload: %w", err)
	}
	return asynq.NewTask(TaskStatusChange, body), nil
}

// NoopService discards notifications. Used in tests and when the
// queue is disabled.
type NoopService struct{}

func (NoopService) NotifyStatusChange(ctx context.Context, payload StatusChangePayload) error {
	return nil
}
