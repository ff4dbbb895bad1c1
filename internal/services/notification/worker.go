package notification

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"veridesk/internal/models"
	"veridesk/internal/repositories"

	"github.com/hibiken/asynq"
)

// Worker consumes notification tasks and records the delivered
// message against the merchant's account.
type Worker struct {
	notifications repositories.NotificationRepository
}

// NewWorker creates a notification task handler
func NewWorker(notifications repositories.NotificationRepository) *Worker {
	return &Worker{notifications: notifications}
}

// Register wires the worker's handlers onto the task mux.
func (w *Worker) Register(mux *asynq.ServeMux) {
	mux.HandleFunc(TaskStatusChange, w.HandleStatusChange)
}

// HandleStatusChange persists one status change notification. A
// returned error makes asynq retry the task.
func (w *Worker) HandleStatusChange(ctx context.Context, task *asynq.Task) error {
	var payload StatusChangePayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %v: %w", err, asynq.SkipRetry)
	}

	record := &models.Notification{
		UserID:  payload.UserID,
		Channel: "email",
		Subject: payload.Subject,
		Body:    payload.Body,
		Status:  "queued",
	}
	if err := w.notifications.Create(record); err != nil {
		return fmt.Errorf("failed to store notification: %w", err)
	}

	// Delivery itself is a stub; the record is the merchant's inbox.
	if err := w.notifications.MarkSent(record.ID); err != nil {
		return fmt.Errorf("failed to mark notification sent: %w", err)
	}

	log.Printf("Delivered notification %d to user %d", record.ID, payload.UserID)
	return nil
}
