package notification

import (
	"context"
	"errors"
	"testing"

	"veridesk/internal/models"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockNotificationRepo struct {
	mock.Mock
}

func (m *MockNotificationRepo) Create(n *models.Notification) error {
	args := m.Called(n)
	n.ID = 11
	return args.Error(0)
}

func (m *MockNotificationRepo) GetByID(id uint) (*models.Notification, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Notification), args.Error(1)
}

func (m *MockNotificationRepo) GetByUserID(userID uint, limit, offset int) ([]models.Notification, error) {
	args := m.Called(userID, limit, offset)
	return args.Get(0).([]models.Notification), args.Error(1)
}

func (m *MockNotificationRepo) MarkSent(id uint) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockNotificationRepo) MarkFailed(id uint) error {
	args := m.Called(id)
	return args.Error(0)
}

func TestHandleStatusChange(t *testing.T) {
	repo := new(MockNotificationRepo)
	repo.On("Create", mock.MatchedBy(func(n *models.Notification) bool {
		return n.UserID == 42 && n.Subject == "Application approved"
	})).Return(nil)
	repo.On("MarkSent", uint(11)).Return(nil)

	worker := NewWorker(repo)

	task, err := NewStatusChangeTask(StatusChangePayload{
		UserID:     42,
		MerchantID: 7,
		Subject:    "Application approved",
		Body:       "Congratulations",
	})
	require.NoError(t, err)

	err = worker.HandleStatusChange(context.Background(), task)
	assert.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestHandleStatusChangeBadPayload(t *testing.T) {
	repo := new(MockNotificationRepo)
	worker := NewWorker(repo)

	task := asynq.NewTask(TaskStatusChange, []byte("{not json"))

	err := worker.HandleStatusChange(context.Background(), task)
	require.Error(t, err)
	// A malformed payload will never succeed; it must not be retried.
	assert.True(t, errors.Is(err, asynq.SkipRetry))
	repo.AssertNotCalled(t, "Create", mock.Anything)
}
