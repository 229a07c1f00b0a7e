package tasks

import (
	"encoding/json"

	"github.com/thetradeware/mekacash-backend/models"

	"github.com/hibiken/asynq"
)

const TypeDeliverNotification = "notification:deliver"

// NewDeliveryTask wraps one notification intent as an asynq task.
func NewDeliveryTask(intent models.NotificationIntent) (*asynq.Task, error) {
	b, err := json.Marshal(intent)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeDeliverNotification, b), nil
}
