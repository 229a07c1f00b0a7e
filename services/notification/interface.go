package notification

import (
	"context"

	"github.com/thetradeware/mekacash-backend/models"
	"github.com/thetradeware/mekacash-backend/services/tasks"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// Dispatcher hands notification intents off for asynchronous delivery.
// Dispatch is fire-and-forget: it never blocks on delivery and an enqueue
// failure is logged, not propagated, so a lifecycle operation that already
// persisted its state change can never be failed by its notifications.
type Dispatcher interface {
	Dispatch(ctx context.Context, intents []models.NotificationIntent)
}

// AsynqDispatcher queues one delivery task per intent on the notification
// queue; the worker in cron/ consumes them.
type AsynqDispatcher struct {
	Client *asynq.Client
	Logger *zap.Logger
}

func NewAsynqDispatcher(client *asynq.Client, logger *zap.Logger) *AsynqDispatcher {
	return &AsynqDispatcher{Client: client, Logger: logger}
}

func (d *AsynqDispatcher) Dispatch(ctx context.Context, intents []models.NotificationIntent) {
	for _, intent := range intents {
		task, err := tasks.NewDeliveryTask(intent)
		if err != nil {
			d.Logger.Error("failed to build delivery task",
				zap.String("intent", intent.ID), zap.Error(err))
			continue
		}
		if _, err := d.Client.EnqueueContext(ctx, task); err != nil {
			d.Logger.Error("failed to enqueue notification delivery",
				zap.String("intent", intent.ID),
				zap.String("booking", intent.BookingID),
				zap.Error(err))
		}
	}
}

// NopDispatcher drops intents; used when the notification queue is disabled.
type NopDispatcher struct{}

func (NopDispatcher) Dispatch(context.Context, []models.NotificationIntent) {}
