package notify

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Notifier принимает уведомления. Notify не блокируется и не возвращает ошибок.
type Notifier interface {
	Notify(ev Event)
}

// Sender доставляет одно уведомление получателю
type Sender interface {
	Send(ctx context.Context, ev Event) error
}

// Dispatcher ограниченная очередь уведомлений с пулом воркеров
type Dispatcher struct {
	queue   chan Event
	sender  Sender
	workers int
	logger  *zap.Logger
}

// NewDispatcher создаёт диспетчер с очередью размера queueSize
func NewDispatcher(sender Sender, queueSize, workers int, logger *zap.Logger) *Dispatcher {
	if queueSize <= 0 {
		queueSize = 1
	}
	if workers <= 0 {
		workers = 1
	}
	return &Dispatcher{
		queue:   make(chan Event, queueSize),
		sender:  sender,
		workers: workers,
		logger:  logger,
	}
}

// Notify ставит уведомление в очередь; если очередь заполнена, уведомление отбрасывается
func (d *Dispatcher) Notify(ev Event) {
	select {
	case d.queue <- ev:
	default:
		d.logger.Warn("Notification queue is full, dropping event",
			zap.String("type", string(ev.Type)),
			zap.Int64("recipient", ev.Recipient.ExternalID),
		)
	}
}

// Run запускает воркеры и блокируется до отмены ctx
func (d *Dispatcher) Run(ctx context.Context) error {
	d.logger.Info("Starting notification dispatcher", zap.Int("workers", d.workers))

	g, ctx := errgroup.WithContext(ctx)
	for i := 0; i < d.workers; i++ {
		g.Go(func() error {
			d.work(ctx)
			return nil
		})
	}

	err := g.Wait()
	d.logger.Info("Notification dispatcher stopped")
	return err
}

func (d *Dispatcher) work(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case ev := <-d.queue:
			d.deliver(ctx, ev)
		}
	}
}

func (d *Dispatcher) deliver(ctx context.Context, ev Event) {
	if err := d.sender.Send(ctx, ev); err != nil {
		if errors.Is(err, context.Canceled) {
			return
		}
		d.logger.Error("Failed to deliver notification",
			zap.String("type", string(ev.Type)),
			zap.Int64("recipient", ev.Recipient.ExternalID),
			zap.Error(err),
		)
	}
}
