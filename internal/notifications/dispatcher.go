package notifications

import (
	"context"
	"sync"
	"time"

	"github.com/vuminhngo/techstore-backend/pkg/logger"
	"github.com/vuminhngo/techstore-backend/pkg/metrics"
)

const sendTimeout = 15 * time.Second

// Dispatcher queues rendered emails and delivers them from a background
// worker. Delivery is best effort: a full queue drops the message and a
// failed send is logged and counted, never propagated to the caller.
type Dispatcher struct {
	sender  Sender
	queue   chan Email
	logg    *logger.Logger
	metrics *metrics.LifecycleMetrics

	mu     sync.RWMutex
	closed bool
	wg     sync.WaitGroup
}

// NewDispatcher builds a dispatcher with a bounded queue and starts its
// worker.
func NewDispatcher(sender Sender, queueSize int, logg *logger.Logger, m *metrics.LifecycleMetrics) *Dispatcher {
	if queueSize <= 0 {
		queueSize = 64
	}
	d := &Dispatcher{
		sender:  sender,
		queue:   make(chan Email, queueSize),
		logg:    logg,
		metrics: m,
	}
	d.wg.Add(1)
	go d.run()
	return d
}

func (d *Dispatcher) run() {
	defer d.wg.Done()
	for email := range d.queue {
		ctx, cancel := context.WithTimeout(context.Background(), sendTimeout)
		err := d.sender.Send(ctx, email)
		cancel()
		if err != nil {
			d.metrics.IncNotifyFailures()
			if d.logg != nil {
				d.logg.Error(context.Background(), "sending notification email", err)
			}
		}
	}
}

// OrderShipped renders and queues the shipping notification.
func (d *Dispatcher) OrderShipped(n OrderShipped) {
	d.enqueue(RenderOrderShipped(n))
}

// OrderCompleted renders and queues the thank-you notification.
func (d *Dispatcher) OrderCompleted(n OrderCompleted) {
	d.enqueue(RenderOrderCompleted(n))
}

func (d *Dispatcher) enqueue(email Email) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.closed {
		return
	}
	select {
	case d.queue <- email:
	default:
		d.metrics.IncNotifyFailures()
		if d.logg != nil {
			d.logg.Warn(context.Background(), "notification queue full, dropping email")
		}
	}
}

// Close stops accepting new messages and waits for the queue to drain.
func (d *Dispatcher) Close() error {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return nil
	}
	d.closed = true
	d.mu.Unlock()

	close(d.queue)
	d.wg.Wait()
	return nil
}
