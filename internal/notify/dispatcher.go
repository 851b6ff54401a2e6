package notify

import (
	"log/slog"
	"sync"
)

// Notification describes one create/update/delete event to announce.
type Notification struct {
	Recipients []string
	Action     string
	ItemName   string
	ItemType   string
	Extra      string
}

// Sender is the mail transport the dispatcher delivers through.
type Sender interface {
	SendCRUDNotification(recipients []string, action, itemName, itemType, extra string) error
}

// Dispatcher delivers notifications from a background worker so a slow
// or failing mail transport can never block or fail the request that
// triggered it. Delivery failures are logged and dropped.
type Dispatcher struct {
	sender Sender
	queue  chan Notification
	wg     sync.WaitGroup

	mu      sync.RWMutex
	stopped bool
}

func NewDispatcher(sender Sender) *Dispatcher {
	d := &Dispatcher{
		sender: sender,
		queue:  make(chan Notification, 64),
	}
	d.wg.Add(1)
	go d.worker()
	return d
}

// Notify enqueues without blocking; a full queue drops the notification.
// Safe to call during or after Stop: a notification arriving once
// shutdown has begun is dropped, never a panic on the closed queue.
func (d *Dispatcher) Notify(n Notification) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.stopped {
		slog.Warn("dispatcher stopped, dropping notification",
			"action", n.Action, "item", n.ItemName, "type", n.ItemType)
		return
	}

	select {
	case d.queue <- n:
	default:
		slog.Warn("notification queue full, dropping",
			"action", n.Action, "item", n.ItemName, "type", n.ItemType)
	}
}

// Stop drains the queue and waits for in-flight deliveries. Idempotent.
func (d *Dispatcher) Stop() {
	d.mu.Lock()
	if d.stopped {
		d.mu.Unlock()
		return
	}
	d.stopped = true
	d.mu.Unlock()

	// Taking the write lock above means no Notify still holds the read
	// lock with a send in flight; closing is now safe.
	close(d.queue)
	d.wg.Wait()
}

func (d *Dispatcher) worker() {
	defer d.wg.Done()
	for n := range d.queue {
		if d.sender == nil || len(n.Recipients) == 0 {
			continue
		}
		if err := d.sender.SendCRUDNotification(n.Recipients, n.Action, n.ItemName, n.ItemType, n.Extra); err != nil {
			slog.Error("failed to send notification",
				"action", n.Action, "item", n.ItemName, "type", n.ItemType, "error", err)
			continue
		}
		slog.Info("notification sent",
			"action", n.Action, "item", n.ItemName, "type", n.ItemType, "recipients", len(n.Recipients))
	}
}
