// Package notify runs the asynchronous follow-up work: confirmation
// and registration emails, shop availability refreshes and thumbnail
// warming. Jobs are delivered at least once; a failing job is retried
// and finally logged, never surfaced to the request that queued it.
package notify

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Timons172/Orders-backend-app/internal/models"
	"github.com/Timons172/Orders-backend-app/internal/store"
)

const maxAttempts = 3

// Sender delivers one email.
type Sender interface {
	Send(to, subject, body string) error
}

// Renderer produces image renditions ahead of first use.
type Renderer interface {
	Warm(entity string, id int64, field string) error
}

type Config struct {
	Workers    int
	QueueSize  int
	AdminEmail string
	// RetryBackoff scales the pause between attempts. Zero means one
	// second.
	RetryBackoff time.Duration
}

type job struct {
	id   string
	kind string
	run  func() error
}

// Dispatcher fans jobs out to a fixed worker pool. Enqueueing never
// blocks: when the queue is full the job runs on its own goroutine.
type Dispatcher struct {
	cfg      Config
	store    store.CatalogStore
	sender   Sender
	renderer Renderer
	logger   *zap.Logger

	mu     sync.RWMutex
	closed bool
	jobs   chan job
	wg     sync.WaitGroup
}

func NewDispatcher(cfg Config, st store.CatalogStore, sender Sender, renderer Renderer, logger *zap.Logger) *Dispatcher {
	if cfg.Workers <= 0 {
		cfg.Workers = 4
	}
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = 64
	}
	if cfg.RetryBackoff <= 0 {
		cfg.RetryBackoff = time.Second
	}
	return &Dispatcher{
		cfg:      cfg,
		store:    st,
		sender:   sender,
		renderer: renderer,
		logger:   logger,
		jobs:     make(chan job, cfg.QueueSize),
	}
}

// Start launches the workers.
func (d *Dispatcher) Start() {
	for i := 0; i < d.cfg.Workers; i++ {
		d.wg.Add(1)
		go d.worker()
	}
	d.logger.Info("dispatcher started",
		zap.Int("workers", d.cfg.Workers),
		zap.Int("queue_size", d.cfg.QueueSize))
}

// Close drains the queue and waits for in-flight jobs. Jobs enqueued
// afterwards are dropped with a log line.
func (d *Dispatcher) Close() {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	d.closed = true
	close(d.jobs)
	d.mu.Unlock()

	d.wg.Wait()
	d.logger.Info("dispatcher stopped")
}

func (d *Dispatcher) worker() {
	defer d.wg.Done()
	for j := range d.jobs {
		d.process(j)
	}
}

func (d *Dispatcher) process(j job) {
	var err error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if err = j.run(); err == nil {
			d.logger.Info("job done",
				zap.String("job_id", j.id),
				zap.String("kind", j.kind),
				zap.Int("attempt", attempt))
			return
		}
		d.logger.Warn("job attempt failed",
			zap.String("job_id", j.id),
			zap.String("kind", j.kind),
			zap.Int("attempt", attempt),
			zap.Error(err))
		if attempt < maxAttempts {
			time.Sleep(time.Duration(attempt) * d.cfg.RetryBackoff)
		}
	}
	d.logger.Error("job dropped after retries",
		zap.String("job_id", j.id),
		zap.String("kind", j.kind),
		zap.Error(err))
}

func (d *Dispatcher) enqueue(kind string, run func() error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.closed {
		d.logger.Warn("dispatcher closed, dropping job", zap.String("kind", kind))
		return
	}

	j := job{id: uuid.NewString(), kind: kind, run: run}
	select {
	case d.jobs <- j:
	default:
		// Queue full. Spill onto a fresh goroutine so the caller
		// still does not block.
		d.wg.Add(1)
		go func() {
			defer d.wg.Done()
			d.process(j)
		}()
	}
}

// OrderConfirmed emails the buyer and, when an admin address is
// configured, an order alert with the line items.
func (d *Dispatcher) OrderConfirmed(order *models.OrderView, userEmail, userName string) {
	d.enqueue("order_confirmed", func() error {
		body := fmt.Sprintf("Thank you for your order! Your order ID is %d.", order.ID)
		if err := d.sender.Send(userEmail, "Order confirmation", body); err != nil {
			return err
		}
		return d.sendAdminAlert(order, userName)
	})
}

func (d *Dispatcher) sendAdminAlert(order *models.OrderView, userName string) error {
	if d.cfg.AdminEmail == "" {
		return nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "New order #%d from %s\n", order.ID, userName)
	if order.Contact != nil {
		fmt.Fprintf(&b, "Contact (%s): %s\n", order.Contact.Type, order.Contact.Value)
	}
	b.WriteString("\nItems:\n")
	for _, item := range order.Items {
		fmt.Fprintf(&b, "- %s from %s: %d pcs\n", item.Product.Name, item.Shop.Name, item.Quantity)
	}
	fmt.Fprintf(&b, "\nTotal: %s\n", order.TotalSum.StringFixed(2))

	return d.sender.Send(d.cfg.AdminEmail, fmt.Sprintf("New order #%d", order.ID), b.String())
}

// UserRegistered sends the welcome email.
func (d *Dispatcher) UserRegistered(email, name string) {
	d.enqueue("user_registered", func() error {
		body := fmt.Sprintf("Thank you for registering, %s!", name)
		return d.sender.Send(email, "Registration confirmation", body)
	})
}

// RecomputeAvailability rescans one shop's listings and reports the
// stock split. It never mutates stock levels.
func (d *Dispatcher) RecomputeAvailability(shopID int64) {
	d.enqueue("recompute_availability", func() error {
		listings, err := d.store.ListingsByShop(context.Background(), shopID)
		if err != nil {
			return err
		}
		inStock := 0
		for _, l := range listings {
			if l.Quantity > 0 {
				inStock++
			}
		}
		d.logger.Info("availability recomputed",
			zap.Int64("shop_id", shopID),
			zap.Int("listings", len(listings)),
			zap.Int("in_stock", inStock),
			zap.Int("out_of_stock", len(listings)-inStock))
		return nil
	})
}

// WarmThumbnails pre-renders the image renditions for one entity
// field.
func (d *Dispatcher) WarmThumbnails(entity string, id int64, field string) {
	d.enqueue("warm_thumbnails", func() error {
		return d.renderer.Warm(entity, id, field)
	})
}
