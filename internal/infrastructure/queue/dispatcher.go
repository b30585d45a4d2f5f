package queue

import (
	"context"
	"errors"
	"hash/fnv"
	"strconv"
	"sync"

	"github.com/rs/zerolog"

	"github.com/gestionstock/product-api/internal/api/metrics"
	"github.com/gestionstock/product-api/internal/core/domain"
	"github.com/gestionstock/product-api/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

var (
	// ErrQueueFull is returned when the worker owning an event has no room left.
	ErrQueueFull = errors.New("event queue full")
	// ErrDispatcherClosed is returned by Publish after Close.
	ErrDispatcherClosed = errors.New("event dispatcher closed")
)

// Dispatcher fans product events out to a fixed set of workers using
// consistent hashing on the product id, so events about one product reach
// the sink in the order they were published.
type Dispatcher struct {
	workers []chan domain.ProductEvent
	sink    ports.ProductEventPublisher
	log     zerolog.Logger

	mu     sync.RWMutex
	closed bool
	wg     sync.WaitGroup
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers, each
// holding up to buffer pending events. Non-positive values fall back to the
// defaults.
func NewDispatcher(numWorkers, buffer int, sink ports.ProductEventPublisher, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	if buffer <= 0 {
		buffer = channelBuffer
	}
	d := &Dispatcher{
		workers: make([]chan domain.ProductEvent, numWorkers),
		sink:    sink,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan domain.ProductEvent, buffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled or
// after Close has drained their channel.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		d.wg.Add(1)
		go d.runWorker(ctx, i, ch)
	}
}

// Publish enqueues ev on the worker responsible for its product. It never
// blocks: a full worker channel yields ErrQueueFull.
func (d *Dispatcher) Publish(_ context.Context, ev domain.ProductEvent) error {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.closed {
		metrics.EventsDroppedTotal.Inc()
		return ErrDispatcherClosed
	}

	idx := d.shardIndex(ev.ProductID)
	select {
	case d.workers[idx] <- ev:
		metrics.EventsQueueDepth.WithLabelValues(strconv.Itoa(idx)).Set(float64(len(d.workers[idx])))
		return nil
	default:
		metrics.EventsDroppedTotal.Inc()
		return ErrQueueFull
	}
}

// Close stops accepting events and waits for the workers to drain what is
// already queued. It is safe to call more than once.
func (d *Dispatcher) Close() {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	d.closed = true
	for _, ch := range d.workers {
		close(ch)
	}
	d.mu.Unlock()

	d.wg.Wait()
}

// shardIndex maps a product id deterministically to a worker index.
func (d *Dispatcher) shardIndex(productID int) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(strconv.Itoa(productID)))
	return int(h.Sum32() % uint32(len(d.workers)))
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan domain.ProductEvent) {
	defer d.wg.Done()
	depth := metrics.EventsQueueDepth.WithLabelValues(strconv.Itoa(id))

	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-ch:
			if !ok {
				return
			}
			depth.Set(float64(len(ch)))
			if err := d.sink.Publish(ctx, ev); err != nil {
				metrics.EventsPublishedTotal.WithLabelValues("error").Inc()
				d.log.Error().Err(err).
					Str("type", string(ev.Type)).
					Int("product_id", ev.ProductID).
					Int("worker_id", id).
					Msg("product event delivery failed")
				continue
			}
			metrics.EventsPublishedTotal.WithLabelValues("ok").Inc()
		}
	}
}
