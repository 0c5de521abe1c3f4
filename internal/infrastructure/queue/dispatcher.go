package queue

import (
	"context"
	"hash/fnv"
	"sync"

	"github.com/rs/zerolog"

	"github.com/qbnb/marketplace-api/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

// Dispatcher routes audit events to a fixed set of workers using consistent
// hashing on the entity id, guaranteeing per-entity event ordering.
type Dispatcher struct {
	workers []chan ports.AuditEvent
	service ports.AuditService
	log     zerolog.Logger
	wg      sync.WaitGroup
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, service ports.AuditService, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan ports.AuditEvent, numWorkers),
		service: service,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan ports.AuditEvent, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers run until Stop is called.
func (d *Dispatcher) Start() {
	for i, ch := range d.workers {
		d.wg.Add(1)
		go d.runWorker(i, ch)
	}
}

// Stop closes the worker channels and blocks until every queued event has
// been processed. No Enqueue may follow a Stop.
func (d *Dispatcher) Stop() {
	for _, ch := range d.workers {
		close(ch)
	}
	d.wg.Wait()
}

// Enqueue sends an event to the worker responsible for its entity id.
// The call is non-blocking up to channelBuffer capacity.
func (d *Dispatcher) Enqueue(event ports.AuditEvent) {
	d.workers[d.shardIndex(event.EntityID)] <- event
}

// shardIndex maps an entity id deterministically to a worker index.
func (d *Dispatcher) shardIndex(entityID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(entityID))
	return int(h.Sum32()) % len(d.workers)
}

func (d *Dispatcher) runWorker(id int, ch <-chan ports.AuditEvent) {
	defer d.wg.Done()
	for event := range ch {
		// Detached from any request context so a shutdown drain can still
		// persist queued events; the repository applies its own deadline.
		if err := d.service.Process(context.Background(), event); err != nil {
			d.log.Error().Err(err).
				Str("entity_id", event.EntityID).
				Str("action", event.Action).
				Int("worker_id", id).
				Msg("audit event processing failed")
		}
	}
}
