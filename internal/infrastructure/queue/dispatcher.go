package queue

import (
	"context"
	"hash/fnv"

	"github.com/rs/zerolog"

	"github.com/vetclinic/clinic-system/internal/api/metrics"
	"github.com/vetclinic/clinic-system/internal/core/domain"
	"github.com/vetclinic/clinic-system/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

// Dispatcher routes audit events to a fixed set of workers using consistent
// hashing on the appointment id, guaranteeing per-appointment event ordering.
// It is the ports.AuditRecorder the appointment service publishes to.
type Dispatcher struct {
	workers []chan domain.AppointmentEvent
	service ports.AuditService
	log     zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, service ports.AuditService, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan domain.AppointmentEvent, numWorkers),
		service: service,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan domain.AppointmentEvent, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Record sends an event to the worker responsible for its appointment.
// Recording is best-effort: when the worker's queue is full (or the workers
// have already stopped) the event is dropped and counted rather than
// blocking the calling request.
func (d *Dispatcher) Record(event domain.AppointmentEvent) {
	select {
	case d.workers[d.shardIndex(event.AppointmentID)] <- event:
	default:
		metrics.AuditEventsDroppedTotal.Inc()
		d.log.Warn().
			Str("appointment_id", event.AppointmentID).
			Str("status", string(event.Status)).
			Msg("audit queue full, event dropped")
	}
}

// shardIndex maps an appointment id deterministically to a worker index.
func (d *Dispatcher) shardIndex(appointmentID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(appointmentID))
	return int(h.Sum32()) % len(d.workers)
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan domain.AppointmentEvent) {
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-ch:
			if !ok {
				return
			}
			if err := d.service.Process(ctx, event); err != nil {
				metrics.AuditEventsErrorsTotal.Inc()
				d.log.Error().Err(err).
					Str("appointment_id", event.AppointmentID).
					Int("worker_id", id).
					Msg("audit event processing failed")
				continue
			}
			metrics.AuditEventsProcessedTotal.Inc()
		}
	}
}
