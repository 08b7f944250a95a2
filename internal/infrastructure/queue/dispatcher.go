package queue

import (
	"context"
	"hash/fnv"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/dreamblog/dreamblog-api/internal/api/metrics"
	"github.com/dreamblog/dreamblog-api/internal/core/domain"
	"github.com/dreamblog/dreamblog-api/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

// Dispatcher routes engagement events to a fixed set of workers using
// consistent hashing on the actor id, guaranteeing per-actor ordering in the
// activity trail. Record never blocks a request: a full worker channel drops
// the event with a metric and a warning.
type Dispatcher struct {
	workers []chan domain.Activity
	service ports.ActivityService
	log     zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, service ports.ActivityService, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan domain.Activity, numWorkers),
		service: service,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan domain.Activity, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Record enqueues an event for the worker responsible for its actor.
func (d *Dispatcher) Record(activity domain.Activity) {
	idx := d.shardIndex(activity.ActorID)
	select {
	case d.workers[idx] <- activity:
		metrics.ActivitiesRecordedTotal.WithLabelValues(activity.Verb).Inc()
		metrics.ActivityQueueDepth.WithLabelValues(strconv.Itoa(idx)).Set(float64(len(d.workers[idx])))
	default:
		metrics.ActivitiesDroppedTotal.Inc()
		d.log.Warn().
			Str("actor_id", activity.ActorID).
			Str("verb", activity.Verb).
			Int("worker_id", idx).
			Msg("activity dropped, worker channel full")
	}
}

// shardIndex maps an actor id deterministically to a worker index.
func (d *Dispatcher) shardIndex(actorID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(actorID))
	return int(h.Sum32()) % len(d.workers)
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan domain.Activity) {
	for {
		select {
		case <-ctx.Done():
			return
		case activity, ok := <-ch:
			if !ok {
				return
			}
			metrics.ActivityQueueDepth.WithLabelValues(strconv.Itoa(id)).Set(float64(len(ch)))
			if err := d.service.Process(ctx, activity); err != nil {
				metrics.ActivitiesErrorsTotal.Inc()
				d.log.Error().Err(err).
					Str("actor_id", activity.ActorID).
					Str("verb", activity.Verb).
					Int("worker_id", id).
					Msg("activity processing failed")
			}
		}
	}
}
