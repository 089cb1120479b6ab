package netx

import (
	"context"
	"time"

	"storyshare/internal/logging"
)

// Prober checks whether the remote API is reachable right now.
type Prober interface {
	Ping(ctx context.Context) error
}

// Watcher probes the API on an interval, updates a Monitor, and emits one
// Transition per state change. The channel is buffered; if the consumer
// lags, intermediate transitions are dropped in favor of the newest one.
type Watcher struct {
	monitor  *Monitor
	prober   Prober
	interval time.Duration
	log      logging.Logger
	events   chan Transition
}

func NewWatcher(monitor *Monitor, prober Prober, interval time.Duration, log logging.Logger) *Watcher {
	return &Watcher{
		monitor:  monitor,
		prober:   prober,
		interval: interval,
		log:      log,
		events:   make(chan Transition, 1),
	}
}

// Events returns the transition channel. It is closed when Run returns.
func (w *Watcher) Events() <-chan Transition {
	return w.events
}

// Run probes until ctx is cancelled. Each probe gets its own short timeout
// so a hanging request cannot stall the watch loop.
func (w *Watcher) Run(ctx context.Context) {
	defer close(w.events)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			w.probe(ctx)
		case <-ctx.Done():
			return
		}
	}
}

func (w *Watcher) probe(ctx context.Context) {
	probeCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	err := w.prober.Ping(probeCtx)
	cancel()

	online := err == nil
	if !w.monitor.Set(online) {
		return
	}

	if online {
		w.log.Info(ctx, "connectivity restored")
	} else {
		w.log.Warn(ctx, "connectivity lost", "error", err)
	}

	t := Transition{Online: online}
	select {
	case w.events <- t:
	default:
		// Queue full: replace the stale transition with the newest one.
		select {
		case <-w.events:
		default:
		}
		w.events <- t
	}
}
