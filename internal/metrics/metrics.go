// Package metrics exposes the server's Prometheus instrumentation.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Set bundles the collectors the hub and transport report into. A nil *Set
// is valid and records nothing, so tests can pass nil.
type Set struct {
	ConnectionsAccepted prometheus.Counter
	ConnectionsLive     prometheus.Gauge
	CommandsProcessed   *prometheus.CounterVec
	EventsSent          prometheus.Counter
	EventsDropped       prometheus.Counter
}

// New registers the collectors with reg and returns the set.
func New(reg prometheus.Registerer) *Set {
	factory := promauto.With(reg)
	return &Set{
		ConnectionsAccepted: factory.NewCounter(prometheus.CounterOpts{
			Name: "codepair_connections_accepted_total",
			Help: "Websocket connections accepted since start.",
		}),
		ConnectionsLive: factory.NewGauge(prometheus.GaugeOpts{
			Name: "codepair_connections_live",
			Help: "Currently open websocket connections.",
		}),
		CommandsProcessed: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "codepair_commands_processed_total",
			Help: "Commands handled by the hub, by kind.",
		}, []string{"kind"}),
		EventsSent: factory.NewCounter(prometheus.CounterOpts{
			Name: "codepair_events_sent_total",
			Help: "Events delivered to client send buffers.",
		}),
		EventsDropped: factory.NewCounter(prometheus.CounterOpts{
			Name: "codepair_events_dropped_total",
			Help: "Events dropped because a client send buffer was full.",
		}),
	}
}

// ConnOpened records an accepted connection.
func (s *Set) ConnOpened() {
	if s == nil {
		return
	}
	s.ConnectionsAccepted.Inc()
	s.ConnectionsLive.Inc()
}

// ConnClosed records a finished connection.
func (s *Set) ConnClosed() {
	if s == nil {
		return
	}
	s.ConnectionsLive.Dec()
}

// Command records one processed hub command.
func (s *Set) Command(kind string) {
	if s == nil {
		return
	}
	s.CommandsProcessed.WithLabelValues(kind).Inc()
}

// Delivered records broadcast outcomes.
func (s *Set) Delivered(sent, dropped int) {
	if s == nil {
		return
	}
	s.EventsSent.Add(float64(sent))
	s.EventsDropped.Add(float64(dropped))
}
