// Package metrics counts what the console prints and drops, per debug
// level, as Prometheus metrics.
package metrics

import (
	"slices"
	"strings"

	"github.com/jongio/termkit/level"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	dto "github.com/prometheus/client_model/go"
)

// Namespace prefixes every metric name.
const Namespace = "termkit"

// Recorder implements the console's observer with Prometheus counters.
type Recorder struct {
	emitted *prometheus.CounterVec
	bytes   *prometheus.CounterVec
	dropped *prometheus.CounterVec
	fatal   prometheus.Counter
}

// New registers the termkit metrics on reg. Registering twice on the same
// registry panics, like promauto does.
func New(reg prometheus.Registerer) *Recorder {
	factory := promauto.With(reg)

	return &Recorder{
		emitted: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: Namespace,
				Name:      "messages_emitted_total",
				Help:      "Messages written to the output stream",
			},
			[]string{"level"},
		),
		bytes: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: Namespace,
				Name:      "message_bytes_total",
				Help:      "Bytes written to the output stream, escape sequences included",
			},
			[]string{"level"},
		),
		dropped: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: Namespace,
				Name:      "messages_dropped_total",
				Help:      "Messages filtered out by the debug level threshold",
			},
			[]string{"level"},
		),
		fatal: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: Namespace,
				Name:      "fatal_requests_total",
				Help:      "Fatal messages that asked the application to exit",
			},
		),
	}
}

// Emitted records a message of n bytes written at level l.
func (r *Recorder) Emitted(l level.Level, n int) {
	r.emitted.WithLabelValues(l.String()).Inc()
	r.bytes.WithLabelValues(l.String()).Add(float64(n))
}

// Dropped records a message filtered out at level l.
func (r *Recorder) Dropped(l level.Level) {
	r.dropped.WithLabelValues(l.String()).Inc()
}

// FatalRequested records a fatal message that requested exit.
func (r *Recorder) FatalRequested() {
	r.fatal.Inc()
}

// Sample is one counter value, flattened for display.
type Sample struct {
	Name   string
	Labels string
	Value  float64
}

// Summary gathers every termkit counter from g, sorted by name and labels.
// Label values that were never used do not appear.
func Summary(g prometheus.Gatherer) ([]Sample, error) {
	families, err := g.Gather()
	if err != nil {
		return nil, err
	}

	var samples []Sample
	for _, mf := range families {
		if !strings.HasPrefix(mf.GetName(), Namespace+"_") || mf.GetType() != dto.MetricType_COUNTER {
			continue
		}
		for _, m := range mf.GetMetric() {
			pairs := make([]string, 0, len(m.GetLabel()))
			for _, lp := range m.GetLabel() {
				pairs = append(pairs, lp.GetName()+"="+lp.GetValue())
			}
			samples = append(samples, Sample{
				Name:   strings.TrimPrefix(mf.GetName(), Namespace+"_"),
				Labels: strings.Join(pairs, ","),
				Value:  m.GetCounter().GetValue(),
			})
		}
	}

	slices.SortFunc(samples, func(a, b Sample) int {
		if c := strings.Compare(a.Name, b.Name); c != 0 {
			return c
		}
		return strings.Compare(a.Labels, b.Labels)
	})
	return samples, nil
}
