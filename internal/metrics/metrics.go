// Package metrics exports tree operation outcomes and shape as prometheus
// metrics.
package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	"bstviz"
)

const namespace = "bstviz"

// Collector implements bstviz.Observer on top of prometheus collectors.
type Collector struct {
	Operations *prometheus.CounterVec
	Steps      *prometheus.HistogramVec
	Size       prometheus.Gauge
	Height     prometheus.Gauge
}

var _ bstviz.Observer = (*Collector)(nil)

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) (*Collector, error) {
	c := &Collector{
		Operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "operations_total",
			Help:      "Tree operations by kind and outcome.",
		}, []string{"op", "outcome"}),
		Steps: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "operation_steps",
			Help:      "Steps recorded per operation.",
			Buckets:   prometheus.ExponentialBuckets(1, 2, 8),
		}, []string{"op"}),
		Size: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "tree_size",
			Help:      "Number of values in the tree.",
		}),
		Height: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "tree_height",
			Help:      "Height of the tree, -1 when empty.",
		}),
	}

	for _, col := range []prometheus.Collector{c.Operations, c.Steps, c.Size, c.Height} {
		if err := reg.Register(col); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// ObserveOp counts the operation and records its step count. Clear records
// no steps and is only counted.
func (c *Collector) ObserveOp(op bstviz.Op, ok bool, steps int) {
	c.Operations.WithLabelValues(string(op), outcome(ok)).Inc()
	if op != bstviz.OpClear {
		c.Steps.WithLabelValues(string(op)).Observe(float64(steps))
	}
}

// ObserveShape sets the size and height gauges.
func (c *Collector) ObserveShape(size, height int) {
	c.Size.Set(float64(size))
	c.Height.Set(float64(height))
}

func outcome(ok bool) string {
	return strconv.FormatBool(ok)
}
