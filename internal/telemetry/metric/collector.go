// Package metric provides Prometheus metrics for FormSeal.
package metric

import "github.com/prometheus/client_golang/prometheus"

// GaugeCollector exports a single gauge whose value is read at scrape
// time, for sizes owned by other components (limiter registry, config
// watch lists) without pushing on every change.
type GaugeCollector struct {
	desc  *prometheus.Desc
	value func() float64
}

// NewGaugeCollector creates a collector for the fully-qualified metric
// formseal_<subsystem>_<name>.
func NewGaugeCollector(subsystem, name, help string, value func() float64) *GaugeCollector {
	return &GaugeCollector{
		desc: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, subsystem, name),
			help,
			nil, nil,
		),
		value: value,
	}
}

// Describe implements prometheus.Collector.
func (c *GaugeCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.desc
}

// Collect implements prometheus.Collector.
func (c *GaugeCollector) Collect(ch chan<- prometheus.Metric) {
	ch <- prometheus.MustNewConstMetric(c.desc, prometheus.GaugeValue, c.value())
}
