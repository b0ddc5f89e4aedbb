// FILE: lixenwraith/sdklog/metrics/prometheus.go

// Package metrics exposes the file sink counters as Prometheus metrics.
package metrics

import (
	"context"
	"fmt"
	"time"

	"github.com/lixenwraith/sdklog"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/push"
)

// Namespace of every exported metric
const Namespace = "sdklog"

// StatsSource is satisfied by *sdklog.Logger and *sdklog.FileSink
type StatsSource interface {
	Stats() sdklog.Stats
}

// Collector is a prometheus.Collector reading a stats snapshot on every scrape
type Collector struct {
	source StatsSource

	processed   *prometheus.Desc
	dropped     *prometheus.Desc
	rotations   *prometheus.Desc
	failed      *prometheus.Desc
	activeBytes *prometheus.Desc
}

var _ prometheus.Collector = (*Collector)(nil)

// NewCollector creates a collector over source. constLabels may be nil.
func NewCollector(source StatsSource, constLabels prometheus.Labels) *Collector {
	desc := func(name, help string) *prometheus.Desc {
		return prometheus.NewDesc(prometheus.BuildFQName(Namespace, "file", name), help, nil, constLabels)
	}
	return &Collector{
		source:      source,
		processed:   desc("records_written_total", "Records written to the log file ring"),
		dropped:     desc("records_dropped_total", "Records dropped because the worker queue was full"),
		rotations:   desc("rotations_total", "Completed rotations of the log file ring"),
		failed:      desc("operations_failed_total", "File worker operations that failed"),
		activeBytes: desc("active_bytes", "Size of the active log file in bytes"),
	}
}

// Describe implements prometheus.Collector
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.processed
	ch <- c.dropped
	ch <- c.rotations
	ch <- c.failed
	ch <- c.activeBytes
}

// Collect implements prometheus.Collector
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	s := c.source.Stats()
	ch <- prometheus.MustNewConstMetric(c.processed, prometheus.CounterValue, float64(s.Processed))
	ch <- prometheus.MustNewConstMetric(c.dropped, prometheus.CounterValue, float64(s.Dropped))
	ch <- prometheus.MustNewConstMetric(c.rotations, prometheus.CounterValue, float64(s.Rotations))
	ch <- prometheus.MustNewConstMetric(c.failed, prometheus.CounterValue, float64(s.Failed))
	ch <- prometheus.MustNewConstMetric(c.activeBytes, prometheus.GaugeValue, float64(s.ActiveBytes))
}

// NewRegistry returns a registry holding only a collector over source
func NewRegistry(source StatsSource, constLabels prometheus.Labels) (*prometheus.Registry, error) {
	registry := prometheus.NewRegistry()
	if err := registry.Register(NewCollector(source, constLabels)); err != nil {
		return nil, fmt.Errorf("sdklog/metrics: failed to register collector: %w", err)
	}
	return registry, nil
}

// Pusher sends the counters of a logger to a Pushgateway and reports the
// outcome through that same logger.
type Pusher struct {
	logger  *sdklog.Logger
	url     string
	job     string
	timeout time.Duration
	reg     *prometheus.Registry
}

// NewPusher creates a pusher for logger. An empty url disables pushing.
func NewPusher(logger *sdklog.Logger, url, job string, timeout time.Duration) (*Pusher, error) {
	if job == "" {
		return nil, fmt.Errorf("sdklog/metrics: job name cannot be empty")
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	reg, err := NewRegistry(logger, nil)
	if err != nil {
		return nil, err
	}
	return &Pusher{logger: logger, url: url, job: job, timeout: timeout, reg: reg}, nil
}

// Push sends one snapshot. Failures are logged and returned.
func (p *Pusher) Push(ctx context.Context) error {
	if p.url == "" {
		p.logger.Debug("metrics", "pushgateway url not configured, skipping push")
		return nil
	}

	pushCtx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	if err := push.New(p.url, p.job).Gatherer(p.reg).PushContext(pushCtx); err != nil {
		p.logger.Warning("metrics", fmt.Sprintf("failed to push metrics to pushgateway, job=%s", p.job), err)
		return fmt.Errorf("sdklog/metrics: push failed: %w", err)
	}

	p.logger.Debug("metrics", fmt.Sprintf("metrics pushed, job=%s", p.job))
	return nil
}
