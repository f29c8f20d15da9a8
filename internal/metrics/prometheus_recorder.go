package metrics

import (
	"fmt"
	"sync"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

// PrometheusRecorder implements Recorder with Prometheus collectors.
type PrometheusRecorder struct {
	once         sync.Once
	reg          *prom.Registry
	iterations   prom.Counter
	refreshes    *prom.CounterVec
	restarts     prom.Counter
	peakDensity  prom.Gauge
	stepDuration prom.Histogram
}

// NewPrometheusRecorder registers the explorer's collectors on reg, or on a
// fresh registry when reg is nil.
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{reg: reg}
	pr.once.Do(func() {
		pr.iterations = prom.NewCounter(prom.CounterOpts{
			Namespace: "dejong",
			Name:      "iterations_total",
			Help:      "Map samples accumulated across all renders",
		})
		pr.refreshes = prom.NewCounterVec(prom.CounterOpts{
			Namespace: "dejong",
			Name:      "refreshes_total",
			Help:      "Refresh decisions by reason",
		}, []string{"reason"})
		pr.restarts = prom.NewCounter(prom.CounterOpts{
			Namespace: "dejong",
			Name:      "restarts_total",
			Help:      "Accumulation restarts caused by parameter edits",
		})
		pr.peakDensity = prom.NewGauge(prom.GaugeOpts{
			Namespace: "dejong",
			Name:      "peak_density",
			Help:      "Highest histogram bucket of the current render",
		})
		pr.stepDuration = prom.NewHistogram(prom.HistogramOpts{
			Namespace: "dejong",
			Name:      "step_duration_seconds",
			Help:      "Wall time of one scheduler step",
			Buckets:   prom.ExponentialBuckets(0.0001, 2, 12),
		})
		reg.MustRegister(pr.iterations, pr.refreshes, pr.restarts, pr.peakDensity, pr.stepDuration)
	})
	return pr
}

func (p *PrometheusRecorder) AddIterations(n int) {
	if p == nil || p.iterations == nil || n <= 0 {
		return
	}
	p.iterations.Add(float64(n))
}

func (p *PrometheusRecorder) IncRefresh(reason RefreshReason) {
	if p == nil || p.refreshes == nil {
		return
	}
	p.refreshes.WithLabelValues(string(reason)).Inc()
}

func (p *PrometheusRecorder) IncRestart() {
	if p == nil || p.restarts == nil {
		return
	}
	p.restarts.Inc()
}

func (p *PrometheusRecorder) SetPeakDensity(d uint32) {
	if p == nil || p.peakDensity == nil {
		return
	}
	p.peakDensity.Set(float64(d))
}

func (p *PrometheusRecorder) ObserveStep(d time.Duration) {
	if p == nil || p.stepDuration == nil {
		return
	}
	p.stepDuration.Observe(d.Seconds())
}

// Registry exposes the registry the collectors live on.
func (p *PrometheusRecorder) Registry() *prom.Registry {
	if p == nil {
		return nil
	}
	return p.reg
}

// WriteTextfile dumps the current metric values in the text exposition
// format, suitable for a node_exporter textfile collector.
func (p *PrometheusRecorder) WriteTextfile(path string) error {
	if p == nil || p.reg == nil {
		return nil
	}
	if err := prom.WriteToTextfile(path, p.reg); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}
