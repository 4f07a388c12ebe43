package metrics

import (
	"net/http"
	"snapbox/internal/core/domain"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// ImageMetrics records storage service activity in prometheus collectors
type ImageMetrics struct {
	uploads     *prometheus.CounterVec
	uploadBytes prometheus.Histogram
	rejections  *prometheus.CounterVec
	deletions   prometheus.Counter
}

// NewImageMetrics creates the collectors and registers them on reg
func NewImageMetrics(reg prometheus.Registerer) *ImageMetrics {
	m := &ImageMetrics{
		uploads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "snapbox",
			Subsystem: "images",
			Name:      "uploaded_total",
			Help:      "Number of stored images per source",
		}, []string{"source"}),

		uploadBytes: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "snapbox",
			Subsystem: "images",
			Name:      "upload_bytes",
			Help:      "Size of stored images",
			Buckets:   prometheus.ExponentialBuckets(64*1024, 2, 8),
		}),

		rejections: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "snapbox",
			Subsystem: "images",
			Name:      "rejected_total",
			Help:      "Number of refused uploads per reason",
		}, []string{"reason"}),

		deletions: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "snapbox",
			Subsystem: "images",
			Name:      "deleted_total",
			Help:      "Number of deleted images",
		}),
	}

	reg.MustRegister(m.uploads, m.uploadBytes, m.rejections, m.deletions)
	return m
}

func (m *ImageMetrics) ImageUploaded(source domain.Source, size int64) {
	m.uploads.WithLabelValues(string(source)).Inc()
	m.uploadBytes.Observe(float64(size))
}

func (m *ImageMetrics) ImageRejected(reason string) {
	m.rejections.WithLabelValues(reason).Inc()
}

func (m *ImageMetrics) ImagesDeleted(n int) {
	m.deletions.Add(float64(n))
}

// Handler exposes the gatherer in the prometheus text format
func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}
