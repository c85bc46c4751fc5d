package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	GalleryUploads = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gallery_uploads_total",
			Help: "Gallery upload outcomes per file",
		},
		[]string{"result"},
	)

	BusinessApprovals = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "business_approvals_total",
			Help: "Total number of approved business listings",
		},
	)

	TokensPurged = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "email_verification_tokens_purged_total",
			Help: "Expired or used e-mail verification tokens removed by the cleanup job",
		},
	)
)

// Upload results
const (
	UploadAccepted = "accepted"
	UploadRejected = "rejected"
	UploadFailed   = "failed"
)
