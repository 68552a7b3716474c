package models

import (
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	startedAt  = time.Now()
	totalViews int64

	viewsCounter = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "relay",
		Name:      "views_incremented_total",
		Help:      "Confirmed view counter increments relayed to Notion",
	})
	registrationsCounter = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "relay",
		Name:      "registrations_total",
		Help:      "Successful tenant registrations",
	})
)

func recordView() {
	atomic.AddInt64(&totalViews, 1)
	viewsCounter.Inc()
}

func recordRegistration() {
	registrationsCounter.Inc()
}

func TotalViews() int64 {
	return atomic.LoadInt64(&totalViews)
}

func Uptime() time.Duration {
	return time.Since(startedAt)
}

func StartedAt() time.Time {
	return startedAt
}
