package client

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var apiRequests = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "tumblr_client_requests",
	Help: "Tumblr API requests, by route and outcome",
}, []string{"method", "route", "status"})

var apiRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Name:    "tumblr_client_request_duration",
	Help:    "Time to complete a Tumblr API request, including transport retries",
	Buckets: prometheus.ExponentialBucketsRange(0.001, 60, 20),
}, []string{"method", "route", "status"})

var oauthRefreshes = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "tumblr_client_oauth_refreshes",
	Help: "OAuth access token refresh attempts",
}, []string{"status"})
