package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	HTTPRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "tatame", Name: "http_requests_total", Help: "HTTP requests by route and status",
	}, []string{"route", "status"})
	CheckinsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "tatame", Name: "checkins_total", Help: "Accepted check-ins",
	})
	CheckinsDenied = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "tatame", Name: "checkins_denied_total", Help: "Denied check-ins by reason",
	}, []string{"reason"})
	FeedPosts = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "tatame", Name: "feed_posts_total", Help: "Training posts created",
	})
	ChangeHints = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "tatame", Name: "change_hints_total", Help: "Realtime change hints published per table",
	}, []string{"table"})
	DBPing = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "tatame", Name: "db_ping_seconds", Help: "DB ping latency",
		Buckets: prometheus.DefBuckets,
	})
)

func init() {
	prometheus.MustRegister(HTTPRequests, CheckinsTotal, CheckinsDenied, FeedPosts, ChangeHints, DBPing)
}

func Handler() http.Handler { return promhttp.Handler() }

func ObserveDBPing(d time.Duration) { DBPing.Observe(d.Seconds()) }
