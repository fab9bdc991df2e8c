package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tunagatya_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "tunagatya_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	DrawsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tunagatya_draws_total",
			Help: "Total number of gacha draws",
		},
		[]string{"result"},
	)

	ConversionsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "tunagatya_item_conversions_total",
			Help: "Total number of item-to-points conversions",
		},
	)

	ChargesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "tunagatya_point_charges_total",
			Help: "Total number of point charges",
		},
	)

	GachaStock = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "tunagatya_gacha_stock",
			Help: "Remaining stock per gacha listing",
		},
		[]string{"gacha_id"},
	)

	EmailsSentTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tunagatya_emails_sent_total",
			Help: "Total number of emails sent",
		},
		[]string{"type", "status"},
	)

	EmailQueueLength = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "tunagatya_email_queue_length",
			Help: "Current length of email queue",
		},
	)
)

func RecordHTTPRequest(method, path, status string, duration float64) {
	HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, path).Observe(duration)
}

func RecordDraw(result string) {
	DrawsTotal.WithLabelValues(result).Inc()
}

func RecordConversion() {
	ConversionsTotal.Inc()
}

func RecordCharge() {
	ChargesTotal.Inc()
}

func RecordEmail(emailType, status string) {
	EmailsSentTotal.WithLabelValues(emailType, status).Inc()
}

func SetGachaStock(gachaID string, stock int) {
	GachaStock.WithLabelValues(gachaID).Set(float64(stock))
}
