package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordHTTPRequest(t *testing.T) {
	HTTPRequestsTotal.Reset()
	HTTPRequestDuration.Reset()

	RecordHTTPRequest("GET", "/api/gachas", "200", 0.5)

	count := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues("GET", "/api/gachas", "200"))
	assert.Equal(t, float64(1), count)
}

func TestRecordHTTPRequestMultiple(t *testing.T) {
	HTTPRequestsTotal.Reset()

	RecordHTTPRequest("POST", "/api/charge", "200", 0.1)
	RecordHTTPRequest("POST", "/api/charge", "200", 0.2)
	RecordHTTPRequest("POST", "/api/charge", "400", 0.05)

	successCount := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues("POST", "/api/charge", "200"))
	failCount := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues("POST", "/api/charge", "400"))

	assert.Equal(t, float64(2), successCount)
	assert.Equal(t, float64(1), failCount)
}

func TestRecordDraw(t *testing.T) {
	DrawsTotal.Reset()

	RecordDraw("success")
	RecordDraw("success")
	RecordDraw("out_of_stock")

	success := testutil.ToFloat64(DrawsTotal.WithLabelValues("success"))
	outOfStock := testutil.ToFloat64(DrawsTotal.WithLabelValues("out_of_stock"))

	assert.Equal(t, float64(2), success)
	assert.Equal(t, float64(1), outOfStock)
}

func TestRecordConversion(t *testing.T) {
	testCounter := prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "tunagatya_item_conversions_total_test",
			Help: "Total number of item-to-points conversions",
		},
	)

	oldCounter := ConversionsTotal
	ConversionsTotal = testCounter
	defer func() { ConversionsTotal = oldCounter }()

	RecordConversion()
	RecordConversion()

	assert.Equal(t, float64(2), testutil.ToFloat64(testCounter))
}

func TestRecordCharge(t *testing.T) {
	testCounter := prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "tunagatya_point_charges_total_test",
			Help: "Total number of point charges",
		},
	)

	oldCounter := ChargesTotal
	ChargesTotal = testCounter
	defer func() { ChargesTotal = oldCounter }()

	RecordCharge()
	RecordCharge()
	RecordCharge()

	assert.Equal(t, float64(3), testutil.ToFloat64(testCounter))
}

func TestRecordEmail(t *testing.T) {
	EmailsSentTotal.Reset()

	RecordEmail("draw_confirmation", "success")
	RecordEmail("draw_confirmation", "failed")

	success := testutil.ToFloat64(EmailsSentTotal.WithLabelValues("draw_confirmation", "success"))
	failed := testutil.ToFloat64(EmailsSentTotal.WithLabelValues("draw_confirmation", "failed"))

	assert.Equal(t, float64(1), success)
	assert.Equal(t, float64(1), failed)
}

func TestSetGachaStock(t *testing.T) {
	GachaStock.Reset()

	SetGachaStock("gacha-1", 30)
	assert.Equal(t, float64(30), testutil.ToFloat64(GachaStock.WithLabelValues("gacha-1")))

	SetGachaStock("gacha-1", 29)
	assert.Equal(t, float64(29), testutil.ToFloat64(GachaStock.WithLabelValues("gacha-1")))
}

func TestEmailQueueLength(t *testing.T) {
	EmailQueueLength.Set(10)
	assert.Equal(t, float64(10), testutil.ToFloat64(EmailQueueLength))

	EmailQueueLength.Set(0)
	assert.Equal(t, float64(0), testutil.ToFloat64(EmailQueueLength))
}
