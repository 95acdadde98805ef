package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics_CountersByTable(t *testing.T) {
	m := Get()

	m.RecordRowsSent("metrics_test_cpu", 250)
	m.RecordRowsSent("metrics_test_cpu", 250)
	m.RecordRowsSent("metrics_test_mem", 10)
	m.RecordBatchSent("metrics_test_cpu")
	m.RecordSendFailure("metrics_test_cpu")
	m.RecordConnectionCycle("metrics_test_cpu")

	assert.Equal(t, 500.0, testutil.ToFloat64(m.rowsSent.WithLabelValues("metrics_test_cpu")))
	assert.Equal(t, 10.0, testutil.ToFloat64(m.rowsSent.WithLabelValues("metrics_test_mem")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.batchesSent.WithLabelValues("metrics_test_cpu")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.sendFailures.WithLabelValues("metrics_test_cpu")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.connectionCycles.WithLabelValues("metrics_test_cpu")))
}
