// Package metrics records blast progress for Prometheus scraping.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const MetricsPrefix = "qdbblast_"

type Metrics struct {
	rowsSent         *prometheus.CounterVec
	batchesSent      *prometheus.CounterVec
	sendFailures     *prometheus.CounterVec
	connectionCycles *prometheus.CounterVec
}

var m = &Metrics{
	rowsSent: promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricsPrefix + "rows_sent",
			Help: "Number of rows flushed to QuestDB",
		},
		[]string{"table"}),
	batchesSent: promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricsPrefix + "batches_sent",
			Help: "Number of batches flushed to QuestDB",
		},
		[]string{"table"}),
	sendFailures: promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricsPrefix + "send_failures",
			Help: "Number of sender units that failed, for any reason",
		},
		[]string{"table"}),
	connectionCycles: promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricsPrefix + "connection_cycles",
			Help: "Number of ILP connections closed by the keepalive policy",
		},
		[]string{"table"}),
}

func Get() *Metrics {
	return m
}

func (m *Metrics) RecordRowsSent(table string, numRows uint64) {
	m.rowsSent.With(map[string]string{"table": table}).Add(float64(numRows))
}

func (m *Metrics) RecordBatchSent(table string) {
	m.batchesSent.With(map[string]string{"table": table}).Inc()
}

func (m *Metrics) RecordSendFailure(table string) {
	m.sendFailures.With(map[string]string{"table": table}).Inc()
}

func (m *Metrics) RecordConnectionCycle(table string) {
	m.connectionCycles.With(map[string]string{"table": table}).Inc()
}
