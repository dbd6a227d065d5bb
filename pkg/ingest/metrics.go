package ingest

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	rowsMapped = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "ledgerkit",
		Subsystem: "ingest",
		Name:      "rows_mapped_total",
		Help:      "Rows successfully normalized, by input source.",
	}, []string{"source"})

	rowsSkipped = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "ledgerkit",
		Subsystem: "ingest",
		Name:      "rows_skipped_total",
		Help:      "Rows excluded from the mapped output, by source and reason.",
	}, []string{"source", "reason"})
)
