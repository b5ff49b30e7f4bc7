package relay

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var envelopesProcessed prometheus.Counter = promauto.NewCounter(prometheus.CounterOpts{
	Name:      "envelopes_processed_total",
	Help:      "Envelopes taken from the queue and examined.",
	Namespace: "s3_relay",
})

var copiesSucceeded prometheus.Counter = promauto.NewCounter(prometheus.CounterOpts{
	Name:      "copies_succeeded_total",
	Help:      "Object copies that completed.",
	Namespace: "s3_relay",
})

var copiesFailed prometheus.Counter = promauto.NewCounter(prometheus.CounterOpts{
	Name:      "copies_failed_total",
	Help:      "Object copies that failed with a backend error.",
	Namespace: "s3_relay",
})

var objectsMissing prometheus.Counter = promauto.NewCounter(prometheus.CounterOpts{
	Name:      "source_objects_missing_total",
	Help:      "Copy attempts skipped because the source object no longer exists.",
	Namespace: "s3_relay",
})
