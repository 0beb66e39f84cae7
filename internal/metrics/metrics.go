package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// BlocksCommitted counts blocks whose revisions were durably committed.
	BlocksCommitted = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "discovery_indexer",
		Name:      "blocks_committed_total",
		Help:      "Number of blocks committed to storage.",
	})

	// BlocksAborted counts blocks that failed with a storage error.
	BlocksAborted = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "discovery_indexer",
		Name:      "blocks_aborted_total",
		Help:      "Number of blocks aborted without committing.",
	})

	// EventsApplied counts entity events that produced a pending revision.
	EventsApplied = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "discovery_indexer",
		Name:      "events_applied_total",
		Help:      "Number of entity events applied.",
	})

	// EventsSkipped counts per-event soft failures, labeled by reason.
	EventsSkipped = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "discovery_indexer",
		Name:      "events_skipped_total",
		Help:      "Number of entity events skipped, by reason.",
	}, []string{"reason"})

	// ChallengeEventsProcessed counts events drained from the challenge bus.
	ChallengeEventsProcessed = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "discovery_indexer",
		Name:      "challenge_events_processed_total",
		Help:      "Number of challenge events handed to managers.",
	})
)

// Handler returns the /metrics HTTP handler.
func Handler() http.Handler {
	return promhttp.Handler()
}
